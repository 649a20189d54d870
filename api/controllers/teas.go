package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/teastore-backend/api/responses"
	"github.com/angelmondragon/teastore-backend/api/validators"
	"github.com/angelmondragon/teastore-backend/internal/teas"
	"github.com/angelmondragon/teastore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/teastore-backend/pkg/errors"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
	"github.com/angelmondragon/teastore-backend/pkg/logger"
	"github.com/angelmondragon/teastore-backend/pkg/types"
)

type teaRequest struct {
	Name          string              `json:"name" validate:"omitempty,capitalized"`
	Description   string              `json:"description"`
	CategoryID    uuid.UUID           `json:"category_id"`
	OriginID      *uuid.UUID          `json:"origin_id"`
	TeaType       enums.TeaType       `json:"tea_type"`
	CaffeineLevel enums.CaffeineLevel `json:"caffeine_level"`
	Price         decimal.Decimal     `json:"price"`
	StockQty      int                 `json:"stock_qty" validate:"gte=0,lte=2147483647"`
	IsActive      *bool               `json:"is_active"`
}

type teaPatchRequest struct {
	Name          *string              `json:"name" validate:"omitempty,capitalized"`
	Description   *string              `json:"description"`
	CategoryID    *uuid.UUID           `json:"category_id"`
	OriginID      types.NullableUUID   `json:"origin_id"`
	TeaType       *enums.TeaType       `json:"tea_type"`
	CaffeineLevel *enums.CaffeineLevel `json:"caffeine_level"`
	Price         *decimal.Decimal     `json:"price"`
	StockQty      *int                 `json:"stock_qty" validate:"omitempty,gte=0,lte=2147483647"`
	IsActive      *bool                `json:"is_active"`
}

func (b teaRequest) active() bool {
	return b.IsActive == nil || *b.IsActive
}

func (b teaRequest) toUpdate() teas.UpdateTeaInput {
	active := b.active()
	return teas.UpdateTeaInput{
		Name:          &b.Name,
		Description:   &b.Description,
		CategoryID:    &b.CategoryID,
		OriginID:      b.OriginID,
		ClearOrigin:   b.OriginID == nil,
		TeaType:       &b.TeaType,
		CaffeineLevel: &b.CaffeineLevel,
		Price:         &b.Price,
		StockQty:      &b.StockQty,
		IsActive:      &active,
	}
}

func (b teaPatchRequest) toUpdate() teas.UpdateTeaInput {
	return teas.UpdateTeaInput{
		Name:          b.Name,
		Description:   b.Description,
		CategoryID:    b.CategoryID,
		OriginID:      b.OriginID.Value,
		ClearOrigin:   b.OriginID.Valid && b.OriginID.Value == nil,
		TeaType:       b.TeaType,
		CaffeineLevel: b.CaffeineLevel,
		Price:         b.Price,
		StockQty:      b.StockQty,
		IsActive:      b.IsActive,
	}
}

// parseTeaFilters reads the category, tea_type, caffeine_level and is_active
// list filters.
func parseTeaFilters(r *http.Request) (teas.ListTeasInput, error) {
	var input teas.ListTeasInput
	category, err := validators.ParseQueryUUID(r, "category")
	if err != nil {
		return input, err
	}
	input.CategoryID = category

	if raw := validators.QueryString(r, "tea_type", 20); raw != "" {
		value, err := enums.ParseTeaType(raw)
		if err != nil {
			return input, pkgerrors.Validation("tea_type", i18n.MsgTeaTypeInvalid)
		}
		input.TeaType = &value
	}
	if raw := validators.QueryString(r, "caffeine_level", 20); raw != "" {
		value, err := enums.ParseCaffeineLevel(raw)
		if err != nil {
			return input, pkgerrors.Validation("caffeine_level", i18n.MsgCaffeineInvalid)
		}
		input.CaffeineLevel = &value
	}

	active, err := validators.ParseQueryBool(r, "is_active")
	if err != nil {
		return input, err
	}
	input.IsActive = active
	return input, nil
}

func TeasList(svc teas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "tea")
			return
		}
		filters, err := parseTeaFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// TeasSearch matches ?name= case-insensitively against tea names.
func TeasSearch(svc teas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "tea")
			return
		}
		rows, err := svc.Search(r.Context(), validators.QueryString(r, "name", 200))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func TeasGet(svc teas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "tea")
			return
		}
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func TeasCreate(svc teas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "tea")
			return
		}
		var body teaRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Create(r.Context(), teas.CreateTeaInput{
			Name:          body.Name,
			Description:   body.Description,
			CategoryID:    body.CategoryID,
			OriginID:      body.OriginID,
			TeaType:       body.TeaType,
			CaffeineLevel: body.CaffeineLevel,
			Price:         body.Price,
			StockQty:      body.StockQty,
			IsActive:      body.active(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, row)
	}
}

func TeasUpdate(svc teas.Service, partial bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "tea")
			return
		}
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input teas.UpdateTeaInput
		if partial {
			var body teaPatchRequest
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input = body.toUpdate()
		} else {
			var body teaRequest
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input = body.toUpdate()
		}

		row, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func TeasDelete(svc teas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "tea")
			return
		}
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
