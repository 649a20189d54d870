package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/teastore-backend/api/responses"
	"github.com/angelmondragon/teastore-backend/api/validators"
	"github.com/angelmondragon/teastore-backend/internal/orders"
	"github.com/angelmondragon/teastore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/teastore-backend/pkg/errors"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
	"github.com/angelmondragon/teastore-backend/pkg/logger"
	"github.com/angelmondragon/teastore-backend/pkg/types"
)

type orderRequest struct {
	UserID       *uuid.UUID         `json:"user_id"`
	Status       *enums.OrderStatus `json:"status"`
	DeliveryDate *string            `json:"delivery_date"`
	Note         string             `json:"note"`
}

type orderPatchRequest struct {
	UserID       *uuid.UUID         `json:"user_id"`
	Status       *enums.OrderStatus `json:"status"`
	DeliveryDate types.NullableDate `json:"delivery_date"`
	Note         *string            `json:"note"`
}

func parseDeliveryDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	day, err := time.Parse(orders.DateLayout, *raw)
	if err != nil {
		return nil, pkgerrors.Validation("delivery_date", i18n.MsgFieldInvalid)
	}
	return &day, nil
}

// OrdersList lists the orders visible to the caller. mine restricts the list
// to the caller's own orders for privileged users too.
func OrdersList(svc orders.Service, mine bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "order")
			return
		}
		actor, err := principalFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := orders.ListOrdersInput{Mine: mine}
		if raw := validators.QueryString(r, "status", 20); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Validation("status", i18n.MsgStatusInvalid))
				return
			}
			input.Status = &status
		}
		rows, err := svc.ListOrders(r.Context(), actor, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func OrdersGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "order")
			return
		}
		actor, err := principalFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.GetOrder(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func OrdersCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "order")
			return
		}
		actor, err := principalFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body orderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		day, err := parseDeliveryDate(body.DeliveryDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.CreateOrder(r.Context(), actor, orders.CreateOrderInput{
			UserID:       body.UserID,
			Status:       body.Status,
			DeliveryDate: day,
			Note:         body.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, row)
	}
}

func OrdersUpdate(svc orders.Service, partial bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "order")
			return
		}
		actor, err := principalFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input orders.UpdateOrderInput
		if partial {
			var body orderPatchRequest
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input = orders.UpdateOrderInput{
				UserID:            body.UserID,
				Status:            body.Status,
				DeliveryDate:      body.DeliveryDate.Value,
				ClearDeliveryDate: body.DeliveryDate.Valid && body.DeliveryDate.Value == nil,
				Note:              body.Note,
			}
		} else {
			var body orderRequest
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			day, err := parseDeliveryDate(body.DeliveryDate)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input = orders.UpdateOrderInput{
				UserID:            body.UserID,
				Status:            body.Status,
				DeliveryDate:      day,
				ClearDeliveryDate: day == nil,
				Note:              &body.Note,
			}
		}

		row, err := svc.UpdateOrder(r.Context(), actor, id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func OrdersDelete(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "order")
			return
		}
		actor, err := principalFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteOrder(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
