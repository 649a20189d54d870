package teas

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/teastore-backend/pkg/db/models"
	"github.com/angelmondragon/teastore-backend/pkg/enums"
)

// TeaDTO is the API shape of a tea.
type TeaDTO struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	CategoryID    uuid.UUID           `json:"category_id"`
	CategoryName  string              `json:"category_name,omitempty"`
	OriginID      *uuid.UUID          `json:"origin_id"`
	OriginLabel   string              `json:"origin_label,omitempty"`
	TeaType       enums.TeaType       `json:"tea_type"`
	CaffeineLevel enums.CaffeineLevel `json:"caffeine_level"`
	Price         decimal.Decimal     `json:"price"`
	StockQty      int                 `json:"stock_qty"`
	IsActive      bool                `json:"is_active"`
	AddedAt       time.Time           `json:"added_at"`
}

type CreateTeaInput struct {
	Name          string
	Description   string
	CategoryID    uuid.UUID
	OriginID      *uuid.UUID
	TeaType       enums.TeaType
	CaffeineLevel enums.CaffeineLevel
	Price         decimal.Decimal
	StockQty      int
	IsActive      bool
}

// UpdateTeaInput carries the fields to change. Nil fields are kept;
// ClearOrigin removes the origin.
type UpdateTeaInput struct {
	Name          *string
	Description   *string
	CategoryID    *uuid.UUID
	OriginID      *uuid.UUID
	ClearOrigin   bool
	TeaType       *enums.TeaType
	CaffeineLevel *enums.CaffeineLevel
	Price         *decimal.Decimal
	StockQty      *int
	IsActive      *bool
}

// ListTeasInput filters the tea listing.
type ListTeasInput struct {
	CategoryID    *uuid.UUID
	TeaType       *enums.TeaType
	CaffeineLevel *enums.CaffeineLevel
	IsActive      *bool
}

func FromModel(t *models.Tea) *TeaDTO {
	if t == nil {
		return nil
	}
	dto := &TeaDTO{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		CategoryID:    t.CategoryID,
		OriginID:      t.OriginID,
		TeaType:       t.TeaType,
		CaffeineLevel: t.CaffeineLevel,
		Price:         t.Price,
		StockQty:      t.StockQty,
		IsActive:      t.IsActive,
		AddedAt:       t.AddedAt,
	}
	if t.Category != nil {
		dto.CategoryName = t.Category.Name
	}
	if t.Origin != nil {
		dto.OriginLabel = t.Origin.Label()
	}
	return dto
}

func fromModels(rows []models.Tea) []TeaDTO {
	out := make([]TeaDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
