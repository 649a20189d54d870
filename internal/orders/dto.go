package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/teastore-backend/pkg/db/models"
	"github.com/angelmondragon/teastore-backend/pkg/enums"
)

// DateLayout is the wire format of delivery dates.
const DateLayout = "2006-01-02"

// OrderDTO is the API shape of an order with its lines embedded.
type OrderDTO struct {
	ID           uuid.UUID         `json:"id"`
	Label        string            `json:"label"`
	UserID       uuid.UUID         `json:"user_id"`
	Status       enums.OrderStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	DeliveryDate *string           `json:"delivery_date"`
	Note         string            `json:"note"`
	Items        []OrderItemDTO    `json:"items"`
	Total        decimal.Decimal   `json:"total"`
}

// OrderItemDTO is the API shape of an order line.
type OrderItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	TeaID     uuid.UUID       `json:"tea_id"`
	TeaName   string          `json:"tea_name,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CreateOrderInput holds a create payload. UserID and Status are honoured
// only for privileged callers.
type CreateOrderInput struct {
	UserID       *uuid.UUID
	Status       *enums.OrderStatus
	DeliveryDate *time.Time
	Note         string
}

// UpdateOrderInput carries the fields to change. Nil fields are kept.
type UpdateOrderInput struct {
	UserID            *uuid.UUID
	Status            *enums.OrderStatus
	DeliveryDate      *time.Time
	ClearDeliveryDate bool
	Note              *string
}

type ListOrdersInput struct {
	Status *enums.OrderStatus
	// Mine limits the listing to the caller's orders even when privileged.
	Mine bool
}

// CreateOrderItemInput holds a line payload. A nil UnitPrice, or any
// non-privileged caller, takes the tea's current price.
type CreateOrderItemInput struct {
	OrderID   uuid.UUID
	TeaID     uuid.UUID
	Quantity  int
	UnitPrice *decimal.Decimal
}

type UpdateOrderItemInput struct {
	OrderID   *uuid.UUID
	TeaID     *uuid.UUID
	Quantity  *int
	UnitPrice *decimal.Decimal
}

type ListOrderItemsInput struct {
	OrderID *uuid.UUID
}

func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:        o.ID,
		Label:     o.Label(),
		UserID:    o.UserID,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		Note:      o.Note,
		Items:     make([]OrderItemDTO, 0, len(o.Items)),
		Total:     o.Total(),
	}
	if o.DeliveryDate != nil {
		formatted := o.DeliveryDate.Format(DateLayout)
		dto.DeliveryDate = &formatted
	}
	for i := range o.Items {
		dto.Items = append(dto.Items, *ItemFromModel(&o.Items[i]))
	}
	return dto
}

func ItemFromModel(i *models.OrderItem) *OrderItemDTO {
	if i == nil {
		return nil
	}
	dto := &OrderItemDTO{
		ID:        i.ID,
		OrderID:   i.OrderID,
		TeaID:     i.TeaID,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
		LineTotal: i.LineTotal(),
	}
	if i.Tea != nil {
		dto.TeaName = i.Tea.Name
	}
	return dto
}
