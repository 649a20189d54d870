package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/teastore-backend/pkg/enums"
)

// Order is a customer's purchase header.
type Order struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	UserID       uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	User         *User             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Status       enums.OrderStatus `gorm:"column:status;size:10;not null;index"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime;<-:create"`
	DeliveryDate *time.Time        `gorm:"column:delivery_date;type:date"`
	Note         string            `gorm:"column:note;type:text;not null"`
	Items        []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) BeforeCreate(*gorm.DB) error {
	ensureID(&o.ID)
	return nil
}

// Label renders the order for listings.
func (o Order) Label() string {
	return fmt.Sprintf("Order #%s", o.ID.String()[:8])
}

// Total sums the snapshotted line prices.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// OrderItem is one priced line within an order. UnitPrice is copied from the
// tea when the line is created and is never re-read from the catalog.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null;uniqueIndex:order_items_order_tea_key,priority:1"`
	TeaID     uuid.UUID       `gorm:"column:tea_id;type:uuid;not null;uniqueIndex:order_items_order_tea_key,priority:2;index"`
	Tea       *Tea            `gorm:"foreignKey:TeaID;constraint:OnDelete:RESTRICT"`
	Quantity  int             `gorm:"column:quantity;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(8,2);not null"`
}

func (OrderItem) TableName() string { return "order_items" }

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

// LineTotal is quantity times the snapshotted unit price.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
