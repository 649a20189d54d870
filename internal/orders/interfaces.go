package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/teastore-backend/pkg/db/models"
	"github.com/angelmondragon/teastore-backend/pkg/enums"
)

// Repository defines persistence for orders and their lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) error
	FindOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	SaveOrder(ctx context.Context, order *models.Order) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	DeleteOrderItems(ctx context.Context, orderID uuid.UUID) error

	CreateItem(ctx context.Context, item *models.OrderItem) error
	FindItem(ctx context.Context, id uuid.UUID) (*models.OrderItem, error)
	ListItems(ctx context.Context, filter ItemFilter) ([]models.OrderItem, error)
	SaveItem(ctx context.Context, item *models.OrderItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ItemExists(ctx context.Context, orderID, teaID, exclude uuid.UUID) (bool, error)

	FindTea(ctx context.Context, id uuid.UUID) (*models.Tea, error)
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// OrderFilter narrows an order listing. A nil UserID lists every owner.
type OrderFilter struct {
	UserID *uuid.UUID
	Status *enums.OrderStatus
}

// ItemFilter narrows an order item listing. OwnerID restricts to lines on
// orders owned by that user.
type ItemFilter struct {
	OwnerID *uuid.UUID
	OrderID *uuid.UUID
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
