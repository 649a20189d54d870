package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/teastore-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository binds the order repository to db.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit("User", "Items").Create(order).Error
}

func (r *repository) FindOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		Preload("Items.Tea").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{}).Preload("Items").Preload("Items.Tea")
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	var rows []models.Order
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) SaveOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit("User", "Items").Save(order).Error
}

func (r *repository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id).Error
}

func (r *repository) DeleteOrderItems(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.OrderItem{}, "order_id = ?", orderID).Error
}

func (r *repository) CreateItem(ctx context.Context, item *models.OrderItem) error {
	return r.db.WithContext(ctx).Omit("Tea").Create(item).Error
}

func (r *repository) FindItem(ctx context.Context, id uuid.UUID) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.db.WithContext(ctx).Preload("Tea").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListItems(ctx context.Context, filter ItemFilter) ([]models.OrderItem, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderItem{}).Preload("Tea")
	if filter.OwnerID != nil {
		query = query.Where("order_id IN (?)",
			r.db.Model(&models.Order{}).Select("id").Where("user_id = ?", *filter.OwnerID))
	}
	if filter.OrderID != nil {
		query = query.Where("order_id = ?", *filter.OrderID)
	}
	var rows []models.OrderItem
	if err := query.Order("order_id, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) SaveItem(ctx context.Context, item *models.OrderItem) error {
	return r.db.WithContext(ctx).Omit("Tea").Save(item).Error
}

func (r *repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.OrderItem{}, "id = ?", id).Error
}

// ItemExists reports whether order already has a line for tea, ignoring the
// line with id exclude.
func (r *repository) ItemExists(ctx context.Context, orderID, teaID, exclude uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("order_id = ? AND tea_id = ? AND id <> ?", orderID, teaID, exclude).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindTea(ctx context.Context, id uuid.UUID) (*models.Tea, error) {
	var tea models.Tea
	if err := r.db.WithContext(ctx).First(&tea, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tea, nil
}

func (r *repository) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
