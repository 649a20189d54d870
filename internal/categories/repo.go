package categories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/teastore-backend/pkg/db/models"
)

// Repository persists tea categories.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, category *models.TeaCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.TeaCategory, error) {
	var category models.TeaCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// List returns every category ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.TeaCategory, error) {
	var rows []models.TeaCategory
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Save(ctx context.Context, category *models.TeaCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.TeaCategory{}, "id = ?", id).Error
}

// NameTaken reports whether another category already uses name.
func (r *Repository) NameTaken(ctx context.Context, name string, exclude uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TeaCategory{}).
		Where("name = ? AND id <> ?", name, exclude).
		Count(&count).Error
	return count > 0, err
}

// CountTeas returns how many teas reference the category.
func (r *Repository) CountTeas(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Tea{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}
