package origins

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/teastore-backend/pkg/db/models"
)

// Repository persists origins.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, origin *models.Origin) error {
	return r.db.WithContext(ctx).Create(origin).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Origin, error) {
	var origin models.Origin
	if err := r.db.WithContext(ctx).First(&origin, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &origin, nil
}

func (r *Repository) List(ctx context.Context, input ListOriginsInput) ([]models.Origin, error) {
	query := r.db.WithContext(ctx).Model(&models.Origin{})
	if input.CountryCode != "" {
		query = query.Where("country_code = ?", input.CountryCode)
	}
	if input.IsOrganic != nil {
		query = query.Where("is_organic = ?", *input.IsOrganic)
	}
	var rows []models.Origin
	if err := query.Order("country_code ASC, region ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Save(ctx context.Context, origin *models.Origin) error {
	return r.db.WithContext(ctx).Save(origin).Error
}

// DetachTeas clears origin_id on every tea that references id.
func (r *Repository) DetachTeas(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Tea{}).
		Where("origin_id = ?", id).
		Update("origin_id", nil).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Origin{}, "id = ?", id).Error
}
