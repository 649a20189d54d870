package teas

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/teastore-backend/pkg/db/models"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Repository persists teas.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, tea *models.Tea) error {
	return r.db.WithContext(ctx).Omit("Category", "Origin").Create(tea).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tea, error) {
	var tea models.Tea
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Origin").
		First(&tea, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tea, nil
}

func (r *Repository) List(ctx context.Context, input ListTeasInput) ([]models.Tea, error) {
	query := r.db.WithContext(ctx).Model(&models.Tea{}).Preload("Category").Preload("Origin")
	if input.CategoryID != nil {
		query = query.Where("category_id = ?", *input.CategoryID)
	}
	if input.TeaType != nil {
		query = query.Where("tea_type = ?", *input.TeaType)
	}
	if input.CaffeineLevel != nil {
		query = query.Where("caffeine_level = ?", *input.CaffeineLevel)
	}
	if input.IsActive != nil {
		query = query.Where("is_active = ?", *input.IsActive)
	}
	var rows []models.Tea
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SearchByName matches name case-insensitively anywhere in the tea name.
func (r *Repository) SearchByName(ctx context.Context, name string) ([]models.Tea, error) {
	needle := strings.ToLower(name)
	query := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Origin").
		Order("name ASC")
	// SQLite LOWER only folds ASCII, so Unicode names are matched here.
	if r.db.Dialector.Name() == "sqlite" {
		var rows []models.Tea
		if err := query.Find(&rows).Error; err != nil {
			return nil, err
		}
		matched := rows[:0]
		for _, tea := range rows {
			if strings.Contains(strings.ToLower(tea.Name), needle) {
				matched = append(matched, tea)
			}
		}
		return matched, nil
	}

	pattern := "%" + likeEscaper.Replace(needle) + "%"
	var rows []models.Tea
	if err := query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Save(ctx context.Context, tea *models.Tea) error {
	return r.db.WithContext(ctx).Omit("Category", "Origin").Save(tea).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Tea{}, "id = ?", id).Error
}

func (r *Repository) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.TeaCategory{}, id)
}

func (r *Repository) OriginExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.Origin{}, id)
}

// CountOrderItems returns how many order lines reference the tea.
func (r *Repository) CountOrderItems(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).Where("tea_id = ?", id).Count(&count).Error
	return count, err
}

func exists(ctx context.Context, db *gorm.DB, model any, id uuid.UUID) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
