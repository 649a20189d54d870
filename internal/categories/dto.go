package categories

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/teastore-backend/pkg/db/models"
)

// CategoryDTO is the API shape of a tea category.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// CreateCategoryInput holds a validated create payload.
type CreateCategoryInput struct {
	Name        string
	Description string
}

// UpdateCategoryInput carries the fields to change. Nil fields are kept.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
}

func FromModel(c *models.TeaCategory) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{ID: c.ID, Name: c.Name, Description: c.Description}
}
