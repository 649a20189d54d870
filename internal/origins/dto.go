package origins

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/teastore-backend/pkg/db/models"
)

// OriginDTO is the API shape of an origin.
type OriginDTO struct {
	ID          uuid.UUID `json:"id"`
	CountryCode string    `json:"country_code"`
	Region      string    `json:"region"`
	FarmName    string    `json:"farm_name"`
	IsOrganic   bool      `json:"is_organic"`
	Label       string    `json:"label"`
}

type CreateOriginInput struct {
	CountryCode string
	Region      string
	FarmName    string
	IsOrganic   bool
}

// UpdateOriginInput carries the fields to change. Nil fields are kept.
type UpdateOriginInput struct {
	CountryCode *string
	Region      *string
	FarmName    *string
	IsOrganic   *bool
}

// ListOriginsInput filters the origin listing.
type ListOriginsInput struct {
	CountryCode string
	IsOrganic   *bool
}

func FromModel(o *models.Origin) *OriginDTO {
	if o == nil {
		return nil
	}
	return &OriginDTO{
		ID:          o.ID,
		CountryCode: o.CountryCode,
		Region:      o.Region,
		FarmName:    o.FarmName,
		IsOrganic:   o.IsOrganic,
		Label:       o.Label(),
	}
}
