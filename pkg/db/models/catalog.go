package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/teastore-backend/pkg/enums"
)

// TeaCategory groups teas in the catalog.
type TeaCategory struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;size:60;not null;uniqueIndex"`
	Description string    `gorm:"column:description;type:text;not null"`
}

func (TeaCategory) TableName() string { return "tea_categories" }

func (c *TeaCategory) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// Origin is the provenance of a tea.
type Origin struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CountryCode string    `gorm:"column:country_code;size:2;not null"`
	Region      string    `gorm:"column:region;size:60;not null"`
	FarmName    string    `gorm:"column:farm_name;size:80;not null"`
	IsOrganic   bool      `gorm:"column:is_organic;not null"`
}

func (Origin) TableName() string { return "origins" }

func (o *Origin) BeforeCreate(*gorm.DB) error {
	ensureID(&o.ID)
	return nil
}

// Label renders the origin as CC-Region, with the farm in parentheses when set.
func (o Origin) Label() string {
	if o.FarmName == "" {
		return fmt.Sprintf("%s-%s", o.CountryCode, o.Region)
	}
	return fmt.Sprintf("%s-%s (%s)", o.CountryCode, o.Region, o.FarmName)
}

// Tea is a sellable catalog entry.
type Tea struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	Name          string              `gorm:"column:name;size:120;not null;index"`
	Description   string              `gorm:"column:description;type:text;not null"`
	CategoryID    uuid.UUID           `gorm:"column:category_id;type:uuid;not null;index"`
	Category      *TeaCategory        `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	OriginID      *uuid.UUID          `gorm:"column:origin_id;type:uuid;index"`
	Origin        *Origin             `gorm:"foreignKey:OriginID;constraint:OnDelete:SET NULL"`
	TeaType       enums.TeaType       `gorm:"column:tea_type;size:10;not null"`
	CaffeineLevel enums.CaffeineLevel `gorm:"column:caffeine_level;size:10;not null"`
	Price         decimal.Decimal     `gorm:"column:price;type:numeric(8,2);not null"`
	StockQty      int                 `gorm:"column:stock_qty;not null"`
	IsActive      bool                `gorm:"column:is_active;not null"`
	AddedAt       time.Time           `gorm:"column:added_at;autoCreateTime;<-:create"`
}

func (Tea) TableName() string { return "teas" }

func (t *Tea) BeforeCreate(*gorm.DB) error {
	ensureID(&t.ID)
	return nil
}
