package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// AllModels lists every table owned by the service, in dependency order.
func AllModels() []any {
	return []any{
		&User{},
		&Permission{},
		&Group{},
		&GroupPermission{},
		&UserGroup{},
		&UserPermission{},
		&TeaCategory{},
		&Origin{},
		&Tea{},
		&Order{},
		&OrderItem{},
	}
}

// AutoMigrate creates the schema through GORM. Postgres deployments use the
// goose migrations instead; this path serves sqlite.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
