// Package testdb opens throwaway sqlite databases with the full schema for
// repository and service tests.
package testdb

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/teastore-backend/pkg/db"
	"github.com/angelmondragon/teastore-backend/pkg/db/models"
	"github.com/angelmondragon/teastore-backend/pkg/enums"
)

// Open returns a migrated in-memory database private to t.
func Open(t *testing.T) *db.Client {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared&_foreign_keys=on", name, uuid.NewString()[:8])

	client, err := db.OpenSQLite(dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := models.AutoMigrate(client.DB()); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// MustUser inserts an active user. Flags are applied through opts.
func MustUser(t *testing.T, client *db.Client, username string, opts ...func(*models.User)) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "User",
		IsActive:     true,
	}
	for _, opt := range opts {
		opt(user)
	}
	if err := client.DB().Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// Staff marks a user as staff.
func Staff(u *models.User) { u.IsStaff = true }

// Superuser marks a user as superuser.
func Superuser(u *models.User) { u.IsSuperuser = true }

// MustCategory inserts a tea category.
func MustCategory(t *testing.T, client *db.Client, name string) *models.TeaCategory {
	t.Helper()
	category := &models.TeaCategory{Name: name}
	if err := client.DB().Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

// MustOrigin inserts an origin.
func MustOrigin(t *testing.T, client *db.Client, country, region string) *models.Origin {
	t.Helper()
	origin := &models.Origin{CountryCode: country, Region: region}
	if err := client.DB().Create(origin).Error; err != nil {
		t.Fatalf("create origin: %v", err)
	}
	return origin
}

// MustTea inserts an active tea in category with the given price.
func MustTea(t *testing.T, client *db.Client, name string, categoryID uuid.UUID, originID *uuid.UUID, price string) *models.Tea {
	t.Helper()
	tea := &models.Tea{
		Name:          name,
		CategoryID:    categoryID,
		OriginID:      originID,
		TeaType:       enums.TeaTypeGreen,
		CaffeineLevel: enums.CaffeineLevelMedium,
		Price:         decimal.RequireFromString(price),
		StockQty:      10,
		IsActive:      true,
	}
	if err := client.DB().Create(tea).Error; err != nil {
		t.Fatalf("create tea: %v", err)
	}
	return tea
}

// MustOrder inserts a new order owned by userID.
func MustOrder(t *testing.T, client *db.Client, userID uuid.UUID) *models.Order {
	t.Helper()
	order := &models.Order{UserID: userID, Status: enums.OrderStatusNew}
	if err := client.DB().Create(order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

// MustOrderItem inserts a line with an explicit unit price.
func MustOrderItem(t *testing.T, client *db.Client, orderID, teaID uuid.UUID, qty int, unitPrice string) *models.OrderItem {
	t.Helper()
	item := &models.OrderItem{
		OrderID:   orderID,
		TeaID:     teaID,
		Quantity:  qty,
		UnitPrice: decimal.RequireFromString(unitPrice),
	}
	if err := client.DB().Create(item).Error; err != nil {
		t.Fatalf("create order item: %v", err)
	}
	return item
}

// Today returns the current UTC calendar day at midnight.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
