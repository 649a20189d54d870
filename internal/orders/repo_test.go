package orders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/teastore-backend/internal/testdb"
	"github.com/angelmondragon/teastore-backend/pkg/db"
	"github.com/angelmondragon/teastore-backend/pkg/db/models"
)

func TestOrderItemPairUniqueInDatabase(t *testing.T) {
	client := testdb.Open(t)
	repo := NewRepository(client.DB())
	category := testdb.MustCategory(t, client, "Black")
	tea := testdb.MustTea(t, client, "Keemun", category.ID, nil, "10.00")
	user := testdb.MustUser(t, client, "ewa")
	order := testdb.MustOrder(t, client, user.ID)

	ctx := context.Background()
	first := &models.OrderItem{OrderID: order.ID, TeaID: tea.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")}
	require.NoError(t, repo.CreateItem(ctx, first))

	dup := &models.OrderItem{OrderID: order.ID, TeaID: tea.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")}
	err := repo.CreateItem(ctx, dup)
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, uniqueLineConstraint))
}

func TestDeletingTeaWithItemsFailsInDatabase(t *testing.T) {
	client := testdb.Open(t)
	category := testdb.MustCategory(t, client, "Black")
	tea := testdb.MustTea(t, client, "Lapsang", category.ID, nil, "10.00")
	user := testdb.MustUser(t, client, "jan")
	order := testdb.MustOrder(t, client, user.ID)
	testdb.MustOrderItem(t, client, order.ID, tea.ID, 1, "10.00")

	err := client.DB().Delete(&models.Tea{}, "id = ?", tea.ID).Error
	require.Error(t, err)
	assert.True(t, db.IsForeignKeyViolation(err))
}

func TestListItemsOwnerFilter(t *testing.T) {
	client := testdb.Open(t)
	repo := NewRepository(client.DB())
	category := testdb.MustCategory(t, client, "Black")
	tea := testdb.MustTea(t, client, "Ceylon", category.ID, nil, "10.00")
	a := testdb.MustUser(t, client, "a")
	b := testdb.MustUser(t, client, "b")
	testdb.MustOrderItem(t, client, testdb.MustOrder(t, client, a.ID).ID, tea.ID, 1, "10.00")
	testdb.MustOrderItem(t, client, testdb.MustOrder(t, client, b.ID).ID, tea.ID, 1, "10.00")

	rows, err := repo.ListItems(context.Background(), ItemFilter{OwnerID: &a.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Tea)
	assert.Equal(t, "Ceylon", rows[0].Tea.Name)
}
