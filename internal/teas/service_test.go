package teas

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/teastore-backend/internal/testdb"
	"github.com/angelmondragon/teastore-backend/pkg/db"
	"github.com/angelmondragon/teastore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/teastore-backend/pkg/errors"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
)

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	client := testdb.Open(t)
	svc, err := NewService(NewRepository(client.DB()))
	require.NoError(t, err)
	return svc, client
}

func validInput(categoryID uuid.UUID) CreateTeaInput {
	return CreateTeaInput{
		Name:          "Sencha",
		CategoryID:    categoryID,
		TeaType:       enums.TeaTypeGreen,
		CaffeineLevel: enums.CaffeineLevelMedium,
		Price:         decimal.RequireFromString("19.90"),
		StockQty:      5,
		IsActive:      true,
	}
}

func detailsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	return details
}

func TestCreateTeaPriceMustBePositive(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	category := testdb.MustCategory(t, client, "Green")

	for _, price := range []string{"0", "0.00", "-1.50"} {
		input := validInput(category.ID)
		input.Price = decimal.RequireFromString(price)
		_, err := svc.Create(ctx, input)
		assert.Equal(t, i18n.MsgPricePositive, detailsOf(t, err)["price"], price)
	}

	input := validInput(category.ID)
	input.Price = decimal.RequireFromString("0.01")
	created, err := svc.Create(ctx, input)
	require.NoError(t, err)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("0.01")))
	assert.Equal(t, "Green", created.CategoryName)
	assert.False(t, created.AddedAt.IsZero())
}

func TestCreateTeaFieldRules(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	category := testdb.MustCategory(t, client, "Green")

	input := validInput(category.ID)
	input.Name = "sencha"
	input.StockQty = -1
	input.TeaType = "mate"
	missing := uuid.New()
	input.OriginID = &missing

	details := detailsOf(t, mustFail(svc.Create(ctx, input)))
	assert.Equal(t, i18n.MsgTeaNameCapitalized, details["name"])
	assert.Equal(t, i18n.MsgStockNonNegative, details["stock_qty"])
	assert.Equal(t, i18n.MsgTeaTypeInvalid, details["tea_type"])
	assert.Equal(t, i18n.MsgOriginUnknown, details["origin_id"])

	input = validInput(uuid.New())
	details = detailsOf(t, mustFail(svc.Create(ctx, input)))
	assert.Equal(t, i18n.MsgCategoryUnknown, details["category_id"])

	input = validInput(category.ID)
	input.Name = ""
	details = detailsOf(t, mustFail(svc.Create(ctx, input)))
	assert.Equal(t, i18n.MsgTeaNameRequired, details["name"])
}

func TestCreateTeaRejectsValuesOutsideColumns(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	category := testdb.MustCategory(t, client, "Green")

	for _, price := range []string{"12.345", "0.001"} {
		input := validInput(category.ID)
		input.Price = decimal.RequireFromString(price)
		details := detailsOf(t, mustFail(svc.Create(ctx, input)))
		assert.Equal(t, i18n.MsgDecimalPlaces, details["price"], price)
	}

	input := validInput(category.ID)
	input.StockQty = 3000000000
	details := detailsOf(t, mustFail(svc.Create(ctx, input)))
	assert.Equal(t, i18n.MsgValueTooLarge, details["stock_qty"])

	created, err := svc.Create(ctx, validInput(category.ID))
	require.NoError(t, err)
	price := decimal.RequireFromString("12.345")
	_, err = svc.Update(ctx, created.ID, UpdateTeaInput{Price: &price})
	assert.Equal(t, i18n.MsgDecimalPlaces, detailsOf(t, err)["price"])
}

func mustFail(_ *TeaDTO, err error) error {
	return err
}

func TestUpdateTeaPartialAndClearOrigin(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	category := testdb.MustCategory(t, client, "Black")
	origin := testdb.MustOrigin(t, client, "IN", "Assam")
	tea := testdb.MustTea(t, client, "Assam Breakfast", category.ID, &origin.ID, "15.00")

	price := decimal.RequireFromString("17.25")
	updated, err := svc.Update(ctx, tea.ID, UpdateTeaInput{Price: &price})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(price))
	assert.Equal(t, "Assam Breakfast", updated.Name)
	assert.Equal(t, "IN-Assam", updated.OriginLabel)

	updated, err = svc.Update(ctx, tea.ID, UpdateTeaInput{ClearOrigin: true})
	require.NoError(t, err)
	assert.Nil(t, updated.OriginID)

	zero := decimal.Zero
	_, err = svc.Update(ctx, tea.ID, UpdateTeaInput{Price: &zero})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestSearchTeas(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	category := testdb.MustCategory(t, client, "Green")
	testdb.MustTea(t, client, "Sencha Fukamushi", category.ID, nil, "20.00")
	testdb.MustTea(t, client, "Genmaicha", category.ID, nil, "12.00")
	testdb.MustTea(t, client, "Gyokuro 100%", category.ID, nil, "40.00")

	found, err := svc.Search(ctx, "SENCHA")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Sencha Fukamushi", found[0].Name)

	found, err = svc.Search(ctx, "cha")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = svc.Search(ctx, "%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Gyokuro 100%", found[0].Name)

	_, err = svc.Search(ctx, "  ")
	assert.Equal(t, i18n.MsgSearchNameRequired, detailsOf(t, err)["name"])
}

func TestSearchTeasFoldsNonASCII(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	category := testdb.MustCategory(t, client, "Herbal")
	testdb.MustTea(t, client, "Żurawina z miodem", category.ID, nil, "14.00")
	testdb.MustTea(t, client, "Rumianek", category.ID, nil, "9.00")

	for _, query := range []string{"ż", "ŻURAW", "MIODEM"} {
		found, err := svc.Search(ctx, query)
		require.NoError(t, err)
		require.Len(t, found, 1, query)
		assert.Equal(t, "Żurawina z miodem", found[0].Name)
	}
}

func TestListTeasFilters(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	green := testdb.MustCategory(t, client, "Green")
	black := testdb.MustCategory(t, client, "Black")
	testdb.MustTea(t, client, "Sencha", green.ID, nil, "20.00")
	retired := testdb.MustTea(t, client, "Keemun", black.ID, nil, "18.00")
	require.NoError(t, client.DB().Model(retired).Update("is_active", false).Error)

	list, err := svc.List(ctx, ListTeasInput{CategoryID: &black.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Keemun", list[0].Name)

	active := true
	list, err = svc.List(ctx, ListTeasInput{IsActive: &active})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sencha", list[0].Name)

	green2 := enums.TeaTypeGreen
	list, err = svc.List(ctx, ListTeasInput{TeaType: &green2})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestDeleteTeaBlockedByOrderItem(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	category := testdb.MustCategory(t, client, "White")
	tea := testdb.MustTea(t, client, "Bai Mu Dan", category.ID, nil, "25.00")
	user := testdb.MustUser(t, client, "ola")
	order := testdb.MustOrder(t, client, user.ID)
	testdb.MustOrderItem(t, client, order.ID, tea.ID, 1, "25.00")

	err := svc.Delete(ctx, tea.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeReferenced))

	other := testdb.MustTea(t, client, "Silver Needle", category.ID, nil, "45.00")
	require.NoError(t, svc.Delete(ctx, other.ID))
}
