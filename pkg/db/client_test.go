package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testModel struct {
	ID   int
	Name string `gorm:"uniqueIndex"`
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := OpenSQLite("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, client.DB().AutoMigrate(&testModel{}))
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&testModel{Name: "committed"}).Error
	}))

	var count int64
	require.NoError(t, client.DB().Model(&testModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{Name: "rolled"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	require.NoError(t, client.DB().Model(&testModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "rollback should leave one record")
}

func TestPing(t *testing.T) {
	client := newTestClient(t)
	require.NoError(t, client.Ping(context.Background()))
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	client := newTestClient(t)
	require.NoError(t, client.DB().Create(&testModel{Name: "oolong"}).Error)

	err := client.DB().Create(&testModel{Name: "oolong"}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err, ""))
	assert.False(t, IsForeignKeyViolation(err))
}

func TestIsUniqueViolation_Postgres(t *testing.T) {
	pgxErr := &pgconn.PgError{Code: "23505", ConstraintName: "tea_categories_name_key"}
	assert.True(t, IsUniqueViolation(pgxErr, ""))
	assert.True(t, IsUniqueViolation(pgxErr, "tea_categories_name_key"))
	assert.False(t, IsUniqueViolation(pgxErr, "other_key"))

	pqErr := &pq.Error{Code: "23503", Constraint: "teas_category_id_fkey"}
	assert.True(t, IsForeignKeyViolation(pqErr))
	assert.False(t, IsUniqueViolation(pqErr, ""))
}

func TestIsNotFound(t *testing.T) {
	client := newTestClient(t)
	var m testModel
	err := client.DB().First(&m, 42).Error
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(nil))
}
