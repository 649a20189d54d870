package migrate

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMigration(t *testing.T, suffix string) string {
	t.Helper()
	matches, err := fs.Glob(Embedded(), "migrations/*_"+suffix+".sql")
	require.NoError(t, err)
	require.Len(t, matches, 1, "expected one %s migration", suffix)

	data, err := fs.ReadFile(Embedded(), matches[0])
	require.NoError(t, err)
	return string(data)
}

func TestCatalogMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "create_catalog_tables")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS tea_categories",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_tea_categories_name",
		"CHECK (country_code ~ '^[A-Z]{2}$')",
		"REFERENCES tea_categories (id) ON DELETE RESTRICT",
		"REFERENCES origins (id) ON DELETE SET NULL",
		"CHECK (price > 0)",
		"CHECK (stock_qty >= 0)",
	}
	for _, sub := range checks {
		assert.Contains(t, content, sub)
	}
}

func TestOrdersMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "create_orders_tables")

	checks := []string{
		"REFERENCES orders (id) ON DELETE CASCADE",
		"REFERENCES teas (id) ON DELETE RESTRICT",
		"CONSTRAINT order_items_order_tea_key UNIQUE (order_id, tea_id)",
		"CHECK (quantity > 0)",
		"CHECK (unit_price > 0)",
	}
	for _, sub := range checks {
		assert.Contains(t, content, sub)
	}
}

func TestSeedMigrationGrantsDefaultGroup(t *testing.T) {
	content := readMigration(t, "seed_permissions")
	assert.Contains(t, content, "'TeaStoreUser'")
	for _, perm := range []string{"'view_tea'", "'add_order'", "'add_orderitem'"} {
		assert.Contains(t, content, perm)
	}
	assert.NotContains(t, content, "'delete_order'")
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_bad.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))

	err := ValidateDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid migration filename")
}

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Tea Tasting Notes!")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "_add_tea_tasting_notes.sql"), path)
	require.NoError(t, ValidateDir(dir))
}
