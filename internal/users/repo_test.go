package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/teastore-backend/internal/testdb"
	"github.com/angelmondragon/teastore-backend/pkg/db"
	"github.com/angelmondragon/teastore-backend/pkg/db/models"
)

func TestRepositoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	client := testdb.Open(t)
	repo := NewRepository(client.DB())

	user, err := repo.Create(ctx, CreateUserDTO{
		Username:     " kasia ",
		Email:        "Kasia@Example.COM",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.Equal(t, "kasia", user.Username)
	assert.Equal(t, "kasia@example.com", user.Email)
	assert.True(t, user.IsActive)

	found, err := repo.FindByUsername(ctx, "kasia")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.Create(ctx, CreateUserDTO{Username: "kasia", PasswordHash: "x"})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, ""))

	exists, err := repo.Exists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepositoryUpdateLastLogin(t *testing.T) {
	ctx := context.Background()
	client := testdb.Open(t)
	repo := NewRepository(client.DB())
	user := testdb.MustUser(t, client, "marek")

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateLastLogin(ctx, user.ID, at))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, found.LastLoginAt)
	assert.True(t, at.Equal(found.LastLoginAt.UTC()))

	dto := FromModel(found)
	assert.Equal(t, "marek", dto.Username)
}

func TestRepositoryListActiveSkipsInactive(t *testing.T) {
	client := testdb.Open(t)
	repo := NewRepository(client.DB())
	testdb.MustUser(t, client, "zenon")
	testdb.MustUser(t, client, "ada")
	testdb.MustUser(t, client, "gone", func(u *models.User) { u.IsActive = false })

	rows, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ada", rows[0].Username)
	assert.Equal(t, "zenon", rows[1].Username)
}

func TestRepositoryUpdatePasswordHash(t *testing.T) {
	ctx := context.Background()
	client := testdb.Open(t)
	repo := NewRepository(client.DB())
	user := testdb.MustUser(t, client, "iga")

	require.NoError(t, repo.UpdatePasswordHash(ctx, user.ID, "$argon2id$new"))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "$argon2id$new", found.PasswordHash)
}
