package database

import (
	"context"
	"errors"
	"testing"

	"hotel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeHash(p string) (string, error) { return "hashed:" + p, nil }

func TestSeed(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	result, err := db.Seed(ctx, fakeHash)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Users: 4, Rooms: 6, Reservations: 3, Staff: 4}, *result)

	admin, err := db.GetUserByEmail(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "hashed:admin123", admin.PasswordHash)

	open, err := db.ListRooms(ctx, true)
	require.NoError(t, err)
	assert.Len(t, open, 5)

	res, err := db.GetReservation(ctx, "res-1")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", res.CheckIn.String())
	assert.Equal(t, 1680.0, res.TotalPrice)

	t.Run("Idempotent", func(t *testing.T) {
		again, err := db.Seed(ctx, fakeHash)
		require.NoError(t, err)
		assert.Equal(t, SeedResult{}, *again)

		n, err := db.CountUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})
}

func TestSeed_HashError(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.Seed(context.Background(), func(string) (string, error) { return "", errors.New("no entropy") })
	assert.Error(t, err)

	n, err := db.CountUsers(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
