package database

import (
	"context"
	"testing"

	"hotel/internal/domain"
	"hotel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoom(number string, available bool) *models.Room {
	return &models.Room{
		Number:        number,
		Name:          "Room " + number,
		Type:          models.RoomDouble,
		Description:   "test room",
		Capacity:      2,
		PricePerNight: 100,
		ImageURL:      models.DefaultRoomImage,
		Amenities:     []string{"Wi-Fi", "TV"},
		Available:     available,
	}
}

func TestRoomCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	room := newRoom("101", true)
	require.NoError(t, db.CreateRoom(ctx, room))
	assert.NotEmpty(t, room.ID)
	assert.False(t, room.CreatedAt.IsZero())

	t.Run("Get", func(t *testing.T) {
		got, err := db.GetRoom(ctx, room.ID)
		require.NoError(t, err)
		assert.Equal(t, "101", got.Number)
		assert.Equal(t, []string{"Wi-Fi", "TV"}, got.Amenities)
		assert.True(t, got.Available)
		assert.Equal(t, 100.0, got.PricePerNight)
	})

	t.Run("GetByNumber", func(t *testing.T) {
		got, err := db.GetRoomByNumber(ctx, "101")
		require.NoError(t, err)
		assert.Equal(t, room.ID, got.ID)
	})

	t.Run("DuplicateNumber", func(t *testing.T) {
		err := db.CreateRoom(ctx, newRoom("101", true))
		assert.ErrorIs(t, err, ErrDuplicate)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("Update", func(t *testing.T) {
		price := 150.0
		available := false
		got, err := db.UpdateRoom(ctx, room.ID, models.RoomUpdate{PricePerNight: &price, Available: &available})
		require.NoError(t, err)
		assert.Equal(t, 150.0, got.PricePerNight)
		assert.False(t, got.Available)
		assert.Equal(t, "Room 101", got.Name)

		stored, err := db.GetRoom(ctx, room.ID)
		require.NoError(t, err)
		assert.Equal(t, 150.0, stored.PricePerNight)
		assert.False(t, stored.Available)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		name := "ghost"
		_, err := db.UpdateRoom(ctx, "missing", models.RoomUpdate{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, db.DeleteRoom(ctx, room.ID))
		_, err := db.GetRoom(ctx, room.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, db.DeleteRoom(ctx, room.ID), ErrNotFound)
	})
}

func TestListRooms(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateRoom(ctx, newRoom("205", true)))
	require.NoError(t, db.CreateRoom(ctx, newRoom("101", true)))
	require.NoError(t, db.CreateRoom(ctx, newRoom("208", false)))

	all, err := db.ListRooms(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "101", all[0].Number)

	open, err := db.ListRooms(ctx, true)
	require.NoError(t, err)
	assert.Len(t, open, 2)
	for _, r := range open {
		assert.True(t, r.Available)
	}
}

func TestListRooms_Empty(t *testing.T) {
	db := setupTestDB(t)
	rooms, err := db.ListRooms(context.Background(), false)
	require.NoError(t, err)
	assert.NotNil(t, rooms)
	assert.Empty(t, rooms)
}
