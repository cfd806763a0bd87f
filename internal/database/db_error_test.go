package database

import (
	"context"
	"testing"

	"hotel/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_ErrorPaths(t *testing.T) {
	logger := zerolog.Nop()
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	db.Close() // every call below must surface the closed connection

	ctx := context.Background()

	t.Run("ListRooms", func(t *testing.T) {
		_, err := db.ListRooms(ctx, false)
		assert.Error(t, err)
	})

	t.Run("CreateRoom", func(t *testing.T) {
		assert.Error(t, db.CreateRoom(ctx, &models.Room{}))
	})

	t.Run("UpdateRoom", func(t *testing.T) {
		_, err := db.UpdateRoom(ctx, "x", models.RoomUpdate{})
		assert.Error(t, err)
	})

	t.Run("CreateReservationWithLock", func(t *testing.T) {
		assert.Error(t, db.CreateReservationWithLock(ctx, &models.Reservation{}))
	})

	t.Run("ListReservations", func(t *testing.T) {
		_, err := db.ListReservations(ctx)
		assert.Error(t, err)
	})

	t.Run("CountUsers", func(t *testing.T) {
		_, err := db.CountUsers(ctx)
		assert.Error(t, err)
	})

	t.Run("ListStaff", func(t *testing.T) {
		_, err := db.ListStaff(ctx)
		assert.Error(t, err)
	})

	t.Run("CreateSyncTask", func(t *testing.T) {
		assert.Error(t, db.CreateSyncTask(ctx, &models.SyncTask{}))
	})

	t.Run("Ready", func(t *testing.T) {
		assert.Error(t, db.Ready(ctx))
	})
}
