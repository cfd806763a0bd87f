package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"hotel/internal/domain"
	"hotel/internal/events"
	"hotel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func roomA() *models.Room {
	return &models.Room{ID: "room-a", Number: "101", Capacity: 2, PricePerNight: 100, Available: true}
}

func validInput() CreateReservationInput {
	return CreateReservationInput{
		RoomID:     "room-a",
		CheckIn:    date(2026, 4, 1),
		CheckOut:   date(2026, 4, 4),
		Guests:     2,
		GuestName:  "Jane Doe",
		GuestEmail: "jane@example.com",
	}
}

func TestReservationService_CreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("prices nights and starts pending", func(t *testing.T) {
		repo := new(MockRepository)
		bus := new(MockEventPublisher)
		worker := new(MockSyncWorker)
		svc := NewReservationService(repo, bus, worker, false, nopLogger())

		repo.On("GetRoom", ctx, "room-a").Return(roomA(), nil)
		repo.On("CreateReservation", ctx, mock.AnythingOfType("*models.Reservation")).
			Run(func(args mock.Arguments) { args.Get(1).(*models.Reservation).ID = "res-new" }).
			Return(nil)
		bus.On("PublishJSON", events.EventReservationCreated, mock.MatchedBy(func(p events.ReservationEventPayload) bool {
			return p.ReservationID == "res-new" && p.RoomNumber == "101" && p.ChangedBy == "user-1"
		})).Return(nil)
		worker.On("EnqueueTask", ctx, TaskUpsert, "res-new", mock.Anything, models.ReservationStatus("")).Return(nil)

		res, err := svc.CreateReservation(ctx, guest(), validInput())
		require.NoError(t, err)
		assert.Equal(t, 300.0, res.TotalPrice)
		assert.Equal(t, models.StatusPending, res.Status)
		assert.Equal(t, "user-1", res.UserID)

		repo.AssertExpectations(t)
		bus.AssertExpectations(t)
		worker.AssertExpectations(t)
	})

	t.Run("anonymous", func(t *testing.T) {
		svc := NewReservationService(new(MockRepository), nil, nil, false, nopLogger())
		_, err := svc.CreateReservation(ctx, nil, validInput())
		assert.ErrorIs(t, err, domain.ErrAuthentication)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := NewReservationService(new(MockRepository), nil, nil, false, nopLogger())
		in := validInput()
		in.GuestEmail = " "
		_, err := svc.CreateReservation(ctx, guest(), in)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, "Missing required fields", err.Error())
	})

	t.Run("room not found", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetRoom", ctx, "room-a").Return(nil, fmt.Errorf("lookup: %w", domain.ErrNotFound))
		svc := NewReservationService(repo, nil, nil, false, nopLogger())

		_, err := svc.CreateReservation(ctx, guest(), validInput())
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, "Room not found", err.Error())
	})

	t.Run("same day check-out", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetRoom", ctx, "room-a").Return(roomA(), nil)
		svc := NewReservationService(repo, nil, nil, false, nopLogger())

		in := validInput()
		in.CheckOut = in.CheckIn
		_, err := svc.CreateReservation(ctx, guest(), in)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, "Invalid dates", err.Error())
		repo.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
	})

	t.Run("too many guests", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetRoom", ctx, "room-a").Return(roomA(), nil)
		svc := NewReservationService(repo, nil, nil, false, nopLogger())

		in := validInput()
		in.Guests = 3
		_, err := svc.CreateReservation(ctx, guest(), in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("overlap prevented", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetRoom", ctx, "room-a").Return(roomA(), nil)
		repo.On("CreateReservationWithLock", ctx, mock.Anything).Return(fmt.Errorf("insert: %w", domain.ErrConflict))
		svc := NewReservationService(repo, nil, nil, true, nopLogger())

		_, err := svc.CreateReservation(ctx, guest(), validInput())
		assert.ErrorIs(t, err, domain.ErrConflict)
		repo.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
	})
}

func TestReservationService_UpdateReservation(t *testing.T) {
	ctx := context.Background()
	pending := func() *models.Reservation {
		return &models.Reservation{
			ID: "res-1", UserID: "user-1", RoomID: "room-a",
			CheckIn: date(2026, 4, 1), CheckOut: date(2026, 4, 4),
			Guests: 2, Status: models.StatusPending, TotalPrice: 300,
		}
	}

	t.Run("non-admin cannot change status", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewReservationService(repo, nil, nil, false, nopLogger())

		status := models.StatusConfirmed
		_, err := svc.UpdateReservation(ctx, guest(), "res-1", models.ReservationUpdate{Status: &status})
		assert.ErrorIs(t, err, domain.ErrAuthorization)
		repo.AssertNotCalled(t, "UpdateReservation", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("admin confirms", func(t *testing.T) {
		repo := new(MockRepository)
		bus := new(MockEventPublisher)
		worker := new(MockSyncWorker)
		svc := NewReservationService(repo, bus, worker, false, nopLogger())

		status := models.StatusConfirmed
		patch := models.ReservationUpdate{Status: &status}
		confirmed := pending()
		confirmed.Status = models.StatusConfirmed

		repo.On("GetReservation", ctx, "res-1").Return(pending(), nil)
		repo.On("UpdateReservation", ctx, "res-1", patch).Return(confirmed, nil)
		bus.On("PublishJSON", events.EventReservationStatusChanged, mock.MatchedBy(func(p events.ReservationEventPayload) bool {
			return p.PreviousStatus == "PENDING" && p.Status == "CONFIRMED" && p.ChangedBy == "admin-1"
		})).Return(nil)
		worker.On("EnqueueTask", ctx, TaskUpdateStatus, "res-1", confirmed, models.StatusConfirmed).Return(nil)

		res, err := svc.UpdateReservation(ctx, admin(), "res-1", patch)
		require.NoError(t, err)
		assert.Equal(t, models.StatusConfirmed, res.Status)
		assert.Equal(t, 300.0, res.TotalPrice)
		bus.AssertExpectations(t)
		worker.AssertExpectations(t)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc := NewReservationService(new(MockRepository), nil, nil, false, nopLogger())
		status := models.ReservationStatus("DONE")
		_, err := svc.UpdateReservation(ctx, admin(), "res-1", models.ReservationUpdate{Status: &status})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetReservation", ctx, "missing").Return(nil, domain.ErrNotFound)
		svc := NewReservationService(repo, nil, nil, false, nopLogger())

		status := models.StatusCancelled
		_, err := svc.UpdateReservation(ctx, admin(), "missing", models.ReservationUpdate{Status: &status})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("guest edits contact details", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewReservationService(repo, nil, nil, false, nopLogger())

		patch := models.ReservationUpdate{GuestPhone: ptr("+1 555 0100")}
		updated := pending()
		updated.GuestPhone = "+1 555 0100"
		repo.On("GetReservation", ctx, "res-1").Return(pending(), nil)
		repo.On("UpdateReservation", ctx, "res-1", patch).Return(updated, nil)

		res, err := svc.UpdateReservation(ctx, guest(), "res-1", patch)
		require.NoError(t, err)
		assert.Equal(t, "+1 555 0100", res.GuestPhone)
	})

	t.Run("guest count above capacity", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewReservationService(repo, nil, nil, false, nopLogger())

		repo.On("GetReservation", ctx, "res-1").Return(pending(), nil)
		repo.On("GetRoom", ctx, "room-a").Return(roomA(), nil)

		_, err := svc.UpdateReservation(ctx, guest(), "res-1", models.ReservationUpdate{Guests: ptr(3)})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.EqualError(t, err, "Too many guests for this room")
		repo.AssertNotCalled(t, "UpdateReservation", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("guest count within capacity", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewReservationService(repo, nil, nil, false, nopLogger())

		patch := models.ReservationUpdate{Guests: ptr(1)}
		updated := pending()
		updated.Guests = 1
		repo.On("GetReservation", ctx, "res-1").Return(pending(), nil)
		repo.On("GetRoom", ctx, "room-a").Return(roomA(), nil)
		repo.On("UpdateReservation", ctx, "res-1", patch).Return(updated, nil)

		res, err := svc.UpdateReservation(ctx, guest(), "res-1", patch)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Guests)
	})

	t.Run("guest count on deleted room", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewReservationService(repo, nil, nil, false, nopLogger())

		repo.On("GetReservation", ctx, "res-1").Return(pending(), nil)
		repo.On("GetRoom", ctx, "room-a").Return(nil, domain.ErrNotFound)

		_, err := svc.UpdateReservation(ctx, guest(), "res-1", models.ReservationUpdate{Guests: ptr(1)})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.EqualError(t, err, "Room not found")
	})

	t.Run("guest cannot touch another user's reservation", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewReservationService(repo, nil, nil, false, nopLogger())

		foreign := pending()
		foreign.UserID = "user-2"
		repo.On("GetReservation", ctx, "res-1").Return(foreign, nil)

		_, err := svc.UpdateReservation(ctx, guest(), "res-1", models.ReservationUpdate{})
		assert.ErrorIs(t, err, domain.ErrAuthorization)

		_, err = svc.UpdateReservation(ctx, guest(), "res-1", models.ReservationUpdate{GuestEmail: ptr("someone@example.com")})
		assert.ErrorIs(t, err, domain.ErrAuthorization)
		repo.AssertNotCalled(t, "UpdateReservation", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("anonymous", func(t *testing.T) {
		svc := NewReservationService(new(MockRepository), nil, nil, false, nopLogger())
		_, err := svc.UpdateReservation(ctx, nil, "res-1", models.ReservationUpdate{})
		assert.ErrorIs(t, err, domain.ErrAuthentication)
	})
}

func TestReservationService_ListAndGet(t *testing.T) {
	ctx := context.Background()
	own := &models.Reservation{ID: "res-1", UserID: "user-1"}
	other := &models.Reservation{ID: "res-2", UserID: "user-2"}

	repo := new(MockRepository)
	repo.On("ListReservations", ctx).Return([]*models.Reservation{own, other}, nil)
	repo.On("ListReservationsByUser", ctx, "user-1").Return([]*models.Reservation{own}, nil)
	repo.On("GetReservation", ctx, "res-2").Return(other, nil)
	svc := NewReservationService(repo, nil, nil, false, nopLogger())

	all, err := svc.ListReservations(ctx, admin(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListReservations(ctx, guest(), true)
	require.NoError(t, err)
	assert.Equal(t, []*models.Reservation{own}, mine)

	_, err = svc.ListReservations(ctx, nil, false)
	assert.ErrorIs(t, err, domain.ErrAuthentication)

	_, err = svc.GetReservation(ctx, guest(), "res-2")
	assert.True(t, errors.Is(err, domain.ErrAuthorization))

	staff := &models.User{ID: "staff-1", Role: models.RoleStaff}
	res, err := svc.GetReservation(ctx, staff, "res-2")
	require.NoError(t, err)
	assert.Equal(t, "res-2", res.ID)
}

func TestReservationService_GetReservationWithRoom(t *testing.T) {
	ctx := context.Background()
	booked := &models.Reservation{ID: "res-1", UserID: "user-1", RoomID: "room-a"}
	orphan := &models.Reservation{ID: "res-2", UserID: "user-1", RoomID: "room-gone"}

	repo := new(MockRepository)
	repo.On("GetReservation", ctx, "res-1").Return(booked, nil)
	repo.On("GetReservation", ctx, "res-2").Return(orphan, nil)
	repo.On("GetRoom", ctx, "room-a").Return(roomA(), nil)
	repo.On("GetRoom", ctx, "room-gone").Return(nil, domain.ErrNotFound)
	svc := NewReservationService(repo, nil, nil, false, nopLogger())

	res, room, err := svc.GetReservationWithRoom(ctx, guest(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, "res-1", res.ID)
	require.NotNil(t, room)

	res, room, err = svc.GetReservationWithRoom(ctx, guest(), "res-2")
	require.NoError(t, err)
	assert.Equal(t, "res-2", res.ID)
	assert.Nil(t, room)
}
