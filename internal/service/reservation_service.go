package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel/internal/domain"
	"hotel/internal/events"
	"hotel/internal/models"

	"github.com/rs/zerolog"
)

const (
	TaskUpsert       = "upsert"
	TaskUpdateStatus = "update_status"

	msgReservationNotFound = "Reservation not found"
)

type reservationStore interface {
	domain.RoomRepository
	domain.ReservationRepository
}

type ReservationService struct {
	repo           reservationStore
	eventBus       domain.EventPublisher
	sheetsWorker   domain.SyncWorker
	preventOverlap bool
	logger         *zerolog.Logger
}

func NewReservationService(repo reservationStore, eventBus domain.EventPublisher, sheetsWorker domain.SyncWorker, preventOverlap bool, logger *zerolog.Logger) *ReservationService {
	return &ReservationService{
		repo:           repo,
		eventBus:       eventBus,
		sheetsWorker:   sheetsWorker,
		preventOverlap: preventOverlap,
		logger:         logger,
	}
}

// CreateReservationInput is what a guest submits from the booking form.
type CreateReservationInput struct {
	RoomID     string
	CheckIn    models.Date
	CheckOut   models.Date
	Guests     int
	GuestName  string
	GuestEmail string
	GuestPhone string
}

// CreateReservation validates the request, prices the stay and stores it as PENDING.
// Checks run in order and the first failure is returned.
func (s *ReservationService) CreateReservation(ctx context.Context, actor *models.User, in CreateReservationInput) (*models.Reservation, error) {
	if err := RequireUser(actor); err != nil {
		return nil, err
	}

	in.GuestName = strings.TrimSpace(in.GuestName)
	in.GuestEmail = strings.TrimSpace(in.GuestEmail)
	if in.RoomID == "" || in.CheckIn.IsZero() || in.CheckOut.IsZero() || in.Guests == 0 ||
		in.GuestName == "" || in.GuestEmail == "" {
		return nil, domain.Validation(MsgMissingFields)
	}

	room, err := s.repo.GetRoom(ctx, in.RoomID)
	if err != nil {
		return nil, notFound(err, msgRoomNotFound)
	}

	nights := Nights(in.CheckIn, in.CheckOut)
	if nights <= 0 {
		return nil, domain.Validation("Invalid dates")
	}
	if in.Guests < 1 {
		return nil, domain.Validation("Guests must be at least 1")
	}
	if in.Guests > room.Capacity {
		return nil, domain.Validation("Too many guests for this room")
	}

	res := &models.Reservation{
		UserID:     actor.ID,
		RoomID:     room.ID,
		CheckIn:    in.CheckIn,
		CheckOut:   in.CheckOut,
		Guests:     in.Guests,
		Status:     models.StatusPending,
		GuestName:  in.GuestName,
		GuestEmail: in.GuestEmail,
		GuestPhone: strings.TrimSpace(in.GuestPhone),
		TotalPrice: float64(nights) * room.PricePerNight,
	}

	if s.preventOverlap {
		err = s.repo.CreateReservationWithLock(ctx, res)
	} else {
		err = s.repo.CreateReservation(ctx, res)
	}
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflict("Room is already reserved for the selected dates")
		}
		return nil, err
	}

	s.logger.Info().
		Str("reservation_id", res.ID).
		Str("room_id", room.ID).
		Int("nights", nights).
		Float64("total_price", res.TotalPrice).
		Msg("reservation created")

	s.publishEvent(events.EventReservationCreated, res, room, "", actor)
	s.enqueueSync(ctx, res, TaskUpsert)
	return res, nil
}

// UpdateReservation applies patch. Changing status requires ADMIN; other
// fields may be edited by whoever can view the reservation. The guest count
// stays within the room capacity.
func (s *ReservationService) UpdateReservation(ctx context.Context, actor *models.User, id string, patch models.ReservationUpdate) (*models.Reservation, error) {
	if err := RequireUser(actor); err != nil {
		return nil, err
	}
	if patch.Status != nil && !actor.IsAdmin() {
		return nil, domain.Authorization("Only admins can update reservation status")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, domain.Validation("Invalid status")
	}
	if patch.Guests != nil && *patch.Guests < 1 {
		return nil, domain.Validation("Guests must be at least 1")
	}
	if patch.GuestName != nil && strings.TrimSpace(*patch.GuestName) == "" {
		return nil, domain.Validation("Guest name cannot be empty")
	}
	if patch.GuestEmail != nil && strings.TrimSpace(*patch.GuestEmail) == "" {
		return nil, domain.Validation("Guest email cannot be empty")
	}

	current, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return nil, notFound(err, msgReservationNotFound)
	}
	if current.UserID != actor.ID && actor.Role == models.RoleUser {
		return nil, domain.Authorization("You cannot modify this reservation")
	}
	if patch.Empty() {
		return current, nil
	}
	if patch.Guests != nil {
		room, err := s.repo.GetRoom(ctx, current.RoomID)
		if err != nil {
			return nil, notFound(err, msgRoomNotFound)
		}
		if *patch.Guests > room.Capacity {
			return nil, domain.Validation("Too many guests for this room")
		}
	}

	updated, err := s.repo.UpdateReservation(ctx, id, patch)
	if err != nil {
		return nil, notFound(err, msgReservationNotFound)
	}

	if updated.Status != current.Status {
		s.logger.Info().
			Str("reservation_id", id).
			Str("from", string(current.Status)).
			Str("to", string(updated.Status)).
			Str("by", actor.ID).
			Msg("reservation status changed")
		s.publishEvent(events.EventReservationStatusChanged, updated, nil, current.Status, actor)
		s.enqueueSync(ctx, updated, TaskUpdateStatus)
	} else {
		s.enqueueSync(ctx, updated, TaskUpsert)
	}
	return updated, nil
}

// ListReservations returns the caller's reservations, or every reservation
// when an admin asks for all.
func (s *ReservationService) ListReservations(ctx context.Context, actor *models.User, all bool) ([]*models.Reservation, error) {
	if err := RequireUser(actor); err != nil {
		return nil, err
	}
	if all && actor.IsAdmin() {
		return s.repo.ListReservations(ctx)
	}
	return s.repo.ListReservationsByUser(ctx, actor.ID)
}

// GetReservation is visible to its owner and to hotel staff.
func (s *ReservationService) GetReservation(ctx context.Context, actor *models.User, id string) (*models.Reservation, error) {
	if err := RequireUser(actor); err != nil {
		return nil, err
	}
	res, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return nil, notFound(err, msgReservationNotFound)
	}
	if res.UserID != actor.ID && actor.Role == models.RoleUser {
		return nil, domain.Authorization("You cannot view this reservation")
	}
	return res, nil
}

// GetReservationWithRoom is used by documents that print room details.
// The room is nil when it has been deleted since the booking was made.
func (s *ReservationService) GetReservationWithRoom(ctx context.Context, actor *models.User, id string) (*models.Reservation, *models.Room, error) {
	res, err := s.GetReservation(ctx, actor, id)
	if err != nil {
		return nil, nil, err
	}
	room, err := s.repo.GetRoom(ctx, res.RoomID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return res, nil, nil
		}
		return nil, nil, fmt.Errorf("load reservation room: %w", err)
	}
	return res, room, nil
}

func (s *ReservationService) publishEvent(eventType string, res *models.Reservation, room *models.Room, previous models.ReservationStatus, actor *models.User) {
	if s.eventBus == nil {
		return
	}

	payload := events.ReservationEventPayload{
		ReservationID:  res.ID,
		UserID:         res.UserID,
		RoomID:         res.RoomID,
		CheckIn:        res.CheckIn.String(),
		CheckOut:       res.CheckOut.String(),
		Guests:         res.Guests,
		GuestName:      res.GuestName,
		Status:         string(res.Status),
		PreviousStatus: string(previous),
		TotalPrice:     res.TotalPrice,
		ChangedBy:      actorID(actor),
	}
	if room != nil {
		payload.RoomNumber = room.Number
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Str("reservation_id", res.ID).Msg("publish event error")
	}
}

func (s *ReservationService) enqueueSync(ctx context.Context, res *models.Reservation, taskType string) {
	if s.sheetsWorker == nil {
		return
	}

	var status models.ReservationStatus
	if taskType == TaskUpdateStatus {
		status = res.Status
	}

	if err := s.sheetsWorker.EnqueueTask(ctx, taskType, res.ID, res, status); err != nil {
		s.logger.Error().Err(err).Str("reservation_id", res.ID).Str("task", taskType).Msg("sheets enqueue error")
	}
}
