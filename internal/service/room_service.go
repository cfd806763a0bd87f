package service

import (
	"context"
	"errors"
	"strings"

	"hotel/internal/domain"
	"hotel/internal/events"
	"hotel/internal/models"

	"github.com/rs/zerolog"
)

const msgRoomNotFound = "Room not found"

type RoomService struct {
	rooms        domain.RoomRepository
	reservations domain.ReservationRepository
	eventBus     domain.EventPublisher
	logger       *zerolog.Logger
}

func NewRoomService(rooms domain.RoomRepository, reservations domain.ReservationRepository, eventBus domain.EventPublisher, logger *zerolog.Logger) *RoomService {
	return &RoomService{
		rooms:        rooms,
		reservations: reservations,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// SearchRooms returns the full catalog when all is set, otherwise the rooms
// bookable for q.
func (s *RoomService) SearchRooms(ctx context.Context, q AvailabilityQuery, all bool) ([]*models.Room, error) {
	catalog, err := s.rooms.ListRooms(ctx, false)
	if err != nil {
		return nil, err
	}
	if all {
		return catalog, nil
	}

	var reservations []*models.Reservation
	if q.hasDates() {
		if reservations, err = s.reservations.ListReservations(ctx); err != nil {
			return nil, err
		}
	}
	return FindAvailableRooms(catalog, reservations, q), nil
}

func (s *RoomService) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.rooms.GetRoom(ctx, id)
	if err != nil {
		return nil, notFound(err, msgRoomNotFound)
	}
	return room, nil
}

// CreateRoomInput mirrors the admin form.
type CreateRoomInput struct {
	Number        string
	Name          string
	Type          models.RoomType
	Description   string
	Capacity      int
	PricePerNight float64
	ImageURL      string
	Amenities     []string
}

func (s *RoomService) CreateRoom(ctx context.Context, actor *models.User, in CreateRoomInput) (*models.Room, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}

	in.Number = strings.TrimSpace(in.Number)
	in.Name = strings.TrimSpace(in.Name)
	if in.Number == "" || in.Name == "" || in.Type == "" || strings.TrimSpace(in.Description) == "" ||
		in.Capacity == 0 || in.PricePerNight == 0 {
		return nil, domain.Validation(MsgMissingFields)
	}
	if err := validateRoomFields(&in.Type, &in.Capacity, &in.PricePerNight); err != nil {
		return nil, err
	}

	room := &models.Room{
		Number:        in.Number,
		Name:          in.Name,
		Type:          in.Type,
		Description:   in.Description,
		Capacity:      in.Capacity,
		PricePerNight: in.PricePerNight,
		ImageURL:      in.ImageURL,
		Amenities:     in.Amenities,
		Available:     true,
	}
	if room.ImageURL == "" {
		room.ImageURL = models.DefaultRoomImage
	}
	if room.Amenities == nil {
		room.Amenities = []string{}
	}

	if err := s.rooms.CreateRoom(ctx, room); err != nil {
		return nil, roomConflict(err)
	}

	s.publishRoomEvent(events.EventRoomCreated, room, actor)
	return room, nil
}

func (s *RoomService) UpdateRoom(ctx context.Context, actor *models.User, id string, upd models.RoomUpdate) (*models.Room, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	if upd.Number != nil && strings.TrimSpace(*upd.Number) == "" {
		return nil, domain.Validation("Room number cannot be empty")
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, domain.Validation("Room name cannot be empty")
	}
	if err := validateRoomFields(upd.Type, upd.Capacity, upd.PricePerNight); err != nil {
		return nil, err
	}

	room, err := s.rooms.UpdateRoom(ctx, id, upd)
	if err != nil {
		return nil, roomConflict(notFound(err, msgRoomNotFound))
	}

	s.publishRoomEvent(events.EventRoomUpdated, room, actor)
	return room, nil
}

// DeleteRoom removes the room permanently. Reservations that reference it
// are kept; lookups through them report the room as missing.
func (s *RoomService) DeleteRoom(ctx context.Context, actor *models.User, id string) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	room, err := s.rooms.GetRoom(ctx, id)
	if err != nil {
		return notFound(err, msgRoomNotFound)
	}
	if err := s.rooms.DeleteRoom(ctx, id); err != nil {
		return notFound(err, msgRoomNotFound)
	}

	s.publishRoomEvent(events.EventRoomDeleted, room, actor)
	return nil
}

func validateRoomFields(t *models.RoomType, capacity *int, price *float64) error {
	if t != nil && !t.Valid() {
		return domain.Validation("Invalid room type")
	}
	if capacity != nil && *capacity < 1 {
		return domain.Validation("Capacity must be a positive number")
	}
	if price != nil && *price <= 0 {
		return domain.Validation("Price per night must be a positive number")
	}
	return nil
}

func roomConflict(err error) error {
	var de *domain.Error
	if errors.Is(err, domain.ErrConflict) && !errors.As(err, &de) {
		return domain.Conflict("Room number already exists")
	}
	return err
}

func (s *RoomService) publishRoomEvent(eventType string, room *models.Room, actor *models.User) {
	if s.eventBus == nil {
		return
	}

	payload := events.RoomEventPayload{
		RoomID:    room.ID,
		Number:    room.Number,
		Name:      room.Name,
		Price:     room.PricePerNight,
		Available: room.Available,
		ChangedBy: actorID(actor),
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Str("room_id", room.ID).Msg("publish event error")
	}
}
