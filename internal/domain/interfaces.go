package domain

import (
	"context"
	"time"

	"hotel/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type RoomRepository interface {
	ListRooms(ctx context.Context, onlyAvailable bool) ([]*models.Room, error)
	GetRoom(ctx context.Context, id string) (*models.Room, error)
	CreateRoom(ctx context.Context, room *models.Room) error
	UpdateRoom(ctx context.Context, id string, upd models.RoomUpdate) (*models.Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

type ReservationRepository interface {
	ListReservations(ctx context.Context) ([]*models.Reservation, error)
	ListReservationsByUser(ctx context.Context, userID string) ([]*models.Reservation, error)
	ListActiveReservations(ctx context.Context) ([]*models.Reservation, error)
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	CreateReservation(ctx context.Context, res *models.Reservation) error
	// CreateReservationWithLock inserts res only if no active reservation
	// on the same room overlaps its stay.
	CreateReservationWithLock(ctx context.Context, res *models.Reservation) error
	UpdateReservation(ctx context.Context, id string, upd models.ReservationUpdate) (*models.Reservation, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	CountUsers(ctx context.Context) (int, error)
}

type StaffRepository interface {
	ListStaff(ctx context.Context) ([]*models.Staff, error)
	GetStaff(ctx context.Context, id string) (*models.Staff, error)
	CreateStaff(ctx context.Context, staff *models.Staff) error
	UpdateStaff(ctx context.Context, id string, upd models.StaffUpdate) (*models.Staff, error)
	DeleteStaff(ctx context.Context, id string) error
}

type Repository interface {
	RoomRepository
	ReservationRepository
	UserRepository
	StaffRepository
}

// SessionStore tracks revoked sessions and throttles login attempts.
type SessionStore interface {
	RevokeSession(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type SheetsWriter interface {
	UpsertReservation(ctx context.Context, res *models.Reservation) error
	UpdateReservationStatus(ctx context.Context, reservationID string, status models.ReservationStatus) error
	ReplaceReservationsSheet(ctx context.Context, reservations []*models.Reservation) error
}

type SyncWorker interface {
	EnqueueTask(ctx context.Context, taskType string, reservationID string, res *models.Reservation, status models.ReservationStatus) error
}
