package service

import (
	"context"
	"time"

	"hotel/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock of the domain.Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListRooms(ctx context.Context, onlyAvailable bool) ([]*models.Room, error) {
	args := m.Called(ctx, onlyAvailable)
	return args.Get(0).([]*models.Room), args.Error(1)
}

func (m *MockRepository) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRepository) CreateRoom(ctx context.Context, room *models.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRepository) UpdateRoom(ctx context.Context, id string, upd models.RoomUpdate) (*models.Room, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRepository) DeleteRoom(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) ListReservations(ctx context.Context) ([]*models.Reservation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Reservation), args.Error(1)
}

func (m *MockRepository) ListReservationsByUser(ctx context.Context, userID string) ([]*models.Reservation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.Reservation), args.Error(1)
}

func (m *MockRepository) ListActiveReservations(ctx context.Context) ([]*models.Reservation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Reservation), args.Error(1)
}

func (m *MockRepository) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockRepository) CreateReservation(ctx context.Context, res *models.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockRepository) CreateReservationWithLock(ctx context.Context, res *models.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockRepository) UpdateReservation(ctx context.Context, id string, upd models.ReservationUpdate) (*models.Reservation, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockRepository) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ListStaff(ctx context.Context) ([]*models.Staff, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Staff), args.Error(1)
}

func (m *MockRepository) GetStaff(ctx context.Context, id string) (*models.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Staff), args.Error(1)
}

func (m *MockRepository) CreateStaff(ctx context.Context, staff *models.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockRepository) UpdateStaff(ctx context.Context, id string, upd models.StaffUpdate) (*models.Staff, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Staff), args.Error(1)
}

func (m *MockRepository) DeleteStaff(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishJSON(eventType string, payload interface{}) error {
	args := m.Called(eventType, payload)
	return args.Error(0)
}

type MockSyncWorker struct {
	mock.Mock
}

func (m *MockSyncWorker) EnqueueTask(ctx context.Context, taskType, reservationID string, res *models.Reservation, status models.ReservationStatus) error {
	args := m.Called(ctx, taskType, reservationID, res, status)
	return args.Error(0)
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) RevokeSession(ctx context.Context, sessionID string, ttl time.Duration) error {
	args := m.Called(ctx, sessionID, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionStore) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func admin() *models.User {
	return &models.User{ID: "admin-1", Name: "Admin", Role: models.RoleAdmin}
}

func guest() *models.User {
	return &models.User{ID: "user-1", Name: "Guest", Role: models.RoleUser}
}

func date(y int, m time.Month, d int) models.Date {
	return models.NewDate(y, m, d)
}

func ptr[T any](v T) *T {
	return &v
}
