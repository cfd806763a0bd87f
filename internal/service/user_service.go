package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotel/internal/auth"
	"hotel/internal/domain"
	"hotel/internal/models"

	"github.com/rs/zerolog"
)

const msgInvalidCredentials = "Invalid email or password"

type UserService struct {
	users    domain.UserRepository
	sessions domain.SessionStore
	logger   *zerolog.Logger
}

// NewUserService wires account operations. sessions may be nil, which
// disables login throttling.
func NewUserService(users domain.UserRepository, sessions domain.SessionStore, logger *zerolog.Logger) *UserService {
	return &UserService{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// Register creates a USER account. Callers sign the new user in afterwards.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, domain.Validation(MsgMissingFields)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		Role:         models.RoleUser,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflict("Email already registered")
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Authenticate checks credentials. Unknown emails and wrong passwords
// produce the same error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.Validation(MsgMissingFields)
	}

	if s.sessions != nil {
		allowed, err := s.sessions.CheckRateLimit(ctx, "login:"+email,
			models.LoginAttemptsLimit, models.LoginAttemptsWindow*time.Second)
		if err != nil {
			s.logger.Warn().Err(err).Msg("login throttle unavailable")
		} else if !allowed {
			return nil, domain.RateLimited("Too many login attempts, try again later")
		}
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Authentication(msgInvalidCredentials)
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		s.logger.Debug().Str("user_id", user.ID).Msg("password mismatch")
		return nil, domain.Authentication(msgInvalidCredentials)
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	return user, nil
}

// ListUsers is the admin user directory.
func (s *UserService) ListUsers(ctx context.Context, actor *models.User) ([]*models.User, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.users.ListUsers(ctx)
}

func (s *UserService) CountUsers(ctx context.Context) (int, error) {
	return s.users.CountUsers(ctx)
}
