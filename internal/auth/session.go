package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"hotel/internal/domain"
	"hotel/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidSession = errors.New("invalid session")

// Claims is the payload of the session cookie.
type Claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Sessions issues and resolves signed session cookies. Revocation is kept
// in store so logout survives until the token would have expired anyway.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	secure bool
	store  domain.SessionStore
	users  domain.UserRepository
	now    func() time.Time
}

func NewSessions(secret string, ttl time.Duration, secure bool, store domain.SessionStore, users domain.UserRepository) *Sessions {
	if ttl <= 0 {
		ttl = models.DefaultSessionTTL * time.Second
	}
	return &Sessions{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
		store:  store,
		users:  users,
		now:    time.Now,
	}
}

// Issue signs a new session token for user.
func (s *Sessions) Issue(user *models.User) (string, *Claims, error) {
	now := s.now().UTC()
	claims := &Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}
	return signed, claims, nil
}

// Parse validates the signature and expiry of token.
func (s *Sessions) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// Revoke marks the session as logged out for the rest of its lifetime.
func (s *Sessions) Revoke(ctx context.Context, claims *Claims) error {
	ttl := s.ttl
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if ttl <= 0 {
		return nil
	}
	return s.store.RevokeSession(ctx, claims.ID, ttl)
}

// Resolve returns the user behind token. An unknown, expired, revoked or
// orphaned session resolves to no user; only store failures are errors.
func (s *Sessions) Resolve(ctx context.Context, token string) (*models.User, *Claims, error) {
	claims, err := s.Parse(token)
	if err != nil {
		return nil, nil, nil
	}

	revoked, err := s.store.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("check session revocation: %w", err)
	}
	if revoked {
		return nil, nil, nil
	}

	user, err := s.users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("load session user: %w", err)
	}
	return user, claims, nil
}

// Cookie builds the session cookie carrying token.
func (s *Sessions) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     models.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie expires the session cookie in the browser.
func (s *Sessions) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     models.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
