package repository

import (
	"context"
	"sync/atomic"
	"time"

	"hotel/internal/domain"

	"github.com/rs/zerolog"
)

const recoveryInterval = time.Minute

// FailoverSessionStore uses primary until it errors, then serves from
// fallback and probes primary again once per recoveryInterval.
type FailoverSessionStore struct {
	primary   domain.SessionStore
	fallback  domain.SessionStore
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
	now       func() time.Time
}

func NewFailoverSessionStore(primary, fallback domain.SessionStore, logger *zerolog.Logger) *FailoverSessionStore {
	return &FailoverSessionStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		now:      time.Now,
	}
}

// usePrimary reports whether the next call should go to primary.
func (r *FailoverSessionStore) usePrimary() bool {
	if !r.isDown.Load() {
		return true
	}
	return r.now().Sub(time.Unix(0, r.lastCheck.Load())) > recoveryInterval
}

func (r *FailoverSessionStore) markDown(err error) {
	if !r.isDown.Swap(true) {
		r.logger.Error().Err(err).Msg("primary session store failed, falling back to memory")
	}
	r.lastCheck.Store(r.now().UnixNano())
}

func (r *FailoverSessionStore) markUp() {
	if r.isDown.Swap(false) {
		r.logger.Info().Msg("primary session store recovered")
	}
}

func (r *FailoverSessionStore) RevokeSession(ctx context.Context, sessionID string, ttl time.Duration) error {
	// always remember the revocation locally so a later outage cannot resurrect it
	_ = r.fallback.RevokeSession(ctx, sessionID, ttl)
	if r.usePrimary() {
		err := r.primary.RevokeSession(ctx, sessionID, ttl)
		if err == nil {
			r.markUp()
			return nil
		}
		r.markDown(err)
	}
	return nil
}

func (r *FailoverSessionStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	if r.usePrimary() {
		revoked, err := r.primary.IsRevoked(ctx, sessionID)
		if err == nil {
			r.markUp()
			if revoked {
				return true, nil
			}
			return r.fallback.IsRevoked(ctx, sessionID)
		}
		r.markDown(err)
	}
	return r.fallback.IsRevoked(ctx, sessionID)
}

func (r *FailoverSessionStore) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if r.usePrimary() {
		allowed, err := r.primary.CheckRateLimit(ctx, key, limit, window)
		if err == nil {
			r.markUp()
			return allowed, nil
		}
		r.markDown(err)
	}
	return r.fallback.CheckRateLimit(ctx, key, limit, window)
}

// Down reports whether the store is currently serving from fallback.
func (r *FailoverSessionStore) Down() bool {
	return r.isDown.Load()
}
