package repository

import (
	"context"
	"sync"
	"time"
)

// MemorySessionStore keeps revocations and counters in process memory.
type MemorySessionStore struct {
	mu         sync.Mutex
	revoked    map[string]time.Time
	rateLimits map[string]*rateLimitEntry
	now        func() time.Time
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		revoked:    make(map[string]time.Time),
		rateLimits: make(map[string]*rateLimitEntry),
		now:        time.Now,
	}
}

func (r *MemorySessionStore) RevokeSession(_ context.Context, sessionID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[sessionID] = r.now().Add(ttl)
	return nil
}

func (r *MemorySessionStore) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.revoked[sessionID]
	if !ok {
		return false, nil
	}
	if r.now().After(until) {
		delete(r.revoked, sessionID)
		return false, nil
	}
	return true, nil
}

func (r *MemorySessionStore) CheckRateLimit(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	entry, ok := r.rateLimits[key]
	if !ok || now.After(entry.expiresAt) {
		entry = &rateLimitEntry{expiresAt: now.Add(window)}
		r.rateLimits[key] = entry
	}
	entry.count++
	return entry.count <= limit, nil
}
