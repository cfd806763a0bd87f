package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel/internal/config"

	"github.com/redis/go-redis/v9"
)

var errNilClient = errors.New("redis client is nil")

type RedisSessionStore struct {
	client *redis.Client
	prefix string
}

// NewRedisClient builds a client from config.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client, prefix: "hotel"}
}

func (r *RedisSessionStore) revokedKey(sessionID string) string {
	return fmt.Sprintf("%s:revoked:%s", r.prefix, sessionID)
}

func (r *RedisSessionStore) RevokeSession(ctx context.Context, sessionID string, ttl time.Duration) error {
	if r.client == nil {
		return errNilClient
	}
	if err := r.client.Set(ctx, r.revokedKey(sessionID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session in redis: %w", err)
	}
	return nil
}

func (r *RedisSessionStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	if r.client == nil {
		return false, errNilClient
	}
	n, err := r.client.Exists(ctx, r.revokedKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session in redis: %w", err)
	}
	return n > 0, nil
}

// CheckRateLimit counts hits on key in a fixed window starting at the first hit.
func (r *RedisSessionStore) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if r.client == nil {
		return false, errNilClient
	}
	rk := fmt.Sprintf("%s:rate_limit:%s", r.prefix, key)
	count, err := r.client.Incr(ctx, rk).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	if count == 1 {
		if err := r.client.Expire(ctx, rk, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count <= int64(limit), nil
}

// Ping checks the redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if client == nil {
		return errNilClient
	}
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
