package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/futureatoms/summitwire/internal/config"
	"github.com/futureatoms/summitwire/internal/ports"
)

// RedisCounter is a shared keyed counter with TTL. Unlike an in-process map
// it survives restarts and is consistent across instances.
type RedisCounter struct {
	inner *redis.Client
}

var _ ports.CounterStore = (*RedisCounter)(nil)

// NewRedisCounter connects a client; the connection is verified lazily on
// first use so a missing Redis does not block startup.
func NewRedisCounter(cfg config.RedisConfig) *RedisCounter {
	return &RedisCounter{
		inner: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// Incr bumps the counter under key, starting the expiry window on the first
// increment, and returns the new count.
func (c *RedisCounter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	n, err := c.inner.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	if n == 1 && ttl > 0 {
		if err := c.inner.Expire(ctx, key, ttl).Err(); err != nil {
			return n, fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return n, nil
}

// Close releases the underlying connection pool.
func (c *RedisCounter) Close() error {
	return c.inner.Close()
}
