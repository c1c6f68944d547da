// Package cache is the key/value store behind stats caching, sessions and
// rate-limit counters. Values are JSON encoded in every backend.
package cache

import (
	"context"
	"log"
	"time"
)

type Cache interface {
	// Get decodes the value into dst. found is false on a miss or expiry.
	Get(ctx context.Context, key string, dst any) (found bool, err error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Incr bumps a counter that lives for window from its first increment.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Close() error
}

// New returns a Redis-backed cache when redisURL is set and reachable, and an
// in-memory one otherwise.
func New(ctx context.Context, redisURL string) Cache {
	if redisURL == "" {
		return NewMemory()
	}

	rc, err := NewRedis(ctx, redisURL)
	if err != nil {
		log.Printf("cache_fallback backend=memory error=%q", err.Error())
		return NewMemory()
	}
	return rc
}
