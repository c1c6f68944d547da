package ratelimit

import (
	"context"
	"time"

	"github.com/zhotheone/nailapp/internal/cache"
)

// Limiter is a fixed-window counter per key. Counters live in the shared
// cache so every instance behind Redis sees the same window.
type Limiter struct {
	store  cache.Cache
	prefix string
	limit  int64
	window time.Duration
}

func New(store cache.Cache, prefix string, limit int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
	}
}

func (l *Limiter) Window() time.Duration { return l.window }

// Allow counts one hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := l.store.Incr(ctx, "ratelimit:"+l.prefix+":"+key, l.window)
	if err != nil {
		return false, err
	}
	return n <= l.limit, nil
}
