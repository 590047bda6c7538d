package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// windowCounter is the subset of the redis client used by RedisLimiter
type windowCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RedisLimiter is a fixed window counter shared by every API instance
type RedisLimiter struct {
	store  windowCounter
	prefix string
	limit  int
	window time.Duration
}

// NewRedisLimiter creates a limiter allowing limit requests per window
func NewRedisLimiter(store windowCounter, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		store:  store,
		prefix: "product-api:throttle:",
		limit:  limit,
		window: window,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	count, ttl, err := l.store.IncrWindow(ctx, l.prefix+key, l.window)
	if err != nil {
		return Result{}, fmt.Errorf("throttle %s: %w", key, err)
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	res := Result{
		Allowed:   int(count) <= l.limit,
		Limit:     l.limit,
		Remaining: remaining,
	}
	if !res.Allowed {
		res.RetryAfter = ttl
	}

	return res, nil
}
