// Package ratelimit throttles requests per client key within a fixed budget.
package ratelimit

import (
	"context"
	"time"
)

// Result describes the outcome of a single Allow call
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether the request identified by key may proceed
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}
