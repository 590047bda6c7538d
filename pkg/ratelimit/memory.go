package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps a token bucket per key inside the process.
// It is used when no Redis is configured.
//
// The bucket holds half the limit (rounded up) and refills the other half
// over one window, so no window of that length admits more than limit
// requests. A limit of one refills once per window.
type MemoryLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     int
	burst     int
	refill    rate.Limit
	idle      time.Duration // time for an empty bucket to fill up
	lastSweep time.Time
	now       func() time.Time
}

// NewMemoryLimiter creates a limiter allowing at most limit requests per window
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	if limit < 1 {
		limit = 1
	}
	burst, refill := bucketSize(limit, window)
	return &MemoryLimiter{
		visitors:  make(map[string]*visitor),
		limit:     limit,
		burst:     burst,
		refill:    refill,
		idle:      time.Duration(float64(burst) / float64(refill) * float64(time.Second)),
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// bucketSize splits limit into a burst and a refill rate whose sum over window is limit
func bucketSize(limit int, window time.Duration) (int, rate.Limit) {
	burst := (limit + 1) / 2
	perWindow := limit - burst
	if perWindow == 0 {
		perWindow = 1
	}
	return burst, rate.Limit(float64(perWindow) / window.Seconds())
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.refill, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	res := Result{Limit: l.limit}
	if v.limiter.AllowN(now, 1) {
		res.Allowed = true
		res.Remaining = int(v.limiter.TokensAt(now))
		return res, nil
	}

	r := v.limiter.ReserveN(now, 1)
	res.RetryAfter = r.DelayFrom(now)
	r.CancelAt(now)

	return res, nil
}

// sweep drops visitors whose bucket has filled up again
func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idle {
		return
	}
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.idle {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}
