package gateway

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// FailureThrottle slows repeated authentication failures from one origin.
// Each origin gets a token bucket; a terminal failure consumes a token and
// an origin with an empty bucket is blocked until tokens refill.
type FailureThrottle struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewFailureThrottle creates a throttle allowing the given number of failed
// attempts per minute per origin.
func NewFailureThrottle(failuresPerMinute int) *FailureThrottle {
	if failuresPerMinute <= 0 {
		failuresPerMinute = 10
	}
	return &FailureThrottle{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(failuresPerMinute)),
		burst:    failuresPerMinute,
	}
}

// Blocked reports whether the origin has exhausted its failure budget.
func (t *FailureThrottle) Blocked(origin string) bool {
	return t.limiter(origin).Tokens() < 1
}

// RecordFailure consumes one token from the origin's budget.
func (t *FailureThrottle) RecordFailure(origin string) {
	t.limiter(origin).Allow()
}

func (t *FailureThrottle) limiter(origin string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	lim, ok := t.limiters[origin]
	if !ok {
		lim = rate.NewLimiter(t.limit, t.burst)
		t.limiters[origin] = lim
	}
	return lim
}
