package http

import (
	"sync"
	"time"
)

// rateLimiter caps accepted write requests per minute across all
// callers. A zero or negative limit disables it.
type rateLimiter struct {
	mu      sync.Mutex
	limit   int
	counter int
	reset   *time.Ticker
}

func newRateLimiter(limit int) *rateLimiter {
	if limit <= 0 {
		return &rateLimiter{}
	}
	r := &rateLimiter{
		limit: limit,
		reset: time.NewTicker(time.Minute),
	}
	go r.run()
	return r
}

func (r *rateLimiter) run() {
	for range r.reset.C {
		r.mu.Lock()
		r.counter = 0
		r.mu.Unlock()
	}
}

func (r *rateLimiter) allow() bool {
	if r == nil || r.limit <= 0 {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	return r.counter <= r.limit
}
