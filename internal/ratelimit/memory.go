package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxTrackedKeys bounds memory use; past it every bucket is dropped and refilled.
const maxTrackedKeys = 10000

// Memory allows limit hits per window for each key, refilling continuously.
type Memory struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

func NewMemory(limit int, window time.Duration) *Memory {
	if limit <= 0 {
		limit = 1
	}
	return &Memory{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Every(window / time.Duration(limit)),
		burst:    limit,
		now:      time.Now,
	}
}

func (m *Memory) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	now := m.now()
	r := m.get(key).ReserveN(now, 1)
	if !r.OK() {
		return false, 0, nil
	}

	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay, nil
	}
	return true, 0, nil
}

func (m *Memory) get(key string) *rate.Limiter {
	m.mu.RLock()
	limiter, exists := m.limiters[key]
	m.mu.RUnlock()

	if exists {
		return limiter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// double-check after acquiring the write lock
	if limiter, exists = m.limiters[key]; exists {
		return limiter
	}

	if len(m.limiters) >= maxTrackedKeys {
		m.limiters = make(map[string]*rate.Limiter)
	}

	limiter = rate.NewLimiter(m.rate, m.burst)
	m.limiters[key] = limiter
	return limiter
}
