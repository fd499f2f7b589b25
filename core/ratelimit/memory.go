package ratelimit

import (
	"sync"
	"time"

	"spendenlauf-api/core/constants"
)

type bucket struct {
	count     int
	createdAt time.Time
}

// MemoryLimiter keeps its counters in a mutex-guarded map. State is process
// local; restarts reset all windows.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(operation string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	hour := l.buckets[hourKey(operation, now)]
	day := l.buckets[dayKey(operation, now)]

	if hour != nil && hour.count >= constants.RateLimitPerHour {
		return false
	}
	if day != nil && day.count >= constants.RateLimitPerDay {
		return false
	}

	l.increment(hourKey(operation, now), now)
	l.increment(dayKey(operation, now), now)
	return true
}

func (l *MemoryLimiter) increment(key string, now time.Time) {
	b := l.buckets[key]
	if b == nil {
		b = &bucket{createdAt: now}
		l.buckets[key] = b
	}
	b.count++
}

// sweep drops buckets older than the day window so the map cannot grow
// unbounded across many operations.
func (l *MemoryLimiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.createdAt) > constants.RateLimitDayWindow {
			delete(l.buckets, key)
		}
	}
}
