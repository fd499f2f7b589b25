package ratelimit

import (
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestMemoryLimiter_HourlyCap(t *testing.T) {
	l := NewMemoryLimiter()
	now := time.Date(2026, 4, 18, 9, 15, 0, 0, time.UTC)
	l.now = fixedClock(now)

	for i := 0; i < 5; i++ {
		if !l.Allow("register_individual") {
			t.Fatalf("call %d within hourly cap should be allowed", i+1)
		}
	}
	if l.Allow("register_individual") {
		t.Error("6th call within the same hour should be rejected")
	}
}

func TestMemoryLimiter_NextHourAllowsAgain(t *testing.T) {
	l := NewMemoryLimiter()
	now := time.Date(2026, 4, 18, 9, 15, 0, 0, time.UTC)
	l.now = fixedClock(now)

	for i := 0; i < 5; i++ {
		l.Allow("register_team")
	}
	if l.Allow("register_team") {
		t.Fatal("hourly cap should reject the 6th call")
	}

	l.now = fixedClock(now.Add(time.Hour))
	if !l.Allow("register_team") {
		t.Error("a call in the next hour should be allowed while the daily cap holds")
	}
}

func TestMemoryLimiter_DailyCap(t *testing.T) {
	l := NewMemoryLimiter()
	base := time.Date(2026, 4, 18, 0, 30, 0, 0, time.UTC)

	// 5 calls in each of two separate hours exhausts the daily cap of 10.
	l.now = fixedClock(base)
	for i := 0; i < 5; i++ {
		if !l.Allow("register_children") {
			t.Fatalf("call %d in first hour should pass", i+1)
		}
	}
	l.now = fixedClock(base.Add(time.Hour))
	for i := 0; i < 5; i++ {
		if !l.Allow("register_children") {
			t.Fatalf("call %d in second hour should pass", i+1)
		}
	}

	l.now = fixedClock(base.Add(2 * time.Hour))
	if l.Allow("register_children") {
		t.Error("11th call of the day should be rejected even in a fresh hour")
	}
}

func TestMemoryLimiter_OperationsAreIndependent(t *testing.T) {
	l := NewMemoryLimiter()
	l.now = fixedClock(time.Date(2026, 4, 18, 12, 0, 0, 0, time.UTC))

	for i := 0; i < 5; i++ {
		l.Allow("register_individual")
	}
	if l.Allow("register_individual") {
		t.Fatal("individual cap should be exhausted")
	}
	if !l.Allow("register_team") {
		t.Error("a different operation must have its own counters")
	}
}

func TestMemoryLimiter_SweepDropsExpiredBuckets(t *testing.T) {
	l := NewMemoryLimiter()
	base := time.Date(2026, 4, 18, 12, 0, 0, 0, time.UTC)
	l.now = fixedClock(base)
	l.Allow("register_individual")

	l.now = fixedClock(base.Add(25 * time.Hour))
	l.Allow("register_individual")

	if len(l.buckets) != 2 {
		t.Errorf("expected stale buckets swept, got %d entries", len(l.buckets))
	}
}
