package ratelimit

import (
	"context"
	"time"

	"spendenlauf-api/core/constants"
	"spendenlauf-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts per-window calls in Redis so the caps hold across
// multiple API instances. Keys expire with their window; Redis does the sweep.
type RedisLimiter struct {
	client *redis.Client
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client}
}

func (l *RedisLimiter) Allow(operation string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	now := time.Now()

	hourCount, err := l.count(ctx, hourKey(operation, now))
	if err != nil {
		// Fail open: a rate limiter outage must not block registrations.
		logger.Error("RedisLimiter:Allow:HourCount", err)
		return true
	}
	dayCount, err := l.count(ctx, dayKey(operation, now))
	if err != nil {
		logger.Error("RedisLimiter:Allow:DayCount", err)
		return true
	}

	if hourCount >= constants.RateLimitPerHour || dayCount >= constants.RateLimitPerDay {
		return false
	}

	l.record(ctx, hourKey(operation, now), constants.RateLimitHourWindow)
	l.record(ctx, dayKey(operation, now), constants.RateLimitDayWindow)
	return true
}

func (l *RedisLimiter) count(ctx context.Context, key string) (int, error) {
	val, err := l.client.Get(ctx, key).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return val, nil
}

func (l *RedisLimiter) record(ctx context.Context, key string, window time.Duration) {
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("RedisLimiter:record", "error", err, "key", key)
		return
	}
	_ = incr.Val()
}
