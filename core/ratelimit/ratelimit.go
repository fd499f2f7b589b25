// Package ratelimit caps how often the public registration operations may be
// invoked. The limiter is an injected dependency of the registration service;
// deployments with a single instance can run the in-memory variant, anything
// behind a load balancer needs the Redis one.
package ratelimit

import (
	"fmt"
	"time"

	"spendenlauf-api/core/constants"
)

// Limiter reports whether one more call of the named operation is allowed
// right now. Implementations count the call when they allow it.
type Limiter interface {
	Allow(operation string) bool
}

// Two sliding windows per operation: the current clock hour and the current
// clock day. Both caps must hold for a call to pass.
func hourKey(operation string, now time.Time) string {
	return fmt.Sprintf("%s:h:%d", operation, now.Unix()/int64(constants.RateLimitHourWindow.Seconds()))
}

func dayKey(operation string, now time.Time) string {
	return fmt.Sprintf("%s:d:%d", operation, now.Unix()/int64(constants.RateLimitDayWindow.Seconds()))
}
