package interceptor

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/trickstertwo/elog"
)

// RateLimiter is a token bucket: it holds up to burst tokens and refills one
// every per. Each event takes a token; without one the event is stopped.
type RateLimiter struct {
	lim   *rate.Limiter
	clock Clock
}

// RateLimit builds a RateLimiter. burst < 1 is treated as 1 and per <= 0
// disables refill.
func RateLimit(burst int, per time.Duration, clock Clock) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(0)
	if per > 0 {
		limit = rate.Every(per)
	}
	return &RateLimiter{lim: rate.NewLimiter(limit, burst), clock: clock}
}

func (r *RateLimiter) Name() string { return "RateLimit" }

func (r *RateLimiter) OnInterception(elog.Level, string, error) (elog.Progress, error) {
	if !r.lim.AllowN(now(r.clock), 1) {
		return elog.ProgressStop, nil
	}
	return elog.ProgressContinue, nil
}
