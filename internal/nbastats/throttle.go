package nbastats

import (
	"time"

	"golang.org/x/time/rate"
)

// NewThrottle spaces consecutive remote calls at least delay apart.
// The first Wait returns immediately; a non-positive delay never waits.
func NewThrottle(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}
