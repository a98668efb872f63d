package ratelimit

import (
	"context"
	"time"
)

// Limiter admits or refuses one unit of work for key in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type Config struct {
	Limit  int
	Window time.Duration
}

// Unlimited admits everything. Used when Limit is zero.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) (bool, error) { return true, nil }

var timeNow = time.Now

func windowStart(now time.Time, window time.Duration) time.Time {
	return now.Truncate(window)
}
