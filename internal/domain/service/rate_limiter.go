package service

import (
	"context"
	"time"
)

// RateLimiter reports whether one more event for key fits the budget and, if
// not, how long the caller should wait.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}
