package usecase

import (
	"context"
	"fmt"
	"time"

	"creatorconnect/internal/domain/service"
	"creatorconnect/pkg/errors"
	"creatorconnect/pkg/logger"
)

// SnapshotFunc receives every new state of a derived live view.
type SnapshotFunc[T any] func(value T, err error)

// throttle consumes one event for key. A limiter failure is logged and the
// event is let through.
func throttle(ctx context.Context, limiter service.RateLimiter, key, what string) error {
	if limiter == nil {
		return nil
	}

	ok, retryAfter, err := limiter.Allow(ctx, key)
	if err != nil {
		logger.Warn("Rate limiter unavailable for %s: %v", key, err)
		return nil
	}
	if !ok {
		return errors.TooManyRequests(fmt.Sprintf("Too many %s, try again in %s", what, retryAfter.Round(time.Second)), retryAfter)
	}
	return nil
}
