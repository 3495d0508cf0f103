package repository

import (
	"context"

	"creatorconnect/internal/domain/entity"
)

type RatingRepository interface {
	ListByRatedUser(ctx context.Context, userID string) ([]*entity.Rating, error)
	SubscribeByRatedUser(ctx context.Context, userID string, fn SnapshotFunc[entity.Rating]) Unsubscribe
}
