package repository

import (
	"context"

	"creatorconnect/internal/domain/entity"
)

// MaxBatchWrites is the store's per-batch write limit.
const MaxBatchWrites = 500

type NotificationRepository interface {
	GetByID(ctx context.Context, id string) (*entity.AppNotification, error)
	MarkRead(ctx context.Context, id string) error
	// MarkAllRead flips every unread notification of userID and returns how many changed.
	MarkAllRead(ctx context.Context, userID string) (int, error)

	ListByUser(ctx context.Context, userID string) ([]*entity.AppNotification, error)
	SubscribeByUser(ctx context.Context, userID string, fn SnapshotFunc[entity.AppNotification]) Unsubscribe
}
