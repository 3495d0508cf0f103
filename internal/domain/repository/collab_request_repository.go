package repository

import (
	"context"

	"creatorconnect/internal/domain/entity"
)

type CollabRequestRepository interface {
	// CreateIfAbsent fails with CONFLICT when a request with the same id exists.
	CreateIfAbsent(ctx context.Context, req *entity.CollabRequest) error
	GetByID(ctx context.Context, id string) (*entity.CollabRequest, error)
	Delete(ctx context.Context, id string) error

	ListReceived(ctx context.Context, userID string) ([]*entity.CollabRequest, error)
	ListSent(ctx context.Context, userID string) ([]*entity.CollabRequest, error)
	SubscribeReceived(ctx context.Context, userID string, fn SnapshotFunc[entity.CollabRequest]) Unsubscribe
	SubscribeSent(ctx context.Context, userID string, fn SnapshotFunc[entity.CollabRequest]) Unsubscribe
}
