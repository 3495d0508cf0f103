package repository

import (
	"context"

	"creatorconnect/internal/domain/entity"
)

type CollaborationRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Collaboration, error)
	ListByParticipant(ctx context.Context, userID string) ([]*entity.Collaboration, error)
	SubscribeByParticipant(ctx context.Context, userID string, fn SnapshotFunc[entity.Collaboration]) Unsubscribe
}
