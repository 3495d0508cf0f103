package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	"creatorconnect/pkg/errors"
)

type firestoreCollaborationRepository struct {
	client *firestore.Client
}

func NewFirestoreCollaborationRepository(client *firestore.Client) repository.CollaborationRepository {
	return &firestoreCollaborationRepository{
		client: client,
	}
}

func (r *firestoreCollaborationRepository) GetByID(ctx context.Context, id string) (*entity.Collaboration, error) {
	doc, err := r.client.Collection(collaborationsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapError(err, "Collaboration", "get collaboration")
	}

	var c entity.Collaboration
	if err := doc.DataTo(&c); err != nil {
		return nil, errors.Internal("Failed to parse collaboration data", err)
	}

	return &c, nil
}

func (r *firestoreCollaborationRepository) ListByParticipant(ctx context.Context, userID string) ([]*entity.Collaboration, error) {
	items, err := decodeAll[entity.Collaboration](r.byParticipant(userID).Documents(ctx))
	return items, mapError(err, "Collaboration", "list collaborations")
}

func (r *firestoreCollaborationRepository) SubscribeByParticipant(ctx context.Context, userID string, fn repository.SnapshotFunc[entity.Collaboration]) repository.Unsubscribe {
	return listen(ctx, r.byParticipant(userID), "Collaboration", nil, fn)
}

func (r *firestoreCollaborationRepository) byParticipant(userID string) firestore.Query {
	return r.client.Collection(collaborationsCollection).Where("participantIds", "array-contains", userID)
}
