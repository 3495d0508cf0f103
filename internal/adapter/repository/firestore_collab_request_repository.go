package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	"creatorconnect/pkg/errors"
)

type firestoreCollabRequestRepository struct {
	client *firestore.Client
}

func NewFirestoreCollabRequestRepository(client *firestore.Client) repository.CollabRequestRepository {
	return &firestoreCollabRequestRepository{
		client: client,
	}
}

func (r *firestoreCollabRequestRepository) CreateIfAbsent(ctx context.Context, req *entity.CollabRequest) error {
	_, err := r.client.Collection(requestsCollection).Doc(req.ID).Create(ctx, req)
	if err == nil {
		return nil
	}

	mapped := mapError(err, "Collaboration request", "create collaboration request")
	if errors.Is(mapped, errors.CodeConflict) {
		return errors.Conflict("A pending request to this creator already exists")
	}
	return mapped
}

func (r *firestoreCollabRequestRepository) GetByID(ctx context.Context, id string) (*entity.CollabRequest, error) {
	doc, err := r.client.Collection(requestsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapError(err, "Collaboration request", "get collaboration request")
	}

	var req entity.CollabRequest
	if err := doc.DataTo(&req); err != nil {
		return nil, errors.Internal("Failed to parse collaboration request data", err)
	}

	return &req, nil
}

func (r *firestoreCollabRequestRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(requestsCollection).Doc(id).Delete(ctx)
	return mapError(err, "Collaboration request", "delete collaboration request")
}

func (r *firestoreCollabRequestRepository) ListReceived(ctx context.Context, userID string) ([]*entity.CollabRequest, error) {
	items, err := decodeAll[entity.CollabRequest](r.pending("receiverId", userID).Documents(ctx))
	return items, mapError(err, "Collaboration request", "list received requests")
}

func (r *firestoreCollabRequestRepository) ListSent(ctx context.Context, userID string) ([]*entity.CollabRequest, error) {
	items, err := decodeAll[entity.CollabRequest](r.pending("senderId", userID).Documents(ctx))
	return items, mapError(err, "Collaboration request", "list sent requests")
}

func (r *firestoreCollabRequestRepository) SubscribeReceived(ctx context.Context, userID string, fn repository.SnapshotFunc[entity.CollabRequest]) repository.Unsubscribe {
	return listen(ctx, r.pending("receiverId", userID), "Collaboration request", nil, fn)
}

func (r *firestoreCollabRequestRepository) SubscribeSent(ctx context.Context, userID string, fn repository.SnapshotFunc[entity.CollabRequest]) repository.Unsubscribe {
	return listen(ctx, r.pending("senderId", userID), "Collaboration request", nil, fn)
}

func (r *firestoreCollabRequestRepository) pending(field, userID string) firestore.Query {
	return r.client.Collection(requestsCollection).
		Where(field, "==", userID).
		Where("status", "==", entity.RequestStatusPending)
}
