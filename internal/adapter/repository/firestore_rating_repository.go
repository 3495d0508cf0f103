package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
)

type firestoreRatingRepository struct {
	client *firestore.Client
}

func NewFirestoreRatingRepository(client *firestore.Client) repository.RatingRepository {
	return &firestoreRatingRepository{
		client: client,
	}
}

func (r *firestoreRatingRepository) ListByRatedUser(ctx context.Context, userID string) ([]*entity.Rating, error) {
	items, err := decodeAll[entity.Rating](r.byRatedUser(userID).Documents(ctx))
	return items, mapError(err, "Rating", "list ratings")
}

func (r *firestoreRatingRepository) SubscribeByRatedUser(ctx context.Context, userID string, fn repository.SnapshotFunc[entity.Rating]) repository.Unsubscribe {
	return listen(ctx, r.byRatedUser(userID), "Rating", nil, fn)
}

func (r *firestoreRatingRepository) byRatedUser(userID string) firestore.Query {
	return r.client.Collection(ratingsCollection).Where("ratedUserId", "==", userID)
}
