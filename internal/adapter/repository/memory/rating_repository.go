package memory

import (
	"context"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
)

type ratingRepository struct {
	store *Store
}

func NewRatingRepository(store *Store) repository.RatingRepository {
	return &ratingRepository{store: store}
}

func (r *ratingRepository) ListByRatedUser(ctx context.Context, userID string) ([]*entity.Rating, error) {
	return ratingsOf(userID)(r.store.current()), nil
}

func (r *ratingRepository) SubscribeByRatedUser(ctx context.Context, userID string, fn repository.SnapshotFunc[entity.Rating]) repository.Unsubscribe {
	return subscribe(ctx, r.store, ratingsOf(userID), fn)
}

func ratingsOf(userID string) func(st *state) []*entity.Rating {
	return func(st *state) []*entity.Rating {
		out := []*entity.Rating{}
		for _, rating := range st.ratings {
			if rating.RatedUserID == userID {
				out = append(out, cloneRating(rating))
			}
		}
		return out
	}
}
