package memory

import (
	"context"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	"creatorconnect/pkg/errors"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.store.update(func(next *state) error {
		if _, exists := next.users[user.ID]; exists {
			return errors.Conflict("User already exists")
		}
		next.users[user.ID] = *cloneUser(*user)
		return nil
	})
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, ok := r.store.current().users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return cloneUser(u), nil
}

func (r *userRepository) SetRatingAggregate(ctx context.Context, id string, rating float64, count int) error {
	return r.store.update(func(next *state) error {
		return (&txWriter{st: next}).SetRatingAggregate(id, rating, count)
	})
}
