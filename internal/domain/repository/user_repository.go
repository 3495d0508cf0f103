package repository

import (
	"context"

	"creatorconnect/internal/domain/entity"
)

type UserRepository interface {
	// Create fails with CONFLICT when the profile already exists.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	SetRatingAggregate(ctx context.Context, id string, rating float64, count int) error
}
