package usecase

import (
	"context"
	"strings"
	"time"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	"creatorconnect/pkg/errors"
	"creatorconnect/pkg/logger"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

// EnsureProfile returns the caller's profile, creating it from the auth
// claims on first sign-in.
func (uc *UserUseCase) EnsureProfile(ctx context.Context, p entity.Principal) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, p.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	user = &entity.User{
		ID:                 p.UID,
		Email:              p.Email,
		DisplayName:        displayNameFor(p),
		PhotoURL:           p.PhotoURL,
		PastCollaborations: []entity.PastCollaboration{},
		Schedule:           []entity.CalendarEvent{},
		CreatedAt:          time.Now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, errors.CodeConflict) {
			// Created by a concurrent sign-in.
			return uc.userRepo.GetByID(ctx, p.UID)
		}
		return nil, err
	}

	logger.Info("Created profile for user %s", p.UID)
	return user, nil
}

func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, uid)
}

func displayNameFor(p entity.Principal) string {
	if name := strings.TrimSpace(p.DisplayName); name != "" {
		return name
	}
	if at := strings.Index(p.Email, "@"); at > 0 {
		return p.Email[:at]
	}
	return "Creator"
}
