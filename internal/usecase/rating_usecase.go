package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	"creatorconnect/internal/domain/service"
	"creatorconnect/pkg/errors"
	"creatorconnect/pkg/logger"
)

const fallbackRaterName = "Your collaborator"

type RatingUseCase struct {
	ratingRepo repository.RatingRepository
	userRepo   repository.UserRepository
	uow        repository.UnitOfWork
	policy     service.AccessPolicy
	now        func() time.Time
}

func NewRatingUseCase(
	ratingRepo repository.RatingRepository,
	userRepo repository.UserRepository,
	uow repository.UnitOfWork,
	policy service.AccessPolicy,
) *RatingUseCase {
	return &RatingUseCase{
		ratingRepo: ratingRepo,
		userRepo:   userRepo,
		uow:        uow,
		policy:     policy,
		now:        time.Now,
	}
}

type SubmitRatingInput struct {
	CollabID    string
	RatedUserID string
	RatingValue int
	Comment     string
}

// SubmitRating records the caller's rating of their partner in a completed
// collaboration, folds it into the partner's average and notifies them. A
// second rating by the same rater for the same collaboration is a CONFLICT
// and changes nothing.
func (uc *RatingUseCase) SubmitRating(ctx context.Context, rater entity.Principal, input SubmitRatingInput) (*entity.Rating, error) {
	if input.CollabID == "" || input.RatedUserID == "" {
		return nil, errors.BadRequest("collabId and ratedUserId are required", nil)
	}
	if input.RatingValue < entity.MinRatingValue || input.RatingValue > entity.MaxRatingValue {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	var rating *entity.Rating

	err := uc.uow.Run(ctx, func(ctx context.Context, r repository.TxReader) (repository.TxWrites, error) {
		collab, err := r.GetCollaboration(input.CollabID)
		if err != nil {
			return nil, err
		}

		if err := uc.policy.Authorize(ctx, service.ActionRate, service.AccessRequest{
			Principal: rater,
			Resource:  map[string]interface{}{"participantIds": collab.ParticipantIDs},
			Request: map[string]interface{}{
				"raterId":     rater.UID,
				"ratedUserId": input.RatedUserID,
			},
		}); err != nil {
			return nil, err
		}

		if !collab.IsCompleted() {
			return nil, errors.Conflict("Only completed collaborations can be rated")
		}

		id := entity.RatingID(rater.UID, collab.ID)
		if _, err := r.GetRating(id); err == nil {
			return nil, errors.Conflict("You have already rated this collaboration")
		} else if !errors.Is(err, errors.CodeNotFound) {
			return nil, err
		}
		if collab.HasRated(rater.UID) {
			return nil, errors.Conflict("You have already rated this collaboration")
		}

		ratee, err := r.GetUser(input.RatedUserID)
		if err != nil {
			return nil, err
		}

		data := entity.RatingReceivedData{
			CollabID:   collab.ID,
			RaterID:    rater.UID,
			RaterName:  rater.DisplayName,
			RaterPhoto: rater.PhotoURL,
		}
		raterProfile, err := r.GetUser(rater.UID)
		switch {
		case err == nil:
			data.RaterName, data.RaterPhoto = raterProfile.DisplayName, raterProfile.PhotoURL
		case errors.Is(err, errors.CodeNotFound):
		default:
			return nil, err
		}
		if data.RaterName == "" {
			data.RaterName = fallbackRaterName
		}

		now := uc.now()
		rating = &entity.Rating{
			ID:          id,
			RatedUserID: ratee.ID,
			RaterID:     rater.UID,
			CollabID:    collab.ID,
			RatingValue: input.RatingValue,
			Comment:     strings.TrimSpace(input.Comment),
			Timestamp:   now,
		}
		average, count := entity.NextAverage(ratee.Rating, ratee.RatingCount, input.RatingValue)

		notification := entity.NewRatingReceivedNotification(ratee.ID, input.RatingValue, data)
		notification.Timestamp = now

		return func(w repository.TxWriter) error {
			if err := w.CreateRating(rating); err != nil {
				return err
			}
			if err := w.AddRatedBy(collab.ID, rater.UID); err != nil {
				return err
			}
			if err := w.SetRatingAggregate(ratee.ID, average, count); err != nil {
				return err
			}
			return w.CreateNotification(notification)
		}, nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("User %s rated %s %d/5 for collaboration %s", rater.UID, rating.RatedUserID, rating.RatingValue, rating.CollabID)
	return rating, nil
}

// ListRatings returns one page of the ratings userID received, newest first,
// and the total count.
func (uc *RatingUseCase) ListRatings(ctx context.Context, userID string, page, limit int) ([]*entity.Rating, int, error) {
	ratings, err := uc.ratingRepo.ListByRatedUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	sortRatings(ratings)

	if limit <= 0 {
		return ratings, len(ratings), nil
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start > len(ratings) {
		start = len(ratings)
	}
	end := start + limit
	if end > len(ratings) {
		end = len(ratings)
	}
	return ratings[start:end], len(ratings), nil
}

func (uc *RatingUseCase) SubscribeRatings(ctx context.Context, userID string, fn repository.SnapshotFunc[entity.Rating]) repository.Unsubscribe {
	return uc.ratingRepo.SubscribeByRatedUser(ctx, userID, func(items []*entity.Rating, err error) {
		sortRatings(items)
		fn(items, err)
	})
}

type RatingAggregate struct {
	UserID      string  `json:"user_id"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"rating_count"`
}

// RecomputeRating rebuilds userID's average from the stored ratings.
func (uc *RatingUseCase) RecomputeRating(ctx context.Context, p entity.Principal, userID string) (*RatingAggregate, error) {
	if err := uc.policy.Authorize(ctx, service.ActionAdmin, service.AccessRequest{Principal: p}); err != nil {
		return nil, err
	}

	ratings, err := uc.ratingRepo.ListByRatedUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	agg := &RatingAggregate{UserID: userID}
	for _, rating := range ratings {
		agg.Rating, agg.RatingCount = entity.NextAverage(agg.Rating, agg.RatingCount, rating.RatingValue)
	}

	if err := uc.userRepo.SetRatingAggregate(ctx, userID, agg.Rating, agg.RatingCount); err != nil {
		return nil, err
	}

	logger.Info("Recomputed rating for user %s: %.2f over %d ratings", userID, agg.Rating, agg.RatingCount)
	return agg, nil
}

func sortRatings(ratings []*entity.Rating) {
	sort.SliceStable(ratings, func(i, j int) bool { return ratings[i].Timestamp.After(ratings[j].Timestamp) })
}
