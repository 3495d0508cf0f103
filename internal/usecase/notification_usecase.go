package usecase

import (
	"context"
	"sort"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	"creatorconnect/internal/domain/service"
	"creatorconnect/pkg/errors"
	"creatorconnect/pkg/logger"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	collabRepo       repository.CollaborationRepository
	policy           service.AccessPolicy
}

func NewNotificationUseCase(
	notificationRepo repository.NotificationRepository,
	collabRepo repository.CollaborationRepository,
	policy service.AccessPolicy,
) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		collabRepo:       collabRepo,
		policy:           policy,
	}
}

// ListNotifications returns the caller's notifications, newest first.
func (uc *NotificationUseCase) ListNotifications(ctx context.Context, p entity.Principal) ([]*entity.AppNotification, error) {
	items, err := uc.notificationRepo.ListByUser(ctx, p.UID)
	if err != nil {
		return nil, err
	}
	sortNotifications(items)
	return items, nil
}

func (uc *NotificationUseCase) SubscribeNotifications(ctx context.Context, p entity.Principal, fn repository.SnapshotFunc[entity.AppNotification]) repository.Unsubscribe {
	return uc.notificationRepo.SubscribeByUser(ctx, p.UID, func(items []*entity.AppNotification, err error) {
		sortNotifications(items)
		fn(items, err)
	})
}

func (uc *NotificationUseCase) MarkNotificationRead(ctx context.Context, p entity.Principal, id string) error {
	n, err := uc.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.policy.Authorize(ctx, service.ActionReadNotification, service.AccessRequest{
		Principal: p,
		Resource:  map[string]interface{}{"userId": n.UserID},
	}); err != nil {
		return err
	}

	if n.Read {
		return nil
	}
	return uc.notificationRepo.MarkRead(ctx, id)
}

// MarkAllNotificationsRead returns how many notifications changed.
func (uc *NotificationUseCase) MarkAllNotificationsRead(ctx context.Context, p entity.Principal) (int, error) {
	changed, err := uc.notificationRepo.MarkAllRead(ctx, p.UID)
	if err != nil {
		return changed, err
	}
	if changed > 0 {
		logger.Info("Marked %d notifications read for user %s", changed, p.UID)
	}
	return changed, nil
}

// RateBackPrompt pairs a rating notification with the collaboration the
// caller can still rate.
type RateBackPrompt struct {
	Notification  *entity.AppNotification `json:"notification"`
	Collaboration *entity.Collaboration   `json:"collaboration"`
}

// ListRateBackPrompts returns the rating notifications the caller has not
// answered with a rating of their own.
func (uc *NotificationUseCase) ListRateBackPrompts(ctx context.Context, p entity.Principal) ([]RateBackPrompt, error) {
	items, err := uc.ListNotifications(ctx, p)
	if err != nil {
		return nil, err
	}

	collabs := make(map[string]*entity.Collaboration)
	prompts := []RateBackPrompt{}
	for _, n := range items {
		if n.Type != entity.NotificationRatingReceived || n.RatingReceived == nil {
			continue
		}

		collabID := n.RatingReceived.CollabID
		collab, seen := collabs[collabID]
		if !seen {
			collab, err = uc.collabRepo.GetByID(ctx, collabID)
			if err != nil {
				if !errors.Is(err, errors.CodeNotFound) {
					return nil, err
				}
				collab = nil
			}
			collabs[collabID] = collab
		}

		if collab != nil && CanRateBack(p.UID, n, collab) {
			prompts = append(prompts, RateBackPrompt{Notification: n, Collaboration: collab})
		}
	}
	return prompts, nil
}

// CanRateBack reports whether self may answer notification n with a rating.
func CanRateBack(self string, n *entity.AppNotification, collab *entity.Collaboration) bool {
	if n == nil || collab == nil || n.Type != entity.NotificationRatingReceived || n.RatingReceived == nil {
		return false
	}
	return n.RatingReceived.RaterID != self && !collab.HasRated(self)
}

func sortNotifications(items []*entity.AppNotification) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Timestamp.After(items[j].Timestamp) })
}
