package memory

import (
	"context"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	"creatorconnect/pkg/errors"
)

type notificationRepository struct {
	store *Store
}

func NewNotificationRepository(store *Store) repository.NotificationRepository {
	return &notificationRepository{store: store}
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*entity.AppNotification, error) {
	n, ok := r.store.current().notifications[id]
	if !ok {
		return nil, errors.NotFound("Notification", nil)
	}
	return cloneNotification(n), nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	return r.store.update(func(next *state) error {
		n, ok := next.notifications[id]
		if !ok {
			return errors.NotFound("Notification", nil)
		}
		n.Read = true
		next.notifications[id] = n
		return nil
	})
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	unread := 0
	for _, n := range r.store.current().notifications {
		if n.UserID == userID && !n.Read {
			unread++
		}
	}
	if unread == 0 {
		return 0, nil
	}

	changed := 0
	err := r.store.update(func(next *state) error {
		for id, n := range next.notifications {
			if n.UserID == userID && !n.Read {
				n.Read = true
				next.notifications[id] = n
				changed++
			}
		}
		return nil
	})
	return changed, err
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.AppNotification, error) {
	return notificationsOf(userID)(r.store.current()), nil
}

func (r *notificationRepository) SubscribeByUser(ctx context.Context, userID string, fn repository.SnapshotFunc[entity.AppNotification]) repository.Unsubscribe {
	return subscribe(ctx, r.store, notificationsOf(userID), fn)
}

func notificationsOf(userID string) func(st *state) []*entity.AppNotification {
	return func(st *state) []*entity.AppNotification {
		out := []*entity.AppNotification{}
		for _, n := range st.notifications {
			if n.UserID == userID {
				out = append(out, cloneNotification(n))
			}
		}
		return out
	}
}
