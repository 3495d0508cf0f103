package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	"creatorconnect/pkg/errors"
	"creatorconnect/pkg/logger"
)

type firestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &firestoreNotificationRepository{
		client: client,
	}
}

func (r *firestoreNotificationRepository) GetByID(ctx context.Context, id string) (*entity.AppNotification, error) {
	doc, err := r.client.Collection(notificationsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapError(err, "Notification", "get notification")
	}

	var n entity.AppNotification
	if err := doc.DataTo(&n); err != nil {
		return nil, errors.Internal("Failed to parse notification data", err)
	}

	return &n, nil
}

func (r *firestoreNotificationRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.client.Collection(notificationsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
	})
	return mapError(err, "Notification", "mark notification read")
}

// MarkAllRead commits in chunks of at most MaxBatchWrites. Each chunk re-reads
// its documents inside the transaction so a concurrent MarkRead is not counted twice.
func (r *firestoreNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	docs, err := r.client.Collection(notificationsCollection).
		Where("userId", "==", userID).
		Where("read", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, mapError(err, "Notification", "list unread notifications")
	}

	changed := 0
	for start := 0; start < len(docs); start += repository.MaxBatchWrites {
		end := start + repository.MaxBatchWrites
		if end > len(docs) {
			end = len(docs)
		}

		refs := make([]*firestore.DocumentRef, 0, end-start)
		for _, doc := range docs[start:end] {
			refs = append(refs, doc.Ref)
		}

		chunk := 0
		err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			chunk = 0
			snaps, err := tx.GetAll(refs)
			if err != nil {
				return err
			}
			for _, snap := range snaps {
				if !snap.Exists() {
					continue
				}
				if read, _ := snap.DataAt("read"); read == true {
					continue
				}
				if err := tx.Update(snap.Ref, []firestore.Update{{Path: "read", Value: true}}); err != nil {
					return err
				}
				chunk++
			}
			return nil
		})
		if err != nil {
			logger.Error("Mark all read stopped after %d notifications for user %s: %v", changed, userID, err)
			return changed, mapError(err, "Notification", "mark notifications read")
		}
		changed += chunk
	}

	return changed, nil
}

func (r *firestoreNotificationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.AppNotification, error) {
	items, err := decodeAll[entity.AppNotification](r.byUser(userID).Documents(ctx))
	return items, mapError(err, "Notification", "list notifications")
}

func (r *firestoreNotificationRepository) SubscribeByUser(ctx context.Context, userID string, fn repository.SnapshotFunc[entity.AppNotification]) repository.Unsubscribe {
	return listen(ctx, r.byUser(userID), "Notification", nil, fn)
}

func (r *firestoreNotificationRepository) byUser(userID string) firestore.Query {
	return r.client.Collection(notificationsCollection).Where("userId", "==", userID)
}
