package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	"creatorconnect/pkg/errors"
)

type firestoreUnitOfWork struct {
	client *firestore.Client
}

func NewFirestoreUnitOfWork(client *firestore.Client) repository.UnitOfWork {
	return &firestoreUnitOfWork{client: client}
}

// Run executes plan inside a Firestore transaction. The SDK retries the whole
// plan on contention, which is why plans must be free of outside effects.
func (u *firestoreUnitOfWork) Run(ctx context.Context, plan repository.TxPlan) error {
	err := u.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		writes, err := plan(ctx, &firestoreTxReader{client: u.client, tx: tx})
		if err != nil || writes == nil {
			return err
		}
		return writes(&firestoreTxWriter{client: u.client, tx: tx})
	})
	return mapError(err, "Transaction", "commit transaction")
}

type firestoreTxReader struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

func (r *firestoreTxReader) GetUser(id string) (*entity.User, error) {
	var user entity.User
	if err := r.get(r.client.Collection(usersCollection).Doc(id), &user, "User"); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *firestoreTxReader) GetCollabRequest(id string) (*entity.CollabRequest, error) {
	var req entity.CollabRequest
	if err := r.get(r.client.Collection(requestsCollection).Doc(id), &req, "Collaboration request"); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *firestoreTxReader) GetCollaboration(id string) (*entity.Collaboration, error) {
	var c entity.Collaboration
	if err := r.get(r.client.Collection(collaborationsCollection).Doc(id), &c, "Collaboration"); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *firestoreTxReader) GetRating(id string) (*entity.Rating, error) {
	var rating entity.Rating
	if err := r.get(r.client.Collection(ratingsCollection).Doc(id), &rating, "Rating"); err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *firestoreTxReader) get(ref *firestore.DocumentRef, dst interface{}, resource string) error {
	doc, err := r.tx.Get(ref)
	if err != nil {
		return mapError(err, resource, "read "+resource)
	}
	if err := doc.DataTo(dst); err != nil {
		return errors.Internal("Failed to parse "+resource+" data", err)
	}
	return nil
}

type firestoreTxWriter struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

func (w *firestoreTxWriter) CreateCollaboration(c *entity.Collaboration) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return w.tx.Create(w.client.Collection(collaborationsCollection).Doc(c.ID), c)
}

func (w *firestoreTxWriter) CompleteCollaboration(c *entity.Collaboration) error {
	return w.tx.Update(w.client.Collection(collaborationsCollection).Doc(c.ID), []firestore.Update{
		{Path: "status", Value: c.Status},
		{Path: "finalLink", Value: c.FinalLink},
		{Path: "completedAt", Value: c.CompletedAt},
	})
}

func (w *firestoreTxWriter) AddRatedBy(collabID, uid string) error {
	return w.tx.Update(w.client.Collection(collaborationsCollection).Doc(collabID), []firestore.Update{
		{Path: "ratedBy", Value: firestore.ArrayUnion(uid)},
	})
}

func (w *firestoreTxWriter) DeleteCollabRequest(id string) error {
	return w.tx.Delete(w.client.Collection(requestsCollection).Doc(id))
}

func (w *firestoreTxWriter) IncrementCollabs(uid string) error {
	return w.updateUser(uid, firestore.Update{Path: "collabs", Value: firestore.Increment(1)})
}

func (w *firestoreTxWriter) AppendScheduleEvent(uid string, event entity.CalendarEvent) error {
	return w.updateUser(uid, firestore.Update{Path: "schedule", Value: firestore.ArrayUnion(event)})
}

func (w *firestoreTxWriter) SetPastCollaborations(uid string, entries []entity.PastCollaboration) error {
	return w.updateUser(uid, firestore.Update{Path: "pastCollaborations", Value: entries})
}

func (w *firestoreTxWriter) SetRatingAggregate(uid string, rating float64, count int) error {
	return w.updateUser(uid,
		firestore.Update{Path: "rating", Value: rating},
		firestore.Update{Path: "ratingCount", Value: count},
	)
}

func (w *firestoreTxWriter) CreateRating(r *entity.Rating) error {
	return w.tx.Create(w.client.Collection(ratingsCollection).Doc(r.ID), r)
}

func (w *firestoreTxWriter) CreateNotification(n *entity.AppNotification) error {
	if err := n.Validate(); err != nil {
		return errors.BadRequest("Invalid notification", err)
	}
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return w.tx.Create(w.client.Collection(notificationsCollection).Doc(n.ID), n)
}

// updateUser fails the transaction when the profile is missing.
func (w *firestoreTxWriter) updateUser(uid string, updates ...firestore.Update) error {
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})
	return w.tx.Update(w.client.Collection(usersCollection).Doc(uid), updates)
}
