package repository

import (
	"context"

	"creatorconnect/internal/domain/entity"
)

// TxReader is only available during the read phase of a transaction.
// Missing documents are reported as NOT_FOUND app errors.
type TxReader interface {
	GetUser(id string) (*entity.User, error)
	GetCollabRequest(id string) (*entity.CollabRequest, error)
	GetCollaboration(id string) (*entity.Collaboration, error)
	GetRating(id string) (*entity.Rating, error)
}

// TxWriter stages writes; nothing is visible until the whole transaction commits.
type TxWriter interface {
	CreateCollaboration(c *entity.Collaboration) error
	CompleteCollaboration(c *entity.Collaboration) error
	AddRatedBy(collabID, uid string) error
	DeleteCollabRequest(id string) error

	IncrementCollabs(uid string) error
	AppendScheduleEvent(uid string, event entity.CalendarEvent) error
	SetPastCollaborations(uid string, entries []entity.PastCollaboration) error
	SetRatingAggregate(uid string, rating float64, count int) error

	// CreateRating fails with CONFLICT when the id already exists.
	CreateRating(r *entity.Rating) error
	CreateNotification(n *entity.AppNotification) error
}

// TxWrites is the write phase produced by a plan.
type TxWrites func(w TxWriter) error

// TxPlan performs every read a transaction needs and returns the writes to
// apply. A nil TxWrites commits nothing. Plans may be re-run on contention,
// so they must not have side effects outside the reader.
type TxPlan func(ctx context.Context, r TxReader) (TxWrites, error)

type UnitOfWork interface {
	Run(ctx context.Context, plan TxPlan) error
}
