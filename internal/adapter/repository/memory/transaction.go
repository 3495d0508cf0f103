package memory

import (
	"context"

	"github.com/google/uuid"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	"creatorconnect/pkg/errors"
)

type unitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) repository.UnitOfWork {
	return &unitOfWork{store: store}
}

// Run executes plans one at a time, so the read set can never go stale
// between the read and write phases.
func (u *unitOfWork) Run(ctx context.Context, plan repository.TxPlan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := u.store
	s.writeMu.Lock()
	writes, err := plan(ctx, &txReader{st: s.current()})
	if err != nil || writes == nil {
		s.writeMu.Unlock()
		return err
	}
	err = s.updateLocked(func(next *state) error {
		return writes(&txWriter{st: next})
	})
	s.writeMu.Unlock()

	if err == nil {
		s.notify()
	}
	return err
}

type txReader struct {
	st *state
}

func (r *txReader) GetUser(id string) (*entity.User, error) {
	u, ok := r.st.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return cloneUser(u), nil
}

func (r *txReader) GetCollabRequest(id string) (*entity.CollabRequest, error) {
	req, ok := r.st.requests[id]
	if !ok {
		return nil, errors.NotFound("Collaboration request", nil)
	}
	return cloneRequest(req), nil
}

func (r *txReader) GetCollaboration(id string) (*entity.Collaboration, error) {
	c, ok := r.st.collaborations[id]
	if !ok {
		return nil, errors.NotFound("Collaboration", nil)
	}
	return cloneCollaboration(c), nil
}

func (r *txReader) GetRating(id string) (*entity.Rating, error) {
	rating, ok := r.st.ratings[id]
	if !ok {
		return nil, errors.NotFound("Rating", nil)
	}
	return cloneRating(rating), nil
}

type txWriter struct {
	st *state
}

func (w *txWriter) CreateCollaboration(c *entity.Collaboration) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if _, exists := w.st.collaborations[c.ID]; exists {
		return errors.Conflict("Collaboration already exists")
	}
	w.st.collaborations[c.ID] = *cloneCollaboration(*c)
	return nil
}

func (w *txWriter) CompleteCollaboration(c *entity.Collaboration) error {
	existing, ok := w.st.collaborations[c.ID]
	if !ok {
		return errors.NotFound("Collaboration", nil)
	}
	existing.Status = c.Status
	existing.FinalLink = c.FinalLink
	if c.CompletedAt != nil {
		at := *c.CompletedAt
		existing.CompletedAt = &at
	}
	w.st.collaborations[c.ID] = existing
	return nil
}

func (w *txWriter) AddRatedBy(collabID, uid string) error {
	existing, ok := w.st.collaborations[collabID]
	if !ok {
		return errors.NotFound("Collaboration", nil)
	}
	if !existing.HasRated(uid) {
		existing.RatedBy = appendCopy(existing.RatedBy, uid)
	}
	w.st.collaborations[collabID] = existing
	return nil
}

func (w *txWriter) DeleteCollabRequest(id string) error {
	delete(w.st.requests, id)
	return nil
}

func (w *txWriter) IncrementCollabs(uid string) error {
	return w.patchUser(uid, func(u *entity.User) {
		u.Collabs++
	})
}

// AppendScheduleEvent is a set union keyed by event ID, matching the
// Firestore writer's ArrayUnion.
func (w *txWriter) AppendScheduleEvent(uid string, event entity.CalendarEvent) error {
	return w.patchUser(uid, func(u *entity.User) {
		for _, existing := range u.Schedule {
			if existing.ID == event.ID {
				return
			}
		}
		u.Schedule = appendCopy(u.Schedule, event)
	})
}

func (w *txWriter) SetPastCollaborations(uid string, entries []entity.PastCollaboration) error {
	return w.patchUser(uid, func(u *entity.User) {
		u.PastCollaborations = appendCopy(entries[:0:0], entries...)
	})
}

func (w *txWriter) SetRatingAggregate(uid string, rating float64, count int) error {
	return w.patchUser(uid, func(u *entity.User) {
		u.Rating = rating
		u.RatingCount = count
	})
}

func (w *txWriter) CreateRating(r *entity.Rating) error {
	if _, exists := w.st.ratings[r.ID]; exists {
		return errors.Conflict("Rating already submitted")
	}
	w.st.ratings[r.ID] = *r
	return nil
}

func (w *txWriter) CreateNotification(n *entity.AppNotification) error {
	if err := n.Validate(); err != nil {
		return errors.BadRequest("Invalid notification", err)
	}
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	w.st.notifications[n.ID] = *cloneNotification(*n)
	return nil
}

// patchUser mirrors a merge update: the profile must already exist.
func (w *txWriter) patchUser(uid string, fn func(u *entity.User)) error {
	u, ok := w.st.users[uid]
	if !ok {
		return errors.NotFound("User", nil)
	}
	fn(&u)
	w.st.users[uid] = u
	return nil
}
