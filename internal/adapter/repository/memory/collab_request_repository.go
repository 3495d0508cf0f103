package memory

import (
	"context"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	"creatorconnect/pkg/errors"
)

type collabRequestRepository struct {
	store *Store
}

func NewCollabRequestRepository(store *Store) repository.CollabRequestRepository {
	return &collabRequestRepository{store: store}
}

func (r *collabRequestRepository) CreateIfAbsent(ctx context.Context, req *entity.CollabRequest) error {
	return r.store.update(func(next *state) error {
		if _, exists := next.requests[req.ID]; exists {
			return errors.Conflict("A pending request to this user already exists")
		}
		next.requests[req.ID] = *req
		return nil
	})
}

func (r *collabRequestRepository) GetByID(ctx context.Context, id string) (*entity.CollabRequest, error) {
	return (&txReader{st: r.store.current()}).GetCollabRequest(id)
}

func (r *collabRequestRepository) Delete(ctx context.Context, id string) error {
	return r.store.update(func(next *state) error {
		delete(next.requests, id)
		return nil
	})
}

func (r *collabRequestRepository) ListReceived(ctx context.Context, userID string) ([]*entity.CollabRequest, error) {
	return receivedRequests(userID)(r.store.current()), nil
}

func (r *collabRequestRepository) ListSent(ctx context.Context, userID string) ([]*entity.CollabRequest, error) {
	return sentRequests(userID)(r.store.current()), nil
}

func (r *collabRequestRepository) SubscribeReceived(ctx context.Context, userID string, fn repository.SnapshotFunc[entity.CollabRequest]) repository.Unsubscribe {
	return subscribe(ctx, r.store, receivedRequests(userID), fn)
}

func (r *collabRequestRepository) SubscribeSent(ctx context.Context, userID string, fn repository.SnapshotFunc[entity.CollabRequest]) repository.Unsubscribe {
	return subscribe(ctx, r.store, sentRequests(userID), fn)
}

func receivedRequests(userID string) func(st *state) []*entity.CollabRequest {
	return func(st *state) []*entity.CollabRequest {
		return filterRequests(st, func(req entity.CollabRequest) bool { return req.ReceiverID == userID })
	}
}

func sentRequests(userID string) func(st *state) []*entity.CollabRequest {
	return func(st *state) []*entity.CollabRequest {
		return filterRequests(st, func(req entity.CollabRequest) bool { return req.SenderID == userID })
	}
}

func filterRequests(st *state, match func(req entity.CollabRequest) bool) []*entity.CollabRequest {
	out := []*entity.CollabRequest{}
	for _, req := range st.requests {
		if req.Status == entity.RequestStatusPending && match(req) {
			out = append(out, cloneRequest(req))
		}
	}
	return out
}
