package memory

import (
	"context"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
)

type collaborationRepository struct {
	store *Store
}

func NewCollaborationRepository(store *Store) repository.CollaborationRepository {
	return &collaborationRepository{store: store}
}

func (r *collaborationRepository) GetByID(ctx context.Context, id string) (*entity.Collaboration, error) {
	return (&txReader{st: r.store.current()}).GetCollaboration(id)
}

func (r *collaborationRepository) ListByParticipant(ctx context.Context, userID string) ([]*entity.Collaboration, error) {
	return collaborationsOf(userID)(r.store.current()), nil
}

func (r *collaborationRepository) SubscribeByParticipant(ctx context.Context, userID string, fn repository.SnapshotFunc[entity.Collaboration]) repository.Unsubscribe {
	return subscribe(ctx, r.store, collaborationsOf(userID), fn)
}

func collaborationsOf(userID string) func(st *state) []*entity.Collaboration {
	return func(st *state) []*entity.Collaboration {
		out := []*entity.Collaboration{}
		for _, c := range st.collaborations {
			if c.HasParticipant(userID) {
				out = append(out, cloneCollaboration(c))
			}
		}
		return out
	}
}
