package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	"creatorconnect/pkg/errors"
)

type chatRepository struct {
	store *Store
}

func NewChatRepository(store *Store) repository.ChatRepository {
	return &chatRepository{store: store}
}

func (r *chatRepository) GetOrCreate(ctx context.Context, chat *entity.Chat) (*entity.Chat, error) {
	var out *entity.Chat
	err := r.store.update(func(next *state) error {
		if existing, ok := next.chats[chat.ID]; ok {
			out = cloneChat(existing)
			return nil
		}
		created := cloneChat(*chat)
		next.chats[chat.ID] = *created
		out = cloneChat(*created)
		return nil
	})
	return out, err
}

func (r *chatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	c, ok := r.store.current().chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	return cloneChat(c), nil
}

func (r *chatRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Chat, error) {
	return chatsOf(userID)(r.store.current()), nil
}

func (r *chatRepository) SubscribeByUser(ctx context.Context, userID string, fn repository.SnapshotFunc[entity.Chat]) repository.Unsubscribe {
	return subscribe(ctx, r.store, chatsOf(userID), fn)
}

func (r *chatRepository) SetLastRead(ctx context.Context, chatID, userID string, at time.Time) error {
	return r.store.update(func(next *state) error {
		c, ok := next.chats[chatID]
		if !ok {
			return errors.NotFound("Chat", nil)
		}
		c.LastRead = copyMap(c.LastRead)
		c.LastRead[userID] = at
		next.chats[chatID] = c
		return nil
	})
}

func (r *chatRepository) AppendMessage(ctx context.Context, msg *entity.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	return r.store.update(func(next *state) error {
		c, ok := next.chats[msg.ChatID]
		if !ok {
			return errors.NotFound("Chat", nil)
		}
		last := *msg
		c.LastMessage = &last
		c.UpdatedAt = msg.Timestamp
		next.chats[msg.ChatID] = c
		next.messages[msg.ChatID] = appendCopy(next.messages[msg.ChatID], *msg)
		return nil
	})
}

func (r *chatRepository) ListMessages(ctx context.Context, chatID string, limit int) ([]*entity.Message, error) {
	return messagesOf(chatID, limit)(r.store.current()), nil
}

func (r *chatRepository) SubscribeMessages(ctx context.Context, chatID string, limit int, fn repository.SnapshotFunc[entity.Message]) repository.Unsubscribe {
	return subscribe(ctx, r.store, messagesOf(chatID, limit), fn)
}

func chatsOf(userID string) func(st *state) []*entity.Chat {
	return func(st *state) []*entity.Chat {
		out := []*entity.Chat{}
		for _, c := range st.chats {
			if c.HasParticipant(userID) {
				out = append(out, cloneChat(c))
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
		return out
	}
}

// messagesOf returns the newest limit messages in ascending timestamp order.
func messagesOf(chatID string, limit int) func(st *state) []*entity.Message {
	return func(st *state) []*entity.Message {
		msgs := st.messages[chatID]
		sorted := appendCopy(msgs[:0:0], msgs...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })
		if limit > 0 && len(sorted) > limit {
			sorted = sorted[len(sorted)-limit:]
		}
		out := make([]*entity.Message, 0, len(sorted))
		for _, m := range sorted {
			out = append(out, cloneMessage(m))
		}
		return out
	}
}
