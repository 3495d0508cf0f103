package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	"creatorconnect/pkg/errors"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) GetOrCreate(ctx context.Context, chat *entity.Chat) (*entity.Chat, error) {
	ref := r.client.Collection(chatsCollection).Doc(chat.ID)

	var out entity.Chat
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err == nil {
			return doc.DataTo(&out)
		}
		if status.Code(err) != codes.NotFound {
			return err
		}
		out = *chat
		return tx.Create(ref, chat)
	})
	if err != nil {
		return nil, mapError(err, "Chat", "open chat")
	}

	return &out, nil
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.client.Collection(chatsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapError(err, "Chat", "get chat")
	}

	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.Internal("Failed to parse chat data", err)
	}

	return &chat, nil
}

func (r *firestoreChatRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Chat, error) {
	items, err := decodeAll[entity.Chat](r.byUser(userID).Documents(ctx))
	if err != nil {
		return nil, mapError(err, "Chat", "list chats")
	}
	sortChats(items)
	return items, nil
}

func (r *firestoreChatRepository) SubscribeByUser(ctx context.Context, userID string, fn repository.SnapshotFunc[entity.Chat]) repository.Unsubscribe {
	return listen(ctx, r.byUser(userID), "Chat", sortChats, fn)
}

func (r *firestoreChatRepository) SetLastRead(ctx context.Context, chatID, userID string, at time.Time) error {
	_, err := r.client.Collection(chatsCollection).Doc(chatID).Update(ctx, []firestore.Update{
		{FieldPath: firestore.FieldPath{"lastRead", userID}, Value: at},
	})
	return mapError(err, "Chat", "mark chat read")
}

func (r *firestoreChatRepository) AppendMessage(ctx context.Context, msg *entity.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}

	chatRef := r.client.Collection(chatsCollection).Doc(msg.ChatID)
	batch := r.client.Batch()
	batch.Create(chatRef.Collection(messagesCollection).Doc(msg.ID), msg)
	batch.Update(chatRef, []firestore.Update{
		{Path: "lastMessage", Value: msg},
		{Path: "updatedAt", Value: msg.Timestamp},
	})

	_, err := batch.Commit(ctx)
	return mapError(err, "Chat", "send message")
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, chatID string, limit int) ([]*entity.Message, error) {
	items, err := decodeAll[entity.Message](r.newestMessages(chatID, limit).Documents(ctx))
	if err != nil {
		return nil, mapError(err, "Message", "list messages")
	}
	reverseMessages(items)
	return items, nil
}

func (r *firestoreChatRepository) SubscribeMessages(ctx context.Context, chatID string, limit int, fn repository.SnapshotFunc[entity.Message]) repository.Unsubscribe {
	return listen(ctx, r.newestMessages(chatID, limit), "Message", reverseMessages, fn)
}

// byUser cannot also order by updatedAt without a composite index, so chats
// are sorted after decoding.
func (r *firestoreChatRepository) byUser(userID string) firestore.Query {
	return r.client.Collection(chatsCollection).Where("participants", "array-contains", userID)
}

func (r *firestoreChatRepository) newestMessages(chatID string, limit int) firestore.Query {
	q := r.client.Collection(chatsCollection).Doc(chatID).Collection(messagesCollection).
		OrderBy("timestamp", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}

func sortChats(chats []*entity.Chat) {
	sort.Slice(chats, func(i, j int) bool { return chats[i].UpdatedAt.After(chats[j].UpdatedAt) })
}

func reverseMessages(msgs []*entity.Message) {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
}
