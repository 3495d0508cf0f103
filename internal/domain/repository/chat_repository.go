package repository

import (
	"context"
	"time"

	"creatorconnect/internal/domain/entity"
)

type ChatRepository interface {
	// GetOrCreate returns the chat with chat.ID, creating it from chat if absent.
	GetOrCreate(ctx context.Context, chat *entity.Chat) (*entity.Chat, error)
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Chat, error)
	SubscribeByUser(ctx context.Context, userID string, fn SnapshotFunc[entity.Chat]) Unsubscribe

	SetLastRead(ctx context.Context, chatID, userID string, at time.Time) error

	// AppendMessage stores msg and makes it the chat's lastMessage atomically.
	AppendMessage(ctx context.Context, msg *entity.Message) error
	ListMessages(ctx context.Context, chatID string, limit int) ([]*entity.Message, error)
	SubscribeMessages(ctx context.Context, chatID string, limit int, fn SnapshotFunc[entity.Message]) Unsubscribe
}
