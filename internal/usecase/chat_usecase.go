package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	"creatorconnect/internal/domain/service"
	"creatorconnect/pkg/errors"
	"creatorconnect/pkg/logger"
)

const (
	DefaultMessageLimit = 50
	MaxMessageLimit     = 200
	maxMessageLength    = 4000
)

type ChatUseCase struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	policy   service.AccessPolicy
	limiter  service.RateLimiter
	now      func() time.Time
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	policy service.AccessPolicy,
	limiter service.RateLimiter,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo: chatRepo,
		userRepo: userRepo,
		policy:   policy,
		limiter:  limiter,
		now:      time.Now,
	}
}

// ChatSummary is a chat with the caller's unread flag.
type ChatSummary struct {
	*entity.Chat
	Unread bool `json:"unread"`
}

// StartChat returns the direct chat between the caller and recipientID,
// creating it if needed.
func (uc *ChatUseCase) StartChat(ctx context.Context, p entity.Principal, recipientID string) (*entity.Chat, error) {
	recipientID = strings.TrimSpace(recipientID)
	if recipientID == "" || recipientID == p.UID {
		return nil, errors.BadRequest("A chat needs another participant", nil)
	}
	if _, err := uc.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}

	participants := []string{p.UID, recipientID}
	sort.Strings(participants)
	now := uc.now()

	return uc.chatRepo.GetOrCreate(ctx, &entity.Chat{
		ID:           entity.DirectChatID(p.UID, recipientID),
		Participants: participants,
		LastRead:     map[string]time.Time{},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, p entity.Principal, chatID, text, imageURL string) (*entity.Message, error) {
	text = strings.TrimSpace(text)
	imageURL = strings.TrimSpace(imageURL)
	if text == "" && imageURL == "" {
		return nil, errors.BadRequest("A message needs text or an image", nil)
	}
	if len(text) > maxMessageLength {
		return nil, errors.BadRequest("Message is too long", nil)
	}

	if _, err := uc.authorizedChat(ctx, p, chatID); err != nil {
		return nil, err
	}

	if err := throttle(ctx, uc.limiter, "message:"+p.UID, "messages"); err != nil {
		return nil, err
	}

	msg := &entity.Message{
		ChatID:    chatID,
		SenderID:  p.UID,
		Text:      text,
		ImageURL:  imageURL,
		Timestamp: uc.now(),
	}
	if err := uc.chatRepo.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}

	logger.Debug("User %s sent message %s in chat %s", p.UID, msg.ID, chatID)
	return msg, nil
}

// ListChats returns the caller's chats, most recently active first.
func (uc *ChatUseCase) ListChats(ctx context.Context, p entity.Principal) ([]ChatSummary, error) {
	chats, err := uc.chatRepo.ListByUser(ctx, p.UID)
	if err != nil {
		return nil, err
	}
	return summarize(p.UID, chats), nil
}

func (uc *ChatUseCase) SubscribeChats(ctx context.Context, p entity.Principal, fn SnapshotFunc[[]ChatSummary]) repository.Unsubscribe {
	return uc.chatRepo.SubscribeByUser(ctx, p.UID, func(items []*entity.Chat, err error) {
		if err != nil {
			fn(nil, err)
			return
		}
		fn(summarize(p.UID, items), nil)
	})
}

// MarkChatAsRead moves the caller's read watermark to cover the newest
// message. The watermark never moves backwards.
func (uc *ChatUseCase) MarkChatAsRead(ctx context.Context, p entity.Principal, chatID string) error {
	chat, err := uc.authorizedChat(ctx, p, chatID)
	if err != nil {
		return err
	}

	mark := chat.NextWatermark(p.UID, uc.now())
	if prev, ok := chat.LastRead[p.UID]; ok && prev.Equal(mark) {
		return nil
	}
	return uc.chatRepo.SetLastRead(ctx, chatID, p.UID, mark)
}

// ListMessages returns the newest limit messages in chronological order.
func (uc *ChatUseCase) ListMessages(ctx context.Context, p entity.Principal, chatID string, limit int) ([]*entity.Message, error) {
	if _, err := uc.authorizedChat(ctx, p, chatID); err != nil {
		return nil, err
	}
	return uc.chatRepo.ListMessages(ctx, chatID, clampLimit(limit))
}

func (uc *ChatUseCase) SubscribeMessages(ctx context.Context, p entity.Principal, chatID string, limit int, fn repository.SnapshotFunc[entity.Message]) (repository.Unsubscribe, error) {
	if _, err := uc.authorizedChat(ctx, p, chatID); err != nil {
		return nil, err
	}
	return uc.chatRepo.SubscribeMessages(ctx, chatID, clampLimit(limit), fn), nil
}

func (uc *ChatUseCase) authorizedChat(ctx context.Context, p entity.Principal, chatID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if err := uc.policy.Authorize(ctx, service.ActionAccessChat, service.AccessRequest{
		Principal: p,
		Resource:  map[string]interface{}{"participants": chat.Participants},
	}); err != nil {
		return nil, err
	}
	return chat, nil
}

func summarize(uid string, chats []*entity.Chat) []ChatSummary {
	out := make([]ChatSummary, 0, len(chats))
	for _, chat := range chats {
		out = append(out, ChatSummary{Chat: chat, Unread: chat.IsUnreadFor(uid)})
	}
	return out
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultMessageLimit
	}
	if limit > MaxMessageLimit {
		return MaxMessageLimit
	}
	return limit
}
