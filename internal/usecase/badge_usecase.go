package usecase

import (
	"context"
	"sync"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
)

type BadgeUseCase struct {
	chatRepo         repository.ChatRepository
	notificationRepo repository.NotificationRepository
	requestRepo      repository.CollabRequestRepository
}

func NewBadgeUseCase(
	chatRepo repository.ChatRepository,
	notificationRepo repository.NotificationRepository,
	requestRepo repository.CollabRequestRepository,
) *BadgeUseCase {
	return &BadgeUseCase{
		chatRepo:         chatRepo,
		notificationRepo: notificationRepo,
		requestRepo:      requestRepo,
	}
}

// BadgeCounts: Messages is the number of unread chats, Other the unread
// notifications plus pending received requests.
func (uc *BadgeUseCase) BadgeCounts(ctx context.Context, p entity.Principal) (entity.BadgeCounts, error) {
	chats, err := uc.chatRepo.ListByUser(ctx, p.UID)
	if err != nil {
		return entity.BadgeCounts{}, err
	}
	notifications, err := uc.notificationRepo.ListByUser(ctx, p.UID)
	if err != nil {
		return entity.BadgeCounts{}, err
	}
	requests, err := uc.requestRepo.ListReceived(ctx, p.UID)
	if err != nil {
		return entity.BadgeCounts{}, err
	}

	return entity.BadgeCounts{
		Messages: unreadChats(p.UID, chats),
		Other:    unreadNotifications(notifications) + len(requests),
	}, nil
}

// SubscribeBadgeCounts combines three live streams. fn is first called once
// every stream has delivered, then whenever the counts change. The first
// stream error ends the combined stream.
func (uc *BadgeUseCase) SubscribeBadgeCounts(ctx context.Context, p entity.Principal, fn SnapshotFunc[entity.BadgeCounts]) repository.Unsubscribe {
	agg := &badgeAggregator{emit: fn}

	unsubs := []repository.Unsubscribe{
		uc.chatRepo.SubscribeByUser(ctx, p.UID, func(items []*entity.Chat, err error) {
			agg.update(func(s *badgeState) { s.chats, s.chatsReady = unreadChats(p.UID, items), true }, err)
		}),
		uc.notificationRepo.SubscribeByUser(ctx, p.UID, func(items []*entity.AppNotification, err error) {
			agg.update(func(s *badgeState) { s.notifications, s.notificationsReady = unreadNotifications(items), true }, err)
		}),
		uc.requestRepo.SubscribeReceived(ctx, p.UID, func(items []*entity.CollabRequest, err error) {
			agg.update(func(s *badgeState) { s.requests, s.requestsReady = len(items), true }, err)
		}),
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for _, unsubscribe := range unsubs {
				unsubscribe()
			}
		})
	}
}

type badgeState struct {
	chats, notifications, requests                int
	chatsReady, notificationsReady, requestsReady bool
}

type badgeAggregator struct {
	mu     sync.Mutex
	state  badgeState
	failed bool
	last   *entity.BadgeCounts
	emit   SnapshotFunc[entity.BadgeCounts]
}

func (a *badgeAggregator) update(apply func(s *badgeState), err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.failed {
		return
	}
	if err != nil {
		a.failed = true
		a.emit(entity.BadgeCounts{}, err)
		return
	}

	apply(&a.state)
	s := a.state
	if !s.chatsReady || !s.notificationsReady || !s.requestsReady {
		return
	}

	counts := entity.BadgeCounts{Messages: s.chats, Other: s.notifications + s.requests}
	if a.last != nil && *a.last == counts {
		return
	}
	a.last = &counts
	a.emit(counts, nil)
}

func unreadChats(uid string, chats []*entity.Chat) int {
	n := 0
	for _, chat := range chats {
		if chat.IsUnreadFor(uid) {
			n++
		}
	}
	return n
}

func unreadNotifications(items []*entity.AppNotification) int {
	n := 0
	for _, item := range items {
		if !item.Read {
			n++
		}
	}
	return n
}
