package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"creatorconnect/internal/adapter/repository/memory"
	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	"creatorconnect/internal/infrastructure/ratelimit"
	"creatorconnect/internal/infrastructure/rules"
)

type fixture struct {
	store *memory.Store
	clock time.Time

	users         repository.UserRepository
	requests      repository.CollabRequestRepository
	collabs       repository.CollaborationRepository
	ratings       repository.RatingRepository
	notifications repository.NotificationRepository
	chats         repository.ChatRepository
	uow           repository.UnitOfWork

	userUC         *UserUseCase
	requestUC      *RequestUseCase
	collabUC       *CollaborationUseCase
	ratingUC       *RatingUseCase
	notificationUC *NotificationUseCase
	chatUC         *ChatUseCase
	badgeUC        *BadgeUseCase
}

var (
	alice = entity.Principal{UID: "alice", Email: "alice@example.com", DisplayName: "Alice", PhotoURL: "https://img/alice.png"}
	bob   = entity.Principal{UID: "bob", Email: "bob@example.com", DisplayName: "Bob"}
	carol = entity.Principal{UID: "carol", Email: "carol@example.com", DisplayName: "Carol"}
	admin = entity.Principal{UID: "root", Role: entity.RoleAdmin}
)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	engine, err := rules.NewEngine(rules.DefaultRules)
	require.NoError(t, err)

	store := memory.NewStore()
	f := &fixture{
		store:         store,
		clock:         time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC),
		users:         memory.NewUserRepository(store),
		requests:      memory.NewCollabRequestRepository(store),
		collabs:       memory.NewCollaborationRepository(store),
		ratings:       memory.NewRatingRepository(store),
		notifications: memory.NewNotificationRepository(store),
		chats:         memory.NewChatRepository(store),
		uow:           memory.NewUnitOfWork(store),
	}

	now := func() time.Time { return f.clock }

	f.userUC = NewUserUseCase(f.users)
	f.requestUC = NewRequestUseCase(f.requests, f.users, engine, ratelimit.NewRateLimiter(100))
	f.requestUC.now = now
	f.collabUC = NewCollaborationUseCase(f.collabs, f.uow, engine)
	f.collabUC.now = now
	f.ratingUC = NewRatingUseCase(f.ratings, f.users, f.uow, engine)
	f.ratingUC.now = now
	f.notificationUC = NewNotificationUseCase(f.notifications, f.collabs, engine)
	f.chatUC = NewChatUseCase(f.chats, f.users, engine, ratelimit.NewRateLimiter(100))
	f.chatUC.now = now
	f.badgeUC = NewBadgeUseCase(f.chats, f.notifications, f.requests)

	return f
}

func (f *fixture) tick(d time.Duration) {
	f.clock = f.clock.Add(d)
}

func (f *fixture) seed(t *testing.T, principals ...entity.Principal) {
	t.Helper()
	for _, p := range principals {
		_, err := f.userUC.EnsureProfile(context.Background(), p)
		require.NoError(t, err)
	}
}

func (f *fixture) user(t *testing.T, uid string) *entity.User {
	t.Helper()
	u, err := f.users.GetByID(context.Background(), uid)
	require.NoError(t, err)
	return u
}

// activeCollab runs send + accept between sender and receiver.
func (f *fixture) activeCollab(t *testing.T, sender, receiver entity.Principal, project string) *entity.Collaboration {
	t.Helper()
	ctx := context.Background()

	req, err := f.requestUC.SendCollabRequest(ctx, sender, SendRequestInput{ReceiverID: receiver.UID, ProjectName: project})
	require.NoError(t, err)

	collab, err := f.collabUC.AcceptCollabRequest(ctx, receiver, req.ID)
	require.NoError(t, err)
	return collab
}

func (f *fixture) completedCollab(t *testing.T, sender, receiver entity.Principal, project, link string) *entity.Collaboration {
	t.Helper()
	collab := f.activeCollab(t, sender, receiver, project)
	completed, err := f.collabUC.FinalizeCollaborationWithLink(context.Background(), sender, collab.ID, link)
	require.NoError(t, err)
	return completed
}
