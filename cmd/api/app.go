package main

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"creatorconnect/internal/adapter/api/handler"
	"creatorconnect/internal/adapter/repository"
	"creatorconnect/internal/adapter/repository/memory"
	domainrepo "creatorconnect/internal/domain/repository"
	"creatorconnect/internal/domain/service"
	"creatorconnect/internal/infrastructure/firebase"
	"creatorconnect/internal/infrastructure/ratelimit"
	"creatorconnect/internal/infrastructure/rules"
	"creatorconnect/internal/usecase"
	"creatorconnect/pkg/config"
	"creatorconnect/pkg/logger"
)

// app owns every long-lived client. Close releases them in reverse order.
type app struct {
	userRepo domainrepo.UserRepository

	verifier    firebase.TokenVerifier
	devTokens   *firebase.DevTokenService
	httpLimiter service.RateLimiter
	storeCheck  handler.StoreCheck

	userUC          *usecase.UserUseCase
	requestUC       *usecase.RequestUseCase
	collaborationUC *usecase.CollaborationUseCase
	ratingUC        *usecase.RatingUseCase
	notificationUC  *usecase.NotificationUseCase
	chatUC          *usecase.ChatUseCase
	badgeUC         *usecase.BadgeUseCase

	closers []func()
}

type repositories struct {
	users          domainrepo.UserRepository
	requests       domainrepo.CollabRequestRepository
	collaborations domainrepo.CollaborationRepository
	ratings        domainrepo.RatingRepository
	notifications  domainrepo.NotificationRepository
	chats          domainrepo.ChatRepository
	uow            domainrepo.UnitOfWork
}

func newApp(ctx context.Context, cfg *config.Config) (a *app, err error) {
	a = &app{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	var opts []option.ClientOption
	switch {
	case cfg.ServiceAccountJSON != "":
		logger.Info("Using Firebase service account from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON)))
	case cfg.ServiceAccountPath != "":
		logger.Info("Using Firebase service account from file: %s", cfg.ServiceAccountPath)
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceAccountPath))
	default:
		logger.Info("Using application default credentials")
	}

	var verifiers firebase.ChainVerifier
	if cfg.FirebaseProject != "" {
		firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Firebase: %w", err)
		}
		authClient, err := firebaseApp.Auth(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Firebase Auth: %w", err)
		}
		verifiers = append(verifiers, firebase.NewFirebaseAuthClient(authClient))
	}
	if cfg.IsDevelopment() {
		a.devTokens = firebase.NewDevTokenService(cfg.JWTSecret, cfg.JWTExpiry)
		verifiers = append(verifiers, a.devTokens)
		logger.Warn("Development tokens are enabled")
	}
	if len(verifiers) == 0 {
		return nil, fmt.Errorf("no token verifier configured: set FIREBASE_PROJECT_ID or ENVIRONMENT=development")
	}
	a.verifier = verifiers

	var repos repositories
	switch cfg.StoreBackend {
	case config.StoreFirestore:
		client, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create Firestore client: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		a.storeCheck = repository.FirestorePing(client)
		repos = repositories{
			users:          repository.NewFirestoreUserRepository(client),
			requests:       repository.NewFirestoreCollabRequestRepository(client),
			collaborations: repository.NewFirestoreCollaborationRepository(client),
			ratings:        repository.NewFirestoreRatingRepository(client),
			notifications:  repository.NewFirestoreNotificationRepository(client),
			chats:          repository.NewFirestoreChatRepository(client),
			uow:            repository.NewFirestoreUnitOfWork(client),
		}
	default:
		logger.Warn("Using the in-memory store; data is lost on restart")
		store := memory.NewStore()
		repos = repositories{
			users:          memory.NewUserRepository(store),
			requests:       memory.NewCollabRequestRepository(store),
			collaborations: memory.NewCollaborationRepository(store),
			ratings:        memory.NewRatingRepository(store),
			notifications:  memory.NewNotificationRepository(store),
			chats:          memory.NewChatRepository(store),
			uow:            memory.NewUnitOfWork(store),
		}
	}
	a.userRepo = repos.users

	requestLimiter, messageLimiter, httpLimiter, err := a.newLimiters(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.httpLimiter = httpLimiter

	engine, err := rules.NewEngine(rules.DefaultRules)
	if err != nil {
		return nil, err
	}

	a.userUC = usecase.NewUserUseCase(repos.users)
	a.requestUC = usecase.NewRequestUseCase(repos.requests, repos.users, engine, requestLimiter)
	a.collaborationUC = usecase.NewCollaborationUseCase(repos.collaborations, repos.uow, engine)
	a.ratingUC = usecase.NewRatingUseCase(repos.ratings, repos.users, repos.uow, engine)
	a.notificationUC = usecase.NewNotificationUseCase(repos.notifications, repos.collaborations, engine)
	a.chatUC = usecase.NewChatUseCase(repos.chats, repos.users, engine, messageLimiter)
	a.badgeUC = usecase.NewBadgeUseCase(repos.chats, repos.notifications, repos.requests)

	return a, nil
}

// newLimiters shares one Redis window per concern when REDIS_URL is set and
// falls back to in-process token buckets otherwise.
func (a *app) newLimiters(ctx context.Context, cfg *config.Config) (requests, messages, httpLimiter service.RateLimiter, err error) {
	if cfg.RedisURL != "" {
		client, err := ratelimit.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis is not reachable yet, rate limiting will fail open: %v", err)
		}
		return ratelimit.NewRedisLimiter(client, "requests", cfg.RequestRatePerMinute),
			ratelimit.NewRedisLimiter(client, "messages", cfg.MessageRatePerMinute),
			ratelimit.NewRedisLimiter(client, "http", cfg.HTTPRatePerMinute),
			nil
	}

	local := []*ratelimit.RateLimiter{
		ratelimit.NewRateLimiter(cfg.RequestRatePerMinute),
		ratelimit.NewRateLimiter(cfg.MessageRatePerMinute),
		ratelimit.NewRateLimiter(cfg.HTTPRatePerMinute),
	}
	for _, limiter := range local {
		limiter.StartCleanupRoutine(ctx)
	}
	return local[0], local[1], local[2], nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
