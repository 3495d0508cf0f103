package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"creatorconnect/internal/adapter/api"
	"creatorconnect/internal/adapter/api/handler"
	"creatorconnect/internal/adapter/api/middleware"
	"creatorconnect/internal/adapter/api/router"
	"creatorconnect/internal/adapter/repository/memory"
	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/infrastructure/firebase"
	"creatorconnect/internal/infrastructure/ratelimit"
	"creatorconnect/internal/infrastructure/rules"
	"creatorconnect/internal/infrastructure/websocket"
	"creatorconnect/internal/usecase"
	"creatorconnect/pkg/config"
)

var (
	alice = entity.Principal{UID: "alice", Email: "alice@example.com", DisplayName: "Alice"}
	bob   = entity.Principal{UID: "bob", Email: "bob@example.com", DisplayName: "Bob"}
	root  = entity.Principal{UID: "root", Role: entity.RoleAdmin}
)

type harness struct {
	t      *testing.T
	e      *echo.Echo
	store  *memory.Store
	tokens *firebase.DevTokenService
}

type harnessOptions struct {
	ackMode        string
	httpPerMinute  int
	withoutDevAuth bool
}

func newHarness(t *testing.T, opts harnessOptions) *harness {
	t.Helper()

	if opts.ackMode == "" {
		opts.ackMode = config.RatingAckStrict
	}

	engine, err := rules.NewEngine(rules.DefaultRules)
	require.NoError(t, err)

	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	requestRepo := memory.NewCollabRequestRepository(store)
	collabRepo := memory.NewCollaborationRepository(store)
	ratingRepo := memory.NewRatingRepository(store)
	notificationRepo := memory.NewNotificationRepository(store)
	chatRepo := memory.NewChatRepository(store)
	uow := memory.NewUnitOfWork(store)

	userUC := usecase.NewUserUseCase(userRepo)
	requestUC := usecase.NewRequestUseCase(requestRepo, userRepo, engine, ratelimit.NewRateLimiter(100))
	collabUC := usecase.NewCollaborationUseCase(collabRepo, uow, engine)
	ratingUC := usecase.NewRatingUseCase(ratingRepo, userRepo, uow, engine)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo, collabRepo, engine)
	chatUC := usecase.NewChatUseCase(chatRepo, userRepo, engine, ratelimit.NewRateLimiter(100))
	badgeUC := usecase.NewBadgeUseCase(chatRepo, notificationRepo, requestRepo)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	wsManager := websocket.NewManager(handler.NewStreamSource(requestUC, collabUC, ratingUC, notificationUC, chatUC, badgeUC))
	wsManager.Start(ctx)

	tokens := firebase.NewDevTokenService("test-secret", time.Hour)

	h := &handler.Handlers{
		Health:        handler.NewHealthHandler(nil),
		User:          handler.NewUserHandler(userUC),
		Request:       handler.NewRequestHandler(requestUC),
		Collaboration: handler.NewCollaborationHandler(collabUC),
		Rating:        handler.NewRatingHandler(ratingUC, opts.ackMode),
		Notification:  handler.NewNotificationHandler(notificationUC),
		Chat:          handler.NewChatHandler(chatUC),
		Badge:         handler.NewBadgeHandler(badgeUC),
		Admin:         handler.NewAdminHandler(ratingUC),
		WebSocket:     handler.NewWebSocketHandler(wsManager, nil),
	}
	if !opts.withoutDevAuth {
		h.DevToken = handler.NewDevTokenHandler(tokens)
	}

	var rateLimit echo.MiddlewareFunc
	if opts.httpPerMinute > 0 {
		rateLimit = middleware.RateLimit(ratelimit.NewRateLimiter(opts.httpPerMinute))
	}

	e := echo.New()
	e.Validator = api.NewValidator()
	router.Setup(e, h, middleware.NewAuthMiddleware(tokens), middleware.NewAdminMiddleware(userRepo), rateLimit)

	return &harness{t: t, e: e, store: store, tokens: tokens}
}

func (h *harness) seedUser(p entity.Principal) {
	h.t.Helper()
	err := memory.NewUserRepository(h.store).Create(context.Background(), &entity.User{
		ID:          p.UID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		PhotoURL:    p.PhotoURL,
		Role:        p.Role,
	})
	require.NoError(h.t, err)
}

func (h *harness) token(p entity.Principal) string {
	h.t.Helper()
	token, err := h.tokens.GenerateToken(p)
	require.NoError(h.t, err)
	return token
}

// do sends a request as p, or anonymously when p is nil.
func (h *harness) do(method, path string, p *entity.Principal, body interface{}) *httptest.ResponseRecorder {
	h.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if p != nil {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+h.token(*p))
	}

	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, status int, out interface{}) envelope {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder, status int) string {
	t.Helper()
	env := decode(t, rec, status, nil)
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	return env.Error.Code
}
