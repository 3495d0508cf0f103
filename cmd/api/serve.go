package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"creatorconnect/internal/adapter/api"
	"creatorconnect/internal/adapter/api/handler"
	apimiddleware "creatorconnect/internal/adapter/api/middleware"
	"creatorconnect/internal/adapter/api/router"
	"creatorconnect/internal/infrastructure/websocket"
	"creatorconnect/pkg/config"
	"creatorconnect/pkg/logger"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				cfg.ServerPort = port
			}
			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides SERVER_PORT)")
	return cmd
}

func runServer(ctx context.Context, cfg *config.Config) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	wsManager := websocket.NewManager(handler.NewStreamSource(
		a.requestUC, a.collaborationUC, a.ratingUC, a.notificationUC, a.chatUC, a.badgeUC,
	))
	wsManager.Start(ctx)

	h := &handler.Handlers{
		Health:        handler.NewHealthHandler(a.storeCheck),
		User:          handler.NewUserHandler(a.userUC),
		Request:       handler.NewRequestHandler(a.requestUC),
		Collaboration: handler.NewCollaborationHandler(a.collaborationUC),
		Rating:        handler.NewRatingHandler(a.ratingUC, cfg.RatingAckMode),
		Notification:  handler.NewNotificationHandler(a.notificationUC),
		Chat:          handler.NewChatHandler(a.chatUC),
		Badge:         handler.NewBadgeHandler(a.badgeUC),
		Admin:         handler.NewAdminHandler(a.ratingUC),
		WebSocket:     handler.NewWebSocketHandler(wsManager, cfg.AllowedOrigins),
	}
	if a.devTokens != nil {
		h.DevToken = handler.NewDevTokenHandler(a.devTokens)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			logger.L().Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
				zap.Error(v.Error),
			)
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	if len(cfg.AllowedOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{AllowOrigins: cfg.AllowedOrigins}))
	} else {
		e.Use(echomiddleware.CORS())
	}

	router.Setup(e, h,
		apimiddleware.NewAuthMiddleware(a.verifier),
		apimiddleware.NewAdminMiddleware(a.userRepo),
		apimiddleware.RateLimit(a.httpLimiter),
	)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server on port %s (store: %s)", cfg.ServerPort, cfg.StoreBackend)
		err := e.Start(":" + cfg.ServerPort)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
