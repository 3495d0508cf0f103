package router

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/adapter/api/handler"
	"creatorconnect/internal/adapter/api/middleware"
)

// Setup mounts every route. The rate limit middleware runs after
// authentication so callers are throttled by uid.
func Setup(e *echo.Echo, h *handler.Handlers, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, rateLimit echo.MiddlewareFunc) {
	SetupHealthRouter(e, h.Health)

	v1 := e.Group("/v1")
	v1.Use(authMiddleware.Authenticate)
	if rateLimit != nil {
		v1.Use(rateLimit)
	}

	SetupUserRouter(v1, h.User, h.Rating)
	SetupRequestRouter(v1, h.Request, h.Collaboration)
	SetupCollaborationRouter(v1, h.Collaboration, h.Rating)
	SetupNotificationRouter(v1, h.Notification)
	SetupChatRouter(v1, h.Chat)
	SetupBadgeRouter(v1, h.Badge)
	SetupAdminRouter(v1, h.Admin, adminMiddleware)
	SetupWebSocketRouter(v1, h.WebSocket)

	if h.DevToken != nil {
		SetupDevRouter(e, h.DevToken)
	}
}
