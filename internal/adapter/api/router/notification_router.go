package router

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/adapter/api/handler"
)

func SetupNotificationRouter(g *echo.Group, notificationHandler *handler.NotificationHandler) {
	notifications := g.Group("/notifications")

	notifications.GET("", notificationHandler.ListNotifications)
	notifications.GET("/rate-back", notificationHandler.ListRateBackPrompts)
	notifications.PUT("/read-all", notificationHandler.MarkAllRead)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)
}
