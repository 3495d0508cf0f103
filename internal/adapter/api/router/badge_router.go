package router

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/adapter/api/handler"
)

func SetupBadgeRouter(g *echo.Group, badgeHandler *handler.BadgeHandler) {
	g.GET("/badges", badgeHandler.GetBadgeCounts)
}
