package router

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/adapter/api/handler"
	"creatorconnect/internal/adapter/api/middleware"
)

func SetupAdminRouter(g *echo.Group, adminHandler *handler.AdminHandler, adminMiddleware *middleware.AdminMiddleware) {
	admin := g.Group("/admin")
	admin.Use(adminMiddleware.AdminOnly)

	admin.POST("/users/:id/recompute-rating", adminHandler.RecomputeRating)
}
