package router

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/adapter/api/handler"
)

func SetupUserRouter(g *echo.Group, userHandler *handler.UserHandler, ratingHandler *handler.RatingHandler) {
	users := g.Group("/users")

	users.POST("/me", userHandler.EnsureProfile)         // POST /v1/users/me - Create profile on first sign-in
	users.GET("/me", userHandler.GetCurrentUser)         // GET /v1/users/me
	users.GET("/:id/ratings", ratingHandler.ListRatings) // GET /v1/users/:id/ratings?page=&limit=
}
