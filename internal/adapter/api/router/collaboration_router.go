package router

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/adapter/api/handler"
)

func SetupCollaborationRouter(g *echo.Group, collaborationHandler *handler.CollaborationHandler, ratingHandler *handler.RatingHandler) {
	collabs := g.Group("/collaborations")

	collabs.GET("", collaborationHandler.ListCollaborations)
	collabs.POST("/:id/complete", collaborationHandler.CompleteCollaboration)
	collabs.POST("/:id/ratings", ratingHandler.SubmitRating)
}
