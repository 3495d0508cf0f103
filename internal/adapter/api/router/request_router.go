package router

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/adapter/api/handler"
)

func SetupRequestRouter(g *echo.Group, requestHandler *handler.RequestHandler, collaborationHandler *handler.CollaborationHandler) {
	requests := g.Group("/requests")

	requests.POST("", requestHandler.SendRequest)
	requests.GET("/received", requestHandler.ListReceived)
	requests.GET("/sent", requestHandler.ListSent)
	requests.DELETE("/:id", requestHandler.DeclineRequest)
	requests.POST("/:id/accept", collaborationHandler.AcceptRequest) // Creates the collaboration atomically
}
