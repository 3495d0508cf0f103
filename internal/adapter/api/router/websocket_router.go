package router

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/adapter/api/handler"
)

// SetupWebSocketRouter mounts the stream endpoint. Browsers pass the token as
// the access_token query parameter.
func SetupWebSocketRouter(g *echo.Group, wsHandler *handler.WebSocketHandler) {
	g.GET("/ws", wsHandler.HandleWebSocket)
}
