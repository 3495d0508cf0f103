package router

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/adapter/api/handler"
)

func SetupChatRouter(g *echo.Group, chatHandler *handler.ChatHandler) {
	chats := g.Group("/chats")

	chats.POST("", chatHandler.CreateChat)             // POST /v1/chats - Get or create a direct chat
	chats.GET("", chatHandler.GetUserChats)            // GET /v1/chats - Chats with unread flags
	chats.PUT("/:id/read", chatHandler.MarkChatAsRead) // PUT /v1/chats/:id/read

	chats.POST("/:id/messages", chatHandler.SendMessage)
	chats.GET("/:id/messages", chatHandler.GetChatMessages)
}
