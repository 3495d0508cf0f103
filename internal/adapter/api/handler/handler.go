package handler

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/adapter/api/middleware"
	"creatorconnect/internal/domain/entity"
	"creatorconnect/pkg/errors"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health        *HealthHandler
	User          *UserHandler
	Request       *RequestHandler
	Collaboration *CollaborationHandler
	Rating        *RatingHandler
	Notification  *NotificationHandler
	Chat          *ChatHandler
	Badge         *BadgeHandler
	Admin         *AdminHandler
	WebSocket     *WebSocketHandler
	DevToken      *DevTokenHandler
}

func principal(c echo.Context) (entity.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return entity.Principal{}, errors.Unauthorized("Authentication required", nil)
	}
	return p, nil
}
