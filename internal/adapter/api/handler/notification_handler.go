package handler

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/usecase"
	"creatorconnect/pkg/response"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return response.Error(c, err)
	}

	notifications, err := h.notificationUseCase.ListNotifications(c.Request().Context(), p)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, notifications)
}

// ListRateBackPrompts lists ratings received for which the caller still owes
// a rating in return.
func (h *NotificationHandler) ListRateBackPrompts(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return response.Error(c, err)
	}

	prompts, err := h.notificationUseCase.ListRateBackPrompts(c.Request().Context(), p)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, prompts)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.notificationUseCase.MarkNotificationRead(c.Request().Context(), p, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Notification marked as read",
	})
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return response.Error(c, err)
	}

	updated, err := h.notificationUseCase.MarkAllNotificationsRead(c.Request().Context(), p)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int{
		"updated": updated,
	})
}
