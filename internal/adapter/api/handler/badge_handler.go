package handler

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/usecase"
	"creatorconnect/pkg/response"
)

type BadgeHandler struct {
	badgeUseCase *usecase.BadgeUseCase
}

func NewBadgeHandler(badgeUseCase *usecase.BadgeUseCase) *BadgeHandler {
	return &BadgeHandler{
		badgeUseCase: badgeUseCase,
	}
}

func (h *BadgeHandler) GetBadgeCounts(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return response.Error(c, err)
	}

	counts, err := h.badgeUseCase.BadgeCounts(c.Request().Context(), p)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, counts)
}
