package handler

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/usecase"
	"creatorconnect/pkg/response"
)

type AdminHandler struct {
	ratingUseCase *usecase.RatingUseCase
}

func NewAdminHandler(ratingUseCase *usecase.RatingUseCase) *AdminHandler {
	return &AdminHandler{
		ratingUseCase: ratingUseCase,
	}
}

// RecomputeRating rebuilds a user's rating aggregate from their stored ratings.
func (h *AdminHandler) RecomputeRating(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return response.Error(c, err)
	}

	agg, err := h.ratingUseCase.RecomputeRating(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, agg)
}
