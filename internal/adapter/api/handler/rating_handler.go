package handler

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/usecase"
	"creatorconnect/pkg/config"
	"creatorconnect/pkg/logger"
	"creatorconnect/pkg/response"
	"creatorconnect/pkg/utils"
)

type RatingHandler struct {
	ratingUseCase *usecase.RatingUseCase
	ackMode       string
}

// NewRatingHandler builds the handler. In config.RatingAckOptimistic mode a
// failed submission is logged and still acknowledged with 202.
func NewRatingHandler(ratingUseCase *usecase.RatingUseCase, ackMode string) *RatingHandler {
	return &RatingHandler{
		ratingUseCase: ratingUseCase,
		ackMode:       ackMode,
	}
}

type submitRatingRequest struct {
	RatedUserID string `json:"rated_user_id" validate:"required"`
	RatingValue int    `json:"rating_value" validate:"required,min=1,max=5"`
	Comment     string `json:"comment" validate:"max=1000"`
}

func (h *RatingHandler) SubmitRating(c echo.Context) error {
	var req submitRatingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	p, err := principal(c)
	if err != nil {
		return response.Error(c, err)
	}

	collabID := c.Param("id")
	rating, err := h.ratingUseCase.SubmitRating(c.Request().Context(), p, usecase.SubmitRatingInput{
		CollabID:    collabID,
		RatedUserID: req.RatedUserID,
		RatingValue: req.RatingValue,
		Comment:     req.Comment,
	})
	if err != nil {
		if h.ackMode == config.RatingAckOptimistic {
			logger.Error("Rating by %s for collaboration %s failed after optimistic ack: %v", p.UID, collabID, err)
			return response.Accepted(c, map[string]string{
				"status": "accepted",
			})
		}
		return response.Error(c, err)
	}

	return response.Created(c, rating)
}

func (h *RatingHandler) ListRatings(c echo.Context) error {
	page := utils.PageFromQuery(c)

	ratings, total, err := h.ratingUseCase.ListRatings(c.Request().Context(), c.Param("id"), page.Number, page.Size)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, ratings, int64(total), page.Number, page.Size)
}
