package handler

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/usecase"
	"creatorconnect/pkg/response"
)

type CollaborationHandler struct {
	collaborationUseCase *usecase.CollaborationUseCase
}

func NewCollaborationHandler(collaborationUseCase *usecase.CollaborationUseCase) *CollaborationHandler {
	return &CollaborationHandler{
		collaborationUseCase: collaborationUseCase,
	}
}

type completeCollaborationRequest struct {
	Link string `json:"link" validate:"required"`
}

func (h *CollaborationHandler) AcceptRequest(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return response.Error(c, err)
	}

	collab, err := h.collaborationUseCase.AcceptCollabRequest(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, collab)
}

func (h *CollaborationHandler) ListCollaborations(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return response.Error(c, err)
	}

	collabs, err := h.collaborationUseCase.ListCollaborations(c.Request().Context(), p)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, collabs)
}

func (h *CollaborationHandler) CompleteCollaboration(c echo.Context) error {
	var req completeCollaborationRequest
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

	collab, err := h.collaborationUseCase.FinalizeCollaborationWithLink(c.Request().Context(), p, c.Param("id"), req.Link)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, collab)
}
