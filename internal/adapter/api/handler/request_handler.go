package handler

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/usecase"
	"creatorconnect/pkg/response"
)

type RequestHandler struct {
	requestUseCase *usecase.RequestUseCase
}

func NewRequestHandler(requestUseCase *usecase.RequestUseCase) *RequestHandler {
	return &RequestHandler{
		requestUseCase: requestUseCase,
	}
}

type sendRequestRequest struct {
	ReceiverID  string `json:"receiver_id" validate:"required"`
	ProjectName string `json:"project_name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Dates       string `json:"dates" validate:"max=120"`
}

func (h *RequestHandler) SendRequest(c echo.Context) error {
	var req sendRequestRequest
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

	created, err := h.requestUseCase.SendCollabRequest(c.Request().Context(), p, usecase.SendRequestInput{
		ReceiverID:  req.ReceiverID,
		ProjectName: req.ProjectName,
		Description: req.Description,
		Dates:       req.Dates,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, created)
}

func (h *RequestHandler) ListReceived(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return response.Error(c, err)
	}

	requests, err := h.requestUseCase.ListReceived(c.Request().Context(), p)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, requests)
}

func (h *RequestHandler) ListSent(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return response.Error(c, err)
	}

	requests, err := h.requestUseCase.ListSent(c.Request().Context(), p)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, requests)
}

func (h *RequestHandler) DeclineRequest(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.requestUseCase.DeclineCollabRequest(c.Request().Context(), p, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Request declined",
	})
}
