package handler

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/infrastructure/firebase"
	"creatorconnect/pkg/response"
)

// DevTokenHandler mints signed tokens for local development. It is only
// mounted when ENVIRONMENT=development.
type DevTokenHandler struct {
	tokens *firebase.DevTokenService
}

func NewDevTokenHandler(tokens *firebase.DevTokenService) *DevTokenHandler {
	return &DevTokenHandler{
		tokens: tokens,
	}
}

type devTokenRequest struct {
	UID         string `json:"uid" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url" validate:"omitempty,url"`
	Role        string `json:"role" validate:"omitempty,oneof=user admin"`
}

func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	var req devTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	p := entity.Principal{
		UID:         req.UID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		Role:        req.Role,
	}
	token, err := h.tokens.GenerateToken(p)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"token": token,
		"user":  p,
	})
}
