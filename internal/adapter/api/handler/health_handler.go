package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// StoreCheck reports whether the document store is reachable.
type StoreCheck func(ctx context.Context) error

type HealthHandler struct {
	checkStore StoreCheck
}

func NewHealthHandler(checkStore StoreCheck) *HealthHandler {
	return &HealthHandler{
		checkStore: checkStore,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Server is running",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) CheckStoreHealth(c echo.Context) error {
	if h.checkStore != nil {
		if err := h.checkStore(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "Store connection failed",
				"error":  err.Error(),
			})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "Store connected successfully",
	})
}
