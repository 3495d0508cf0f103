package router

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/adapter/api/handler"
)

func SetupDevRouter(e *echo.Echo, devTokenHandler *handler.DevTokenHandler) {
	e.POST("/_dev/token", devTokenHandler.GenerateToken)
}
