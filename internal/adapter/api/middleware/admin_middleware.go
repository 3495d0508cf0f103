package middleware

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	"creatorconnect/pkg/errors"
	"creatorconnect/pkg/response"
)

type AdminMiddleware struct {
	userRepo repository.UserRepository
}

func NewAdminMiddleware(userRepo repository.UserRepository) *AdminMiddleware {
	return &AdminMiddleware{
		userRepo: userRepo,
	}
}

// AdminOnly admits callers whose token or stored profile carries the admin
// role. A profile-granted role is copied onto the principal.
func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}
		if p.Role == entity.RoleAdmin {
			return next(c)
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), p.UID)
		if err != nil {
			if errors.Is(err, errors.CodeNotFound) {
				return response.Error(c, errors.Forbidden("Admin privileges required", nil))
			}
			return response.Error(c, err)
		}
		if !user.IsAdmin() {
			return response.Error(c, errors.Forbidden("Admin privileges required", nil))
		}

		p.Role = entity.RoleAdmin
		SetPrincipal(c, p)
		return next(c)
	}
}
