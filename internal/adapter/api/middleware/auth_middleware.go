package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/infrastructure/firebase"
	"creatorconnect/pkg/errors"
	"creatorconnect/pkg/response"
)

const principalKey = "principal"

// tokenQueryParam lets browser websocket clients, which cannot set headers,
// pass their token in the URL.
const tokenQueryParam = "access_token"

type AuthMiddleware struct {
	verifier firebase.TokenVerifier
}

func NewAuthMiddleware(verifier firebase.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c)
		if err != nil {
			return response.Error(c, err)
		}

		principal, err := m.verifier.VerifyToken(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}

		SetPrincipal(c, *principal)
		return next(c)
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		if token := c.QueryParam(tokenQueryParam); token != "" {
			return token, nil
		}
		return "", errors.Unauthorized("Authorization header is required", nil)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.Unauthorized("Invalid authorization format", nil)
	}
	return strings.TrimSpace(parts[1]), nil
}

func SetPrincipal(c echo.Context, p entity.Principal) {
	c.Set(principalKey, p)
	c.Set("uid", p.UID)
}

// PrincipalFrom returns the caller set by Authenticate.
func PrincipalFrom(c echo.Context) (entity.Principal, bool) {
	p, ok := c.Get(principalKey).(entity.Principal)
	return p, ok && p.UID != ""
}
