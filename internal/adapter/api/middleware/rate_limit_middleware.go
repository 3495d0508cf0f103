package middleware

import (
	"github.com/labstack/echo/v4"

	"creatorconnect/internal/domain/service"
	"creatorconnect/pkg/errors"
	"creatorconnect/pkg/logger"
	"creatorconnect/pkg/response"
)

// RateLimit throttles requests per caller, or per client IP before
// authentication. Limiter failures let the request through.
func RateLimit(limiter service.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "http:ip:" + c.RealIP()
			if p, ok := PrincipalFrom(c); ok {
				key = "http:uid:" + p.UID
			}

			allowed, retryAfter, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				logger.Warn("RATE LIMIT: limiter unavailable for %s: %v", key, err)
				return next(c)
			}
			if !allowed {
				logger.Info("RATE LIMIT: blocked %s (retry in %v)", key, retryAfter)
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded", retryAfter))
			}

			return next(c)
		}
	}
}
