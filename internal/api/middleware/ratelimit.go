package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Limiter abstracts the rate limit backend (Redis fixed window).
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit throttles requests per client IP. Backend failures fail open:
// a broken Redis must not take the auth endpoints down with it.
func RateLimit(limiter Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				return next(c)
			}
			if !ok {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, try again later.")
			}
			return next(c)
		}
	}
}
