package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/events-api/internal/core/domain"
)

// RequireRole enforces role-based access. Superadmin bypasses the check.
// Must run after Auth.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := Actor(c)
			if err != nil {
				return err
			}
			if actor.Role == domain.RoleSuperadmin {
				return next(c)
			}
			if _, ok := allowed[actor.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}
