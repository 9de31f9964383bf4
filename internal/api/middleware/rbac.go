package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/announcements-api/internal/core/domain"
)

// RequireAdmin gates a route on the resolved user's live role. It must run
// after Auth in the middleware chain.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(ContextUserKey).(*domain.User)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if user.Role != domain.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}
