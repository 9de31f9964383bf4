package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/announcements-api/internal/core/ports"
)

// ContextUserKey is the echo.Context key under which Auth stores the
// resolved *domain.User.
const ContextUserKey = "current_user"

// Auth resolves the bearer token to a live user record and injects it into
// the request context. The token's embedded role is never trusted: the user
// is re-fetched from the store on every request, so role changes apply
// immediately and tokens of deleted accounts are rejected.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := auth.CurrentUser(c.Request().Context(), parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}
