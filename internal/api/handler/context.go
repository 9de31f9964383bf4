package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/announcements-api/internal/api/middleware"
	"github.com/teamhub/announcements-api/internal/core/domain"
)

// currentUser extracts the user resolved by the Auth middleware. Its absence
// means the route was wired without the middleware; fail closed with 401
// rather than proceeding unauthenticated.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.ContextUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
