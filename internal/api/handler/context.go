package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillforge/lms-platform/internal/api/middleware"
	"github.com/skillforge/lms-platform/internal/core/domain"
)

// currentUser extracts the user attached by the Auth middleware. Its presence
// proves the middleware ran; a handler behind Auth that finds no user fails
// with 401 before any service call.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.CtxUser).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}

// optionalUser returns the attached user, or nil for anonymous requests.
func optionalUser(c echo.Context) *domain.User {
	user, _ := c.Get(middleware.CtxUser).(*domain.User)
	return user
}

// hasSubscription reports the subscription flag computed by the Auth middleware.
func hasSubscription(c echo.Context) bool {
	active, _ := c.Get(middleware.CtxHasSubscription).(bool)
	return active
}
