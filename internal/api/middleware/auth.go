package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skillforge/lms-platform/internal/core/domain"
	"github.com/skillforge/lms-platform/internal/core/ports"
)

// Context keys set by the auth middleware.
const (
	CtxUser            = "user"
	CtxRole            = "role"
	CtxHasSubscription = "has_active_subscription"
)

// Auth extracts the bearer token, resolves it to the live user record through
// the auth service, and attaches the user, role, and subscription flag to the
// request context. Authorization is re-derived from current storage state on
// every request; the token's embedded snapshot is never trusted on its own.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			user, err := auth.VerifyToken(c.Request().Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrTokenExpired):
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				case errors.Is(err, domain.ErrTokenInvalid):
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return err
			}

			attachUser(c, user)
			return next(c)
		}
	}
}

// OptionalAuth attaches the user when a valid bearer token is present and
// continues anonymously otherwise. Used by public lesson reads to decide
// whether to watermark.
func OptionalAuth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return next(c)
			}
			if user, err := auth.VerifyToken(c.Request().Context(), token); err == nil {
				attachUser(c, user)
			}
			return next(c)
		}
	}
}

func attachUser(c echo.Context, user *domain.User) {
	c.Set(CtxUser, user)
	c.Set(CtxRole, user.Role)
	c.Set(CtxHasSubscription, user.Subscription.ActiveAt(time.Now().UTC()))
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
