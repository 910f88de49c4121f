package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skillforge/lms-platform/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Errors
// holds the full violation list for validation failures; Limit and
// CurrentDevices are set only for device-limit rejections.
type errorResponse struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	Errors         []string `json:"errors,omitempty"`
	Limit          int      `json:"limit,omitempty"`
	CurrentDevices int      `json:"currentDevices,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Returns the complete violation list for validation errors.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	// Validation failures carry every violation, never just the first.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Message: "validation failed", Errors: ve.Issues}
	}

	var dle *domain.DeviceLimitError
	if errors.As(err, &dle) {
		return http.StatusForbidden, errorResponse{
			Message:        "Device limit reached. Please remove a device from your account to continue.",
			Limit:          dle.Limit,
			CurrentDevices: dle.Current,
		}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrCourseNotFound),
		errors.Is(err, domain.ErrLessonNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrDeviceNotFound),
		errors.Is(err, domain.ErrNotEnrolled):
		return http.StatusNotFound, errorResponse{Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Message: "invalid credentials"}
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, errorResponse{Message: "token expired"}
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, errorResponse{Message: "invalid token"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Message: "access forbidden"}
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrAlreadyEnrolled),
		errors.Is(err, domain.ErrEmptyQuery),
		errors.Is(err, domain.ErrUnknownPlan),
		errors.Is(err, domain.ErrPaymentInvalid):
		return http.StatusBadRequest, errorResponse{Message: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Message: "internal server error"}
}
