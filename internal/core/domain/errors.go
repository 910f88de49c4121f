package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrLessonNotFound = errors.New("lesson not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrDeviceNotFound = errors.New("device not found")

	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrForbidden          = errors.New("access forbidden")

	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
	ErrNotEnrolled     = errors.New("not enrolled in this course")

	ErrEmptyQuery     = errors.New("search query is required")
	ErrUnknownPlan    = errors.New("unknown subscription plan")
	ErrPaymentInvalid = errors.New("payment verification failed")
)

// ValidationError carries the complete list of violations found during a
// validation pass. Violations are collected, never reported one at a time.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Issues, "; ")
}

// DeviceLimitError is returned when a login would exceed the active-device
// limit. It carries the limit and the current count for the response payload.
type DeviceLimitError struct {
	Limit   int
	Current int
}

func (e *DeviceLimitError) Error() string {
	return fmt.Sprintf("device limit reached (%d of %d active)", e.Current, e.Limit)
}
