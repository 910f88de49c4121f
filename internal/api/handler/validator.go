package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/skillforge/lms-platform/internal/core/domain"
)

// echoValidator wraps go-playground/validator behind the echo.Validator
// interface. Violations come back as a domain.ValidationError so the central
// error handler reports the complete list, same as service-side validation.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns the validator to assign to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	issues := make([]string, 0, len(ve))
	for _, fe := range ve {
		issues = append(issues, fieldIssue(fe))
	}
	return &domain.ValidationError{Issues: issues}
}

// fieldIssue renders one violation as a client-facing message.
func fieldIssue(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
