package handler

import (
	"errors"
	"testing"

	"github.com/skillforge/lms-platform/internal/core/domain"
)

func TestValidator_CollectsAllIssues(t *testing.T) {
	type payload struct {
		Name     string `validate:"required"`
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
	}

	v := NewValidator()
	err := v.Validate(payload{Email: "not-an-email", Password: "short"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %T", err)
	}
	want := []string{
		"name is required",
		"email must be a valid email",
		"password must be at least 8",
	}
	if len(ve.Issues) != len(want) {
		t.Fatalf("expected %d issues, got %v", len(want), ve.Issues)
	}
	for i, msg := range want {
		if ve.Issues[i] != msg {
			t.Fatalf("issue %d: expected %q, got %q", i, msg, ve.Issues[i])
		}
	}
}

func TestValidator_ValidInput(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
	}

	if err := NewValidator().Validate(payload{Email: "a@b.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
