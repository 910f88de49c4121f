package ports

import (
	"context"

	"github.com/skillforge/lms-platform/internal/core/domain"
)

// LoginInput carries credentials plus the optional device identity used by the
// device-limit policy.
type LoginInput struct {
	Email      string
	Password   string
	DeviceID   string
	DeviceName string
}

// AuthService defines credential verification and session token operations.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, input LoginInput) (string, *domain.User, error)
	// VerifyToken resolves a session token to the current user record and
	// re-checks the embedded email/role against it, guarding against stale
	// tokens after a role change.
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}

// DeviceService manages the session-limiting device records of a user.
type DeviceService interface {
	List(ctx context.Context, userID string) ([]domain.Device, error)
	Deactivate(ctx context.Context, userID, deviceID string) error
}
