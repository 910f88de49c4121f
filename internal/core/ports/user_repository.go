package ports

import (
	"context"
	"time"

	"github.com/skillforge/lms-platform/internal/core/domain"
)

// UserRepository defines persistence for users, including the embedded
// subscription and progress records they own.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateSubscription(ctx context.Context, userID string, sub domain.Subscription) error
	// AddProgress appends a new progress record for a course.
	AddProgress(ctx context.Context, userID string, progress domain.Progress) error
	// CompleteLesson adds a lesson id to the completed set of the user's
	// progress record for the course. Adding an already-present id is a no-op.
	CompleteLesson(ctx context.Context, userID, courseID, lessonID string, accessedAt time.Time) error
}

// DeviceRepository defines persistence for session-limiting device records.
type DeviceRepository interface {
	CountActive(ctx context.Context, userID string) (int, error)
	FindByDeviceID(ctx context.Context, userID, deviceID string) (*domain.Device, error)
	// Upsert registers the device or refreshes its last-seen time and name,
	// marking it active.
	Upsert(ctx context.Context, device *domain.Device) error
	ListByUser(ctx context.Context, userID string) ([]domain.Device, error)
	Deactivate(ctx context.Context, userID, deviceID string) error
}
