package ports

import (
	"context"

	"github.com/skillforge/lms-platform/internal/core/domain"
)

// ProgressResult is the read-side view of a user's progress in one course.
// TotalLessons is computed by walking the course's modules at read time, and
// Ratio is 0 when the course has no lessons.
type ProgressResult struct {
	CompletedLessons []string
	TotalLessons     int
	Ratio            float64
}

// ProgressService defines the per-user per-course completion ledger.
type ProgressService interface {
	Enroll(ctx context.Context, userID, courseID string) error
	// RecordCompletion is idempotent: completing an already-completed lesson
	// is a no-op, not an error.
	RecordCompletion(ctx context.Context, userID, courseID, lessonID string) error
	GetProgress(ctx context.Context, userID, courseID string) (*ProgressResult, error)
	EnrolledCourses(ctx context.Context, userID string) ([]domain.CourseSummary, error)
}
