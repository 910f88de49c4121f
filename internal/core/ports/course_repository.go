package ports

import (
	"context"

	"github.com/skillforge/lms-platform/internal/core/domain"
)

// CourseRepository defines persistence operations for the course aggregate.
// Each course document is the unit of atomicity; concurrent edits to the same
// course are last-write-wins at the document level.
type CourseRepository interface {
	Insert(ctx context.Context, course *domain.Course) (*domain.Course, error)
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	// Replace overwrites the stored document with the given aggregate.
	Replace(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id string) error
	// List returns the summary projection of all courses, newest-created first.
	List(ctx context.Context) ([]domain.CourseSummary, error)
	// FindByIDs returns summaries for the given course ids, newest first.
	FindByIDs(ctx context.Context, ids []string) ([]domain.CourseSummary, error)
	// Search runs a full-text match against title and description.
	Search(ctx context.Context, query string) ([]domain.CourseSummary, error)
}

// VideoRepository covers the legacy flat-video collection that predates the
// nested lesson model. Only the delete cascade on course removal remains.
type VideoRepository interface {
	DeleteByCourseID(ctx context.Context, courseID string) (int64, error)
}
