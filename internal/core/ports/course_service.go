package ports

import (
	"context"

	"github.com/skillforge/lms-platform/internal/core/domain"
)

// LessonContentInput carries the type-keyed lesson payload.
type LessonContentInput struct {
	VideoURL string
}

// LessonInput holds one lesson in a submitted module tree. Order is ignored:
// the service derives it from array position.
type LessonInput struct {
	ID          string
	Title       string
	Description string
	Type        string
	Content     LessonContentInput
	IsPreview   bool
}

// ModuleInput holds one module in a submitted module tree. Order is ignored.
type ModuleInput struct {
	ID          string
	Title       string
	Description string
	Lessons     []LessonInput
}

// CreateCourseInput carries all data needed to create a course.
type CreateCourseInput struct {
	Title       string
	Description string
	Thumbnail   string
	Category    string
	Tags        []string
	Skills      []string
	Modules     []ModuleInput
}

// UpdateCourseInput is a partial patch: nil fields are left untouched, not
// nulled. A non-nil Modules replaces the whole nested tree and triggers
// renumbering.
type UpdateCourseInput struct {
	Title       *string
	Description *string
	Thumbnail   *string
	Category    *string
	Tags        *[]string
	Skills      *[]string
	Modules     *[]ModuleInput
}

// GetLessonInput carries the parameters for a lesson read. ViewerEmail drives
// watermarking; HasSubscription drives content gating (preview lessons are
// always visible).
type GetLessonInput struct {
	CourseID        string
	LessonID        string
	ViewerEmail     string
	HasSubscription bool
}

// CourseService defines the use-case operations on the course aggregate.
type CourseService interface {
	Create(ctx context.Context, input CreateCourseInput) (*domain.Course, error)
	Update(ctx context.Context, courseID string, patch UpdateCourseInput) (*domain.Course, error)
	Remove(ctx context.Context, courseID string) error
	Get(ctx context.Context, courseID string) (*domain.Course, error)
	List(ctx context.Context) ([]domain.CourseSummary, error)
	Search(ctx context.Context, query string) ([]domain.CourseSummary, error)
	Publish(ctx context.Context, courseID string) (*domain.Course, error)
	GetLesson(ctx context.Context, input GetLessonInput) (*domain.Lesson, error)
}
