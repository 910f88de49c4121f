package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillforge/lms-platform/internal/api/metrics"
	"github.com/skillforge/lms-platform/internal/core/domain"
	"github.com/skillforge/lms-platform/internal/core/ports"
)

// ProgressService keeps the per-user per-course completion ledger. It is
// independent of the course aggregate's own shape: total lesson counts are
// walked from the course at read time, never cached on the progress record.
type ProgressService struct {
	users   ports.UserRepository
	courses ports.CourseRepository
	log     zerolog.Logger
}

func NewProgressService(users ports.UserRepository, courses ports.CourseRepository, log zerolog.Logger) *ProgressService {
	return &ProgressService{users: users, courses: courses, log: log}
}

func (s *ProgressService) Enroll(ctx context.Context, userID, courseID string) error {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if _, enrolled := user.ProgressFor(courseID); enrolled {
		return domain.ErrAlreadyEnrolled
	}

	progress := domain.Progress{
		CourseID:         courseID,
		CompletedLessons: []string{},
		LastAccessed:     time.Now().UTC(),
	}
	if err := s.users.AddProgress(ctx, userID, progress); err != nil {
		return err
	}

	metrics.EnrollmentsTotal.Inc()
	s.log.Info().Str("user_id", userID).Str("course_id", courseID).Msg("enrolled in course")
	return nil
}

// RecordCompletion adds a lesson to the user's completed set. Completing the
// same lesson twice leaves the set unchanged.
func (s *ProgressService) RecordCompletion(ctx context.Context, userID, courseID, lessonID string) error {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return err
	}
	if _, ok := course.FindLesson(lessonID); !ok {
		return domain.ErrLessonNotFound
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if _, enrolled := user.ProgressFor(courseID); !enrolled {
		return domain.ErrNotEnrolled
	}

	if err := s.users.CompleteLesson(ctx, userID, courseID, lessonID, time.Now().UTC()); err != nil {
		return err
	}

	metrics.LessonsCompletedTotal.Inc()
	return nil
}

func (s *ProgressService) GetProgress(ctx context.Context, userID, courseID string) (*ports.ProgressResult, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := course.TotalLessons()
	result := &ports.ProgressResult{CompletedLessons: []string{}, TotalLessons: total}

	progress, enrolled := user.ProgressFor(courseID)
	if enrolled && len(progress.CompletedLessons) > 0 {
		result.CompletedLessons = append(result.CompletedLessons, progress.CompletedLessons...)
	}
	if total > 0 {
		result.Ratio = float64(len(result.CompletedLessons)) / float64(total)
	}
	return result, nil
}

func (s *ProgressService) EnrolledCourses(ctx context.Context, userID string) ([]domain.CourseSummary, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(user.Progress))
	for _, p := range user.Progress {
		ids = append(ids, p.CourseID)
	}
	if len(ids) == 0 {
		return []domain.CourseSummary{}, nil
	}
	return s.courses.FindByIDs(ctx, ids)
}
