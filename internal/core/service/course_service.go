package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillforge/lms-platform/internal/api/metrics"
	"github.com/skillforge/lms-platform/internal/core/domain"
	"github.com/skillforge/lms-platform/internal/core/ports"
)

// SummaryCache abstracts the course-listing cache (Redis). A miss or cache
// failure is never fatal; the service falls through to the repository.
type SummaryCache interface {
	Get(ctx context.Context) ([]domain.CourseSummary, bool, error)
	Set(ctx context.Context, summaries []domain.CourseSummary) error
	Invalidate(ctx context.Context) error
}

// CourseService enforces the nested-aggregate invariants on write and serves
// reads with deterministic ordering.
type CourseService struct {
	courses ports.CourseRepository
	videos  ports.VideoRepository
	media   ports.MediaResolver
	cache   SummaryCache
	log     zerolog.Logger
}

func NewCourseService(
	courses ports.CourseRepository,
	videos ports.VideoRepository,
	media ports.MediaResolver,
	cache SummaryCache,
	log zerolog.Logger,
) *CourseService {
	return &CourseService{courses: courses, videos: videos, media: media, cache: cache, log: log}
}

func (s *CourseService) Create(ctx context.Context, input ports.CreateCourseInput) (*domain.Course, error) {
	var issues []string
	if input.Title == "" {
		issues = append(issues, "title is required")
	}
	if input.Description == "" {
		issues = append(issues, "description is required")
	}
	if input.Thumbnail == "" {
		issues = append(issues, "thumbnail is required")
	}
	if len(issues) > 0 {
		return nil, &domain.ValidationError{Issues: issues}
	}

	now := time.Now().UTC()
	course := &domain.Course{
		Title:       input.Title,
		Description: input.Description,
		Thumbnail:   input.Thumbnail,
		Category:    input.Category,
		Tags:        dedupStrings(input.Tags),
		Skills:      dedupStrings(input.Skills),
		Status:      domain.StatusDraft,
		Modules:     toModules(input.Modules),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	course.Renumber()

	created, err := s.courses.Insert(ctx, course)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create course")
		return nil, err
	}

	s.invalidateCache(ctx)
	metrics.CourseMutationsTotal.WithLabelValues("create").Inc()
	s.log.Info().Str("course_id", created.ID).Str("title", created.Title).Msg("course created")
	return created, nil
}

// Update applies only the fields present in patch. A supplied module tree
// replaces the stored one wholesale; order values are then rederived from
// array position at both levels, never trusted from input.
func (s *CourseService) Update(ctx context.Context, courseID string, patch ports.UpdateCourseInput) (*domain.Course, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		course.Title = *patch.Title
	}
	if patch.Description != nil {
		course.Description = *patch.Description
	}
	if patch.Thumbnail != nil {
		course.Thumbnail = *patch.Thumbnail
	}
	if patch.Category != nil {
		course.Category = *patch.Category
	}
	if patch.Tags != nil {
		course.Tags = dedupStrings(*patch.Tags)
	}
	if patch.Skills != nil {
		course.Skills = dedupStrings(*patch.Skills)
	}
	if patch.Modules != nil {
		course.Modules = toModules(*patch.Modules)
		course.Renumber()
	}
	course.UpdatedAt = time.Now().UTC()

	if err := s.courses.Replace(ctx, course); err != nil {
		s.log.Error().Err(err).Str("course_id", courseID).Msg("failed to update course")
		return nil, err
	}

	s.invalidateCache(ctx)
	metrics.CourseMutationsTotal.WithLabelValues("update").Inc()
	s.log.Info().Str("course_id", courseID).Msg("course updated")
	course.SortByOrder()
	return course, nil
}

// Remove deletes the course and cascades deletion of legacy standalone video
// records associated by course id. Both shapes must be checked.
func (s *CourseService) Remove(ctx context.Context, courseID string) error {
	if err := s.courses.Delete(ctx, courseID); err != nil {
		return err
	}

	removed, err := s.videos.DeleteByCourseID(ctx, courseID)
	if err != nil {
		s.log.Warn().Err(err).Str("course_id", courseID).Msg("failed to cascade legacy video records")
	} else if removed > 0 {
		s.log.Info().Str("course_id", courseID).Int64("videos", removed).Msg("cascaded legacy video records")
	}

	s.invalidateCache(ctx)
	metrics.CourseMutationsTotal.WithLabelValues("delete").Inc()
	s.log.Info().Str("course_id", courseID).Msg("course deleted")
	return nil
}

func (s *CourseService) Get(ctx context.Context, courseID string) (*domain.Course, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	course.SortByOrder()
	return course, nil
}

func (s *CourseService) List(ctx context.Context) ([]domain.CourseSummary, error) {
	if cached, ok, err := s.cache.Get(ctx); err != nil {
		s.log.Warn().Err(err).Msg("course cache read failed, falling through")
	} else if ok {
		return cached, nil
	}

	summaries, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, summaries); err != nil {
		s.log.Warn().Err(err).Msg("course cache write failed")
	}
	return summaries, nil
}

func (s *CourseService) Search(ctx context.Context, query string) ([]domain.CourseSummary, error) {
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	return s.courses.Search(ctx, query)
}

// Publish validates publish-readiness and flips the course to published. All
// violations are reported together, not just the first.
func (s *CourseService) Publish(ctx context.Context, courseID string) (*domain.Course, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if issues := course.PublishIssues(); len(issues) > 0 {
		return nil, &domain.ValidationError{Issues: issues}
	}

	course.Status = domain.StatusPublished
	course.UpdatedAt = time.Now().UTC()
	if err := s.courses.Replace(ctx, course); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	metrics.CourseMutationsTotal.WithLabelValues("publish").Inc()
	s.log.Info().Str("course_id", courseID).Msg("course published")
	return course, nil
}

// GetLesson locates a lesson anywhere in the course's module tree. Video
// content is withheld for viewers without an active subscription unless the
// lesson is a preview; visible content is watermarked for the viewer.
func (s *CourseService) GetLesson(ctx context.Context, input ports.GetLessonInput) (*domain.Lesson, error) {
	course, err := s.courses.FindByID(ctx, input.CourseID)
	if err != nil {
		return nil, err
	}

	found, ok := course.FindLesson(input.LessonID)
	if !ok {
		return nil, domain.ErrLessonNotFound
	}

	lesson := *found
	if !input.HasSubscription && !lesson.IsPreview {
		lesson.Content.VideoURL = ""
		return &lesson, nil
	}

	if lesson.Content.VideoURL != "" {
		lesson.Content.VideoURL = s.media.ResolveVideoURL(lesson.Content.VideoURL, input.ViewerEmail)
	}
	return &lesson, nil
}

func (s *CourseService) invalidateCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("course cache invalidation failed")
	}
}

// toModules maps the submitted tree onto domain types, assigning identifiers
// to new modules and lessons. Supplied order values are dropped here; the
// caller renumbers from array position.
func toModules(inputs []ports.ModuleInput) []domain.Module {
	modules := make([]domain.Module, 0, len(inputs))
	for _, mi := range inputs {
		m := domain.Module{
			ID:          mi.ID,
			Title:       mi.Title,
			Description: mi.Description,
			Lessons:     make([]domain.Lesson, 0, len(mi.Lessons)),
		}
		if m.ID == "" {
			m.ID = newEntityID()
		}
		for _, li := range mi.Lessons {
			l := domain.Lesson{
				ID:          li.ID,
				Title:       li.Title,
				Description: li.Description,
				Type:        li.Type,
				Content:     domain.LessonContent{VideoURL: li.Content.VideoURL},
				IsPreview:   li.IsPreview,
			}
			if l.ID == "" {
				l.ID = newEntityID()
			}
			m.Lessons = append(m.Lessons, l)
		}
		modules = append(modules, m)
	}
	return modules
}

// newEntityID returns a random 24-hex-char identifier for embedded documents.
func newEntityID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().UTC().Format("060102150405.000")))[:24]
	}
	return hex.EncodeToString(b)
}

func dedupStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok || s == "" {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
