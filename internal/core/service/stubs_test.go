package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/skillforge/lms-platform/internal/core/domain"
)

// --- user repository stub ---

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Progress = make([]domain.Progress, len(u.Progress))
	for i, p := range u.Progress {
		clone.Progress[i] = p
		clone.Progress[i].CompletedLessons = append([]string{}, p.CompletedLessons...)
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	clone := cloneUser(user)
	if clone.ID == "" {
		r.nextID++
		clone.ID = fmt.Sprintf("user_%d", r.nextID)
	}
	r.users[clone.ID] = cloneUser(clone)
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateSubscription(_ context.Context, userID string, sub domain.Subscription) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Subscription = sub
	return nil
}

func (r *stubUserRepo) AddProgress(_ context.Context, userID string, progress domain.Progress) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Progress = append(u.Progress, progress)
	return nil
}

func (r *stubUserRepo) CompleteLesson(_ context.Context, userID, courseID, lessonID string, accessedAt time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for i := range u.Progress {
		if u.Progress[i].CourseID != courseID {
			continue
		}
		for _, done := range u.Progress[i].CompletedLessons {
			if done == lessonID {
				u.Progress[i].LastAccessed = accessedAt
				return nil
			}
		}
		u.Progress[i].CompletedLessons = append(u.Progress[i].CompletedLessons, lessonID)
		u.Progress[i].LastAccessed = accessedAt
		return nil
	}
	return domain.ErrNotEnrolled
}

// --- device repository stub ---

type stubDeviceRepo struct {
	devices []domain.Device
}

func (r *stubDeviceRepo) CountActive(_ context.Context, userID string) (int, error) {
	n := 0
	for _, d := range r.devices {
		if d.UserID == userID && d.Active {
			n++
		}
	}
	return n, nil
}

func (r *stubDeviceRepo) FindByDeviceID(_ context.Context, userID, deviceID string) (*domain.Device, error) {
	for i := range r.devices {
		if r.devices[i].UserID == userID && r.devices[i].DeviceID == deviceID {
			d := r.devices[i]
			return &d, nil
		}
	}
	return nil, domain.ErrDeviceNotFound
}

func (r *stubDeviceRepo) Upsert(_ context.Context, device *domain.Device) error {
	for i := range r.devices {
		if r.devices[i].UserID == device.UserID && r.devices[i].DeviceID == device.DeviceID {
			r.devices[i].Name = device.Name
			r.devices[i].Active = true
			r.devices[i].LastSeen = device.LastSeen
			return nil
		}
	}
	d := *device
	d.ID = fmt.Sprintf("dev_%d", len(r.devices)+1)
	r.devices = append(r.devices, d)
	return nil
}

func (r *stubDeviceRepo) ListByUser(_ context.Context, userID string) ([]domain.Device, error) {
	out := []domain.Device{}
	for _, d := range r.devices {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *stubDeviceRepo) Deactivate(_ context.Context, userID, deviceID string) error {
	for i := range r.devices {
		if r.devices[i].UserID == userID && r.devices[i].DeviceID == deviceID {
			r.devices[i].Active = false
			return nil
		}
	}
	return domain.ErrDeviceNotFound
}

// --- course repository stub ---

type stubCourseRepo struct {
	courses map[string]*domain.Course
	nextID  int
}

func newStubCourseRepo() *stubCourseRepo {
	return &stubCourseRepo{courses: make(map[string]*domain.Course)}
}

func cloneCourse(c *domain.Course) *domain.Course {
	clone := *c
	clone.Modules = make([]domain.Module, len(c.Modules))
	for i, m := range c.Modules {
		clone.Modules[i] = m
		clone.Modules[i].Lessons = append([]domain.Lesson{}, m.Lessons...)
	}
	return &clone
}

func summaryOf(c *domain.Course) domain.CourseSummary {
	return domain.CourseSummary{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Thumbnail:   c.Thumbnail,
		Category:    c.Category,
		Tags:        c.Tags,
		Skills:      c.Skills,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
	}
}

func (r *stubCourseRepo) Insert(_ context.Context, course *domain.Course) (*domain.Course, error) {
	clone := cloneCourse(course)
	if clone.ID == "" {
		r.nextID++
		clone.ID = fmt.Sprintf("course_%d", r.nextID)
	}
	r.courses[clone.ID] = cloneCourse(clone)
	return clone, nil
}

func (r *stubCourseRepo) FindByID(_ context.Context, id string) (*domain.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	return cloneCourse(c), nil
}

func (r *stubCourseRepo) Replace(_ context.Context, course *domain.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return domain.ErrCourseNotFound
	}
	r.courses[course.ID] = cloneCourse(course)
	return nil
}

func (r *stubCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.courses[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *stubCourseRepo) sortedSummaries(filter func(*domain.Course) bool) []domain.CourseSummary {
	out := []domain.CourseSummary{}
	for _, c := range r.courses {
		if filter == nil || filter(c) {
			out = append(out, summaryOf(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *stubCourseRepo) List(_ context.Context) ([]domain.CourseSummary, error) {
	return r.sortedSummaries(nil), nil
}

func (r *stubCourseRepo) FindByIDs(_ context.Context, ids []string) ([]domain.CourseSummary, error) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	return r.sortedSummaries(func(c *domain.Course) bool {
		_, ok := wanted[c.ID]
		return ok
	}), nil
}

func (r *stubCourseRepo) Search(_ context.Context, query string) ([]domain.CourseSummary, error) {
	return r.sortedSummaries(func(c *domain.Course) bool {
		return strings.Contains(c.Title, query) || strings.Contains(c.Description, query)
	}), nil
}

// --- legacy video repository stub ---

type stubVideoRepo struct {
	byCourse map[string]int64
	deleted  []string
}

func newStubVideoRepo() *stubVideoRepo {
	return &stubVideoRepo{byCourse: make(map[string]int64)}
}

func (r *stubVideoRepo) DeleteByCourseID(_ context.Context, courseID string) (int64, error) {
	n := r.byCourse[courseID]
	delete(r.byCourse, courseID)
	r.deleted = append(r.deleted, courseID)
	return n, nil
}

// --- summary cache stub ---

type stubCache struct {
	stored        []domain.CourseSummary
	hasValue      bool
	invalidations int
}

func (c *stubCache) Get(_ context.Context) ([]domain.CourseSummary, bool, error) {
	if !c.hasValue {
		return nil, false, nil
	}
	return c.stored, true, nil
}

func (c *stubCache) Set(_ context.Context, summaries []domain.CourseSummary) error {
	c.stored = summaries
	c.hasValue = true
	return nil
}

func (c *stubCache) Invalidate(_ context.Context) error {
	c.stored = nil
	c.hasValue = false
	c.invalidations++
	return nil
}

// --- media resolver stub ---

type stubResolver struct{}

func (stubResolver) ResolveVideoURL(rawURL, viewerEmail string) string {
	if viewerEmail == "" {
		return rawURL
	}
	return rawURL + "?watermark=" + viewerEmail
}

// --- payment gateway stub ---

type stubGateway struct {
	orders []string
}

func (g *stubGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (string, error) {
	id := fmt.Sprintf("order_%d", len(g.orders)+1)
	g.orders = append(g.orders, id)
	return id, nil
}

func (g *stubGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return signature == "valid-signature"
}

func (g *stubGateway) KeyID() string { return "rzp_test_key" }
