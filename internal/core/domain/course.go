package domain

import (
	"fmt"
	"sort"
	"time"
)

// CourseStatus represents the publication state of a course.
type CourseStatus string

const (
	StatusDraft     CourseStatus = "draft"
	StatusPublished CourseStatus = "published"
)

// LessonTypeVideo is the only lesson type currently supported.
const LessonTypeVideo = "video"

// LessonContent is the type-keyed payload of a lesson. For "video" lessons
// VideoURL holds the stored media reference.
type LessonContent struct {
	VideoURL string `json:"videoUrl,omitempty" bson:"video_url,omitempty"`
}

// Lesson is the smallest unit of course content. Order is 1-based and dense
// within its parent module; it is always derived from array position on write,
// never trusted from input.
type Lesson struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description" bson:"description"`
	Type        string        `json:"type" bson:"type"`
	Content     LessonContent `json:"content" bson:"content"`
	Order       int           `json:"order" bson:"order"`
	IsPreview   bool          `json:"isPreview" bson:"is_preview"`
}

// Module groups lessons. Order is 1-based and dense within its parent course.
type Module struct {
	ID          string   `json:"id" bson:"_id,omitempty"`
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Order       int      `json:"order" bson:"order"`
	Lessons     []Lesson `json:"lessons" bson:"lessons"`
}

// Course is the aggregate root. It exclusively owns its modules and lessons:
// deleting a course deletes the whole nested tree as a unit.
type Course struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description" bson:"description"`
	Thumbnail   string       `json:"thumbnail" bson:"thumbnail"`
	Category    string       `json:"category,omitempty" bson:"category,omitempty"`
	Tags        []string     `json:"tags" bson:"tags"`
	Skills      []string     `json:"skills" bson:"skills"`
	Status      CourseStatus `json:"status" bson:"status"`
	Modules     []Module     `json:"modules" bson:"modules"`
	CreatedAt   time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updated_at"`
}

// CourseSummary is the listing projection: a course without its module tree.
type CourseSummary struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description" bson:"description"`
	Thumbnail   string       `json:"thumbnail" bson:"thumbnail"`
	Category    string       `json:"category,omitempty" bson:"category,omitempty"`
	Tags        []string     `json:"tags" bson:"tags"`
	Skills      []string     `json:"skills" bson:"skills"`
	Status      CourseStatus `json:"status" bson:"status"`
	CreatedAt   time.Time    `json:"createdAt" bson:"created_at"`
}

// Renumber rewrites every module's order to 1..N in array position and every
// lesson's order to 1..M within its module, discarding whatever order values
// the caller supplied. Lesson types default to "video" when unset.
func (c *Course) Renumber() {
	for i := range c.Modules {
		c.Modules[i].Order = i + 1
		for j := range c.Modules[i].Lessons {
			c.Modules[i].Lessons[j].Order = j + 1
			if c.Modules[i].Lessons[j].Type == "" {
				c.Modules[i].Lessons[j].Type = LessonTypeVideo
			}
		}
	}
}

// SortByOrder sorts modules and their lessons by ascending order. Reads always
// reapply the sort rather than assuming documents were persisted in order.
func (c *Course) SortByOrder() {
	sort.SliceStable(c.Modules, func(i, j int) bool {
		return c.Modules[i].Order < c.Modules[j].Order
	})
	for i := range c.Modules {
		ls := c.Modules[i].Lessons
		sort.SliceStable(ls, func(a, b int) bool { return ls[a].Order < ls[b].Order })
	}
}

// FindLesson walks the module tree looking for a lesson by id.
func (c *Course) FindLesson(lessonID string) (*Lesson, bool) {
	for i := range c.Modules {
		for j := range c.Modules[i].Lessons {
			if c.Modules[i].Lessons[j].ID == lessonID {
				return &c.Modules[i].Lessons[j], true
			}
		}
	}
	return nil, false
}

// TotalLessons counts lessons across all modules.
func (c *Course) TotalLessons() int {
	n := 0
	for i := range c.Modules {
		n += len(c.Modules[i].Lessons)
	}
	return n
}

// PublishIssues checks publish-readiness and returns every violation as a
// human-readable message. An empty slice means the course can be published.
// Violations are collected, not fail-fast.
func (c *Course) PublishIssues() []string {
	var issues []string
	if c.Title == "" {
		issues = append(issues, "course title is required")
	}
	if c.Description == "" {
		issues = append(issues, "course description is required")
	}
	if c.Thumbnail == "" {
		issues = append(issues, "course thumbnail is required")
	}
	if len(c.Modules) == 0 {
		issues = append(issues, "course must have at least one module")
	}
	for i, m := range c.Modules {
		label := m.Title
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
			issues = append(issues, fmt.Sprintf("module %s: title is required", label))
		}
		if m.Description == "" {
			issues = append(issues, fmt.Sprintf("module %s: description is required", label))
		}
		if len(m.Lessons) == 0 {
			issues = append(issues, fmt.Sprintf("module %s: must have at least one lesson", label))
		}
		for j, l := range m.Lessons {
			lessonLabel := l.Title
			if lessonLabel == "" {
				lessonLabel = fmt.Sprintf("#%d", j+1)
				issues = append(issues, fmt.Sprintf("module %s, lesson %s: title is required", label, lessonLabel))
			}
			if l.Description == "" {
				issues = append(issues, fmt.Sprintf("module %s, lesson %s: description is required", label, lessonLabel))
			}
			if l.Content.VideoURL == "" {
				issues = append(issues, fmt.Sprintf("module %s, lesson %s: video content is required", label, lessonLabel))
			}
		}
	}
	return issues
}
