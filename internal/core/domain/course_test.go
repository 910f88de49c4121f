package domain

import (
	"strings"
	"testing"
)

func TestCourse_Renumber_IgnoresSuppliedOrders(t *testing.T) {
	course := Course{
		Modules: []Module{
			{ID: "m1", Lessons: []Lesson{
				{ID: "l1", Order: 5},
				{ID: "l2", Order: 9},
			}},
			{ID: "m2", Lessons: []Lesson{
				{ID: "l3", Order: 2},
			}},
		},
	}

	course.Renumber()

	if course.Modules[0].Order != 1 || course.Modules[1].Order != 2 {
		t.Fatalf("module orders: %d, %d", course.Modules[0].Order, course.Modules[1].Order)
	}
	if got := course.Modules[0].Lessons; got[0].Order != 1 || got[1].Order != 2 {
		t.Fatalf("first module lesson orders: %d, %d", got[0].Order, got[1].Order)
	}
	if course.Modules[1].Lessons[0].Order != 1 {
		t.Fatalf("second module lesson order: %d", course.Modules[1].Lessons[0].Order)
	}
}

func TestCourse_Renumber_DefaultsLessonType(t *testing.T) {
	course := Course{
		Modules: []Module{
			{Lessons: []Lesson{{ID: "l1"}, {ID: "l2", Type: "video"}}},
		},
	}

	course.Renumber()

	for _, l := range course.Modules[0].Lessons {
		if l.Type != LessonTypeVideo {
			t.Fatalf("lesson %s type = %q", l.ID, l.Type)
		}
	}
}

func TestCourse_SortByOrder(t *testing.T) {
	course := Course{
		Modules: []Module{
			{ID: "m3", Order: 3},
			{ID: "m1", Order: 1, Lessons: []Lesson{
				{ID: "l2", Order: 2},
				{ID: "l1", Order: 1},
			}},
			{ID: "m2", Order: 2},
		},
	}

	course.SortByOrder()

	want := []string{"m1", "m2", "m3"}
	for i, id := range want {
		if course.Modules[i].ID != id {
			t.Fatalf("module %d = %s, want %s", i, course.Modules[i].ID, id)
		}
	}
	if course.Modules[0].Lessons[0].ID != "l1" {
		t.Fatalf("lessons not sorted within module")
	}
}

func TestCourse_FindLesson(t *testing.T) {
	course := Course{
		Modules: []Module{
			{ID: "m1", Lessons: []Lesson{{ID: "l1"}}},
			{ID: "m2", Lessons: []Lesson{{ID: "l2"}, {ID: "l3"}}},
		},
	}

	lesson, ok := course.FindLesson("l3")
	if !ok || lesson.ID != "l3" {
		t.Fatalf("FindLesson(l3) = %v, %v", lesson, ok)
	}
	if _, ok := course.FindLesson("nope"); ok {
		t.Fatalf("expected miss for unknown lesson")
	}
}

func TestCourse_TotalLessons(t *testing.T) {
	course := Course{
		Modules: []Module{
			{Lessons: []Lesson{{}, {}}},
			{Lessons: []Lesson{{}}},
			{},
		},
	}
	if got := course.TotalLessons(); got != 3 {
		t.Fatalf("TotalLessons = %d", got)
	}
}

func TestCourse_PublishIssues_Collected(t *testing.T) {
	course := Course{
		Title:       "Incomplete Course",
		Description: "In progress",
		// no thumbnail
		Modules: []Module{
			{Title: "Intro", Description: "Welcome"}, // no lessons
		},
	}

	issues := course.PublishIssues()
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", issues)
	}
	if !strings.Contains(issues[0], "thumbnail") {
		t.Fatalf("expected thumbnail issue first, got %q", issues[0])
	}
	if !strings.Contains(issues[1], "Intro") {
		t.Fatalf("expected module named in issue, got %q", issues[1])
	}
}

func TestCourse_PublishIssues_UntitledFallsBackToPosition(t *testing.T) {
	course := Course{
		Title:       "c",
		Description: "d",
		Thumbnail:   "t",
		Modules: []Module{
			{Description: "only description", Lessons: []Lesson{
				{Title: "L", Description: "ld", Content: LessonContent{VideoURL: "u"}},
			}},
		},
	}

	issues := course.PublishIssues()
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %v", issues)
	}
	if !strings.Contains(issues[0], "#1") {
		t.Fatalf("expected positional label, got %q", issues[0])
	}
}

func TestCourse_PublishIssues_Ready(t *testing.T) {
	course := Course{
		Title:       "Go Fundamentals",
		Description: "d",
		Thumbnail:   "t",
		Modules: []Module{
			{Title: "Basics", Description: "md", Lessons: []Lesson{
				{Title: "Hello", Description: "ld", Content: LessonContent{VideoURL: "u"}},
			}},
		},
	}
	if issues := course.PublishIssues(); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}
