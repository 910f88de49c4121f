package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillforge/lms-platform/internal/core/ports"
)

// ProgressHandler handles enrollment and completion tracking.
type ProgressHandler struct {
	service ports.ProgressService
}

func NewProgressHandler(service ports.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

// Enroll handles POST /courses/:courseId/enroll.
//
// @Summary      Enroll the authenticated user in a course
// @Tags         progress
// @Produce      json
// @Security     BearerAuth
// @Param        courseId  path      string  true  "Course id"
// @Success      200       {object}  messageResponse
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /courses/{courseId}/enroll [post]
func (h *ProgressHandler) Enroll(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Enroll(c.Request().Context(), user.ID, c.Param("courseId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Successfully enrolled in course"})
}

// Complete handles POST /courses/:courseId/lesson/:lessonId/complete.
// Completing an already-completed lesson is a no-op.
//
// @Summary      Record completion of a lesson
// @Tags         progress
// @Produce      json
// @Security     BearerAuth
// @Param        courseId  path      string  true  "Course id"
// @Param        lessonId  path      string  true  "Lesson id"
// @Success      200       {object}  messageResponse
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /courses/{courseId}/lesson/{lessonId}/complete [post]
func (h *ProgressHandler) Complete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.RecordCompletion(c.Request().Context(), user.ID, c.Param("courseId"), c.Param("lessonId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Lesson marked as completed"})
}

// GetProgress handles GET /courses/:courseId/progress.
//
// @Summary      Get the authenticated user's progress in a course
// @Tags         progress
// @Produce      json
// @Security     BearerAuth
// @Param        courseId  path      string  true  "Course id"
// @Success      200       {object}  progressResponse
// @Failure      404       {object}  map[string]string
// @Router       /courses/{courseId}/progress [get]
func (h *ProgressHandler) GetProgress(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	result, err := h.service.GetProgress(c.Request().Context(), user.ID, c.Param("courseId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, progressResponse{
		CompletedLessons: result.CompletedLessons,
		TotalLessons:     result.TotalLessons,
		Progress:         result.Ratio,
	})
}

// Enrolled handles GET /courses/enrolled.
//
// @Summary      List courses the authenticated user is enrolled in
// @Tags         progress
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse
// @Router       /courses/enrolled [get]
func (h *ProgressHandler) Enrolled(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	courses, err := h.service.EnrolledCourses(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(courses))
}
