package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillforge/lms-platform/internal/core/domain"
	"github.com/skillforge/lms-platform/internal/core/ports"
)

// CourseHandler handles HTTP requests for the course aggregate.
type CourseHandler struct {
	service ports.CourseService
}

func NewCourseHandler(service ports.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// List handles GET /courses.
//
// @Summary      List all courses (summary projection, newest first)
// @Tags         courses
// @Produce      json
// @Success      200  {object}  dataResponse
// @Router       /courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	summaries, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(summaries))
}

// Search handles GET /courses/search?query=.
//
// @Summary      Full-text search over course titles and descriptions
// @Tags         courses
// @Produce      json
// @Param        query  query     string  true  "Search terms"
// @Success      200    {object}  dataResponse
// @Failure      400    {object}  map[string]string
// @Router       /courses/search [get]
func (h *CourseHandler) Search(c echo.Context) error {
	results, err := h.service.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(results))
}

// Get handles GET /courses/:id.
//
// @Summary      Get a course with its full module tree
// @Tags         courses
// @Produce      json
// @Param        id   path      string  true  "Course id"
// @Success      200  {object}  dataResponse
// @Failure      404  {object}  map[string]string
// @Router       /courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(course))
}

// Create handles POST /courses (admin).
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCourseRequest  true  "Course draft"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	course, err := h.service.Create(c.Request().Context(), toCreateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, envelope(course))
}

// Update handles PUT /courses/:id (admin). Only fields present in the payload
// are applied; a supplied module tree replaces the stored one and is
// renumbered.
//
// @Summary      Partially update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Course id"
// @Param        body  body      updateCourseRequest  true  "Fields to update"
// @Success      200   {object}  dataResponse
// @Failure      404   {object}  map[string]string
// @Router       /courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	var req updateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	course, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(course))
}

// Delete handles DELETE /courses/:id (admin).
//
// @Summary      Delete a course and its legacy video records
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Course id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	if err := h.service.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Course deleted successfully"})
}

// Publish handles POST /courses/:id/publish (admin). Violations are returned
// as a complete list.
//
// @Summary      Publish a course after validating publish-readiness
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Course id"
// @Success      200  {object}  dataResponse
// @Failure      400  {object}  map[string]string
// @Router       /courses/{id}/publish [post]
func (h *CourseHandler) Publish(c echo.Context) error {
	course, err := h.service.Publish(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(course))
}

// GetLesson handles GET /courses/:courseId/lesson/:lessonId. Auth is
// optional: anonymous viewers only get preview content. The video reference
// is resolved to a watermarked URL for the viewer; non-preview content is
// withheld without an active subscription.
//
// @Summary      Get a lesson with its resolved video URL
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        courseId  path      string  true  "Course id"
// @Param        lessonId  path      string  true  "Lesson id"
// @Success      200       {object}  dataResponse
// @Failure      404       {object}  map[string]string
// @Router       /courses/{courseId}/lesson/{lessonId} [get]
func (h *CourseHandler) GetLesson(c echo.Context) error {
	input := ports.GetLessonInput{
		CourseID: c.Param("courseId"),
		LessonID: c.Param("lessonId"),
	}
	if user := optionalUser(c); user != nil {
		input.ViewerEmail = user.Email
		input.HasSubscription = hasSubscription(c) || user.Role == domain.RoleAdmin
	}
	lesson, err := h.service.GetLesson(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(lesson))
}
