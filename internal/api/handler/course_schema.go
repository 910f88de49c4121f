package handler

// dataResponse is the standard success envelope.
type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func envelope(data any) dataResponse {
	return dataResponse{Success: true, Data: data}
}

// messageResponse is used for mutations whose only payload is a confirmation.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

// lessonContentRequest is the type-keyed lesson payload. Only video content
// exists today.
type lessonContentRequest struct {
	VideoURL string `json:"videoUrl"`
}

// lessonRequest accepts an order field for compatibility with older clients,
// but the server always rederives order from array position.
type lessonRequest struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"       validate:"required"`
	Description string               `json:"description"`
	Type        string               `json:"type"        validate:"omitempty,oneof=video"`
	Content     lessonContentRequest `json:"content"`
	Order       int                  `json:"order"`
	IsPreview   bool                 `json:"isPreview"`
}

type moduleRequest struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"       validate:"required"`
	Description string          `json:"description"`
	Order       int             `json:"order"`
	Lessons     []lessonRequest `json:"lessons"     validate:"dive"`
}

type createCourseRequest struct {
	Title       string          `json:"title"       validate:"required"`
	Description string          `json:"description" validate:"required"`
	Thumbnail   string          `json:"thumbnail"   validate:"required"`
	Category    string          `json:"category"`
	Tags        []string        `json:"tags"`
	Skills      []string        `json:"skills"`
	Modules     []moduleRequest `json:"modules"     validate:"dive"`
}

// updateCourseRequest is a partial patch: absent fields stay nil and are left
// untouched by the service, distinguishing "not sent" from "set to empty".
type updateCourseRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Thumbnail   *string          `json:"thumbnail"`
	Category    *string          `json:"category"`
	Tags        *[]string        `json:"tags"`
	Skills      *[]string        `json:"skills"`
	Modules     *[]moduleRequest `json:"modules" validate:"omitempty,dive"`
}

// --- Response types ---

type progressResponse struct {
	CompletedLessons []string `json:"completedLessons"`
	TotalLessons     int      `json:"totalLessons"`
	Progress         float64  `json:"progress"`
}
