package handler

import (
	"github.com/skillforge/lms-platform/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createCourseRequest) ports.CreateCourseInput {
	return ports.CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Category:    req.Category,
		Tags:        req.Tags,
		Skills:      req.Skills,
		Modules:     toModuleInputs(req.Modules),
	}
}

func toUpdateInput(req updateCourseRequest) ports.UpdateCourseInput {
	patch := ports.UpdateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Category:    req.Category,
		Tags:        req.Tags,
		Skills:      req.Skills,
	}
	if req.Modules != nil {
		modules := toModuleInputs(*req.Modules)
		patch.Modules = &modules
	}
	return patch
}

// toModuleInputs drops caller-supplied order values; ordering is positional.
func toModuleInputs(reqs []moduleRequest) []ports.ModuleInput {
	modules := make([]ports.ModuleInput, 0, len(reqs))
	for _, m := range reqs {
		mi := ports.ModuleInput{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Lessons:     make([]ports.LessonInput, 0, len(m.Lessons)),
		}
		for _, l := range m.Lessons {
			mi.Lessons = append(mi.Lessons, ports.LessonInput{
				ID:          l.ID,
				Title:       l.Title,
				Description: l.Description,
				Type:        l.Type,
				Content:     ports.LessonContentInput{VideoURL: l.Content.VideoURL},
				IsPreview:   l.IsPreview,
			})
		}
		modules = append(modules, mi)
	}
	return modules
}
