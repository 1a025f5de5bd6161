package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appsembler/figures-backend/internal/logger"
	"github.com/appsembler/figures-backend/internal/repos"
	"github.com/appsembler/figures-backend/internal/types"
)

// CoursesIndexHandler lists courses with abbreviated details. No
// pagination: full result sets are returned.
type CoursesIndexHandler struct {
	log        *logger.Logger
	courseRepo repos.CourseOverviewRepo
}

func NewCoursesIndexHandler(log *logger.Logger, courseRepo repos.CourseOverviewRepo) *CoursesIndexHandler {
	return &CoursesIndexHandler{
		log:        log.With("handler", "CoursesIndexHandler"),
		courseRepo: courseRepo,
	}
}

type courseIndexItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Org    string `json:"org"`
	Number string `json:"number"`
}

var courseIndexFilters = []FilterField{
	{Param: "org", Column: "org", Op: FilterExact},
	{Param: "name", Column: "display_name", Op: FilterIContains},
	{Param: "description", Column: "short_description", Op: FilterIContains},
	{Param: "enrollment_start_after", Column: "enrollment_start", Op: FilterDateFrom},
	{Param: "enrollment_end_before", Column: "enrollment_end", Op: FilterDateTo},
	{Param: "start_after", Column: "start", Op: FilterDateFrom},
	{Param: "end_before", Column: "\"end\"", Op: FilterDateTo},
}

func (h *CoursesIndexHandler) List(c *gin.Context) {
	scopes, err := FilterScopes(c, courseIndexFilters)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_filter", err)
		return
	}

	courses, err := h.courseRepo.List(c.Request.Context(), nil, scopes...)
	if err != nil {
		h.log.Error("List courses failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_courses_failed", err)
		return
	}

	items := make([]courseIndexItem, 0, len(courses))
	for _, course := range courses {
		items = append(items, courseIndexItemFrom(course))
	}
	RespondOK(c, items)
}

func courseIndexItemFrom(course *types.CourseOverview) courseIndexItem {
	return courseIndexItem{
		ID:     course.ID,
		Name:   course.DisplayName,
		Org:    course.Org,
		Number: course.Number,
	}
}
