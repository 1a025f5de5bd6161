package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/appsembler/figures-backend/internal/logger"
	"github.com/appsembler/figures-backend/internal/repos"
	"github.com/appsembler/figures-backend/internal/types"
	"github.com/appsembler/figures-backend/internal/utils"
)

// CourseDailyMetricsHandler exposes CRUD over per-course daily metrics
// rows. Normal operation writes these through the pipeline; the write
// endpoints exist for admin correction and backfill.
type CourseDailyMetricsHandler struct {
	log         *logger.Logger
	metricsRepo repos.CourseDailyMetricsRepo
}

func NewCourseDailyMetricsHandler(log *logger.Logger, metricsRepo repos.CourseDailyMetricsRepo) *CourseDailyMetricsHandler {
	return &CourseDailyMetricsHandler{
		log:         log.With("handler", "CourseDailyMetricsHandler"),
		metricsRepo: metricsRepo,
	}
}

var courseDailyMetricsFilters = []FilterField{
	{Param: "course_id", Column: "course_id", Op: FilterExact},
	{Param: "date_for", Column: "date_for", Op: FilterDateExact},
	{Param: "date_from", Column: "date_for", Op: FilterDateFrom},
	{Param: "date_to", Column: "date_for", Op: FilterDateTo},
}

type courseDailyMetricsRequest struct {
	SiteID                *uuid.UUID `json:"site_id"`
	CourseID              string     `json:"course_id" binding:"required"`
	DateFor               time.Time  `json:"date_for" binding:"required"`
	EnrollmentCount       int        `json:"enrollment_count"`
	ActiveLearnersToday   int        `json:"active_learners_today"`
	AverageProgress       *float64   `json:"average_progress"`
	AverageDaysToComplete *int       `json:"average_days_to_complete"`
	NumLearnersCompleted  int        `json:"num_learners_completed"`
}

func (req *courseDailyMetricsRequest) validate() error {
	if req.AverageProgress != nil && (*req.AverageProgress < 0 || *req.AverageProgress > 1) {
		return errAverageProgressRange
	}
	return nil
}

var errAverageProgressRange = &validationError{"average_progress must be between 0.00 and 1.00"}

type validationError struct{ msg string }

func (e *validationError) Error() string { return e.msg }

func (h *CourseDailyMetricsHandler) List(c *gin.Context) {
	scopes, err := FilterScopes(c, courseDailyMetricsFilters)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_filter", err)
		return
	}

	rows, err := h.metricsRepo.List(c.Request.Context(), nil, scopes...)
	if err != nil {
		h.log.Error("List course daily metrics failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_metrics_failed", err)
		return
	}
	RespondOK(c, rows)
}

func (h *CourseDailyMetricsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	row, err := h.metricsRepo.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			RespondError(c, http.StatusNotFound, "metrics_not_found", err)
			return
		}
		h.log.Error("Get course daily metrics failed", "metrics_id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, "load_metrics_failed", err)
		return
	}
	RespondOK(c, row)
}

func (h *CourseDailyMetricsHandler) Create(c *gin.Context) {
	var req courseDailyMetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := req.validate(); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	row := &types.CourseDailyMetrics{
		SiteID:                req.SiteID,
		CourseID:              req.CourseID,
		DateFor:               utils.DayOf(req.DateFor),
		EnrollmentCount:       req.EnrollmentCount,
		ActiveLearnersToday:   req.ActiveLearnersToday,
		AverageProgress:       req.AverageProgress,
		AverageDaysToComplete: req.AverageDaysToComplete,
		NumLearnersCompleted:  req.NumLearnersCompleted,
	}
	created, err := h.metricsRepo.Create(c.Request.Context(), nil, row)
	if err != nil {
		h.log.Error("Create course daily metrics failed", "course_id", req.CourseID, "error", err)
		RespondError(c, http.StatusInternalServerError, "create_metrics_failed", err)
		return
	}
	RespondCreated(c, created)
}

func (h *CourseDailyMetricsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	row, err := h.metricsRepo.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			RespondError(c, http.StatusNotFound, "metrics_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "load_metrics_failed", err)
		return
	}

	var req courseDailyMetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := req.validate(); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	row.SiteID = req.SiteID
	row.Site = nil
	row.CourseID = req.CourseID
	row.DateFor = utils.DayOf(req.DateFor)
	row.EnrollmentCount = req.EnrollmentCount
	row.ActiveLearnersToday = req.ActiveLearnersToday
	row.AverageProgress = req.AverageProgress
	row.AverageDaysToComplete = req.AverageDaysToComplete
	row.NumLearnersCompleted = req.NumLearnersCompleted

	if err := h.metricsRepo.Update(c.Request.Context(), nil, row); err != nil {
		h.log.Error("Update course daily metrics failed", "metrics_id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, "update_metrics_failed", err)
		return
	}
	RespondOK(c, row)
}

func (h *CourseDailyMetricsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	if err := h.metricsRepo.DeleteByID(c.Request.Context(), nil, id); err != nil {
		h.log.Error("Delete course daily metrics failed", "metrics_id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, "delete_metrics_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}
