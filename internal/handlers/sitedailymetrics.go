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

// SiteDailyMetricsHandler exposes CRUD over the site-wide daily metrics
// rows, same shape as the course handler.
type SiteDailyMetricsHandler struct {
	log         *logger.Logger
	metricsRepo repos.SiteDailyMetricsRepo
}

func NewSiteDailyMetricsHandler(log *logger.Logger, metricsRepo repos.SiteDailyMetricsRepo) *SiteDailyMetricsHandler {
	return &SiteDailyMetricsHandler{
		log:         log.With("handler", "SiteDailyMetricsHandler"),
		metricsRepo: metricsRepo,
	}
}

var siteDailyMetricsFilters = []FilterField{
	{Param: "site_id", Column: "site_id", Op: FilterExact},
	{Param: "date_for", Column: "date_for", Op: FilterDateExact},
	{Param: "date_from", Column: "date_for", Op: FilterDateFrom},
	{Param: "date_to", Column: "date_for", Op: FilterDateTo},
}

type siteDailyMetricsRequest struct {
	SiteID                    uuid.UUID `json:"site_id" binding:"required"`
	DateFor                   time.Time `json:"date_for" binding:"required"`
	CumulativeActiveUserCount *int      `json:"cumulative_active_user_count"`
	TodaysActiveUserCount     *int      `json:"todays_active_user_count"`
	TotalUserCount            int       `json:"total_user_count"`
	CourseCount               int       `json:"course_count"`
	TotalEnrollmentCount      int       `json:"total_enrollment_count"`
}

func (h *SiteDailyMetricsHandler) List(c *gin.Context) {
	scopes, err := FilterScopes(c, siteDailyMetricsFilters)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_filter", err)
		return
	}

	rows, err := h.metricsRepo.List(c.Request.Context(), nil, scopes...)
	if err != nil {
		h.log.Error("List site daily metrics failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_metrics_failed", err)
		return
	}
	RespondOK(c, rows)
}

func (h *SiteDailyMetricsHandler) Get(c *gin.Context) {
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
		h.log.Error("Get site daily metrics failed", "metrics_id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, "load_metrics_failed", err)
		return
	}
	RespondOK(c, row)
}

func (h *SiteDailyMetricsHandler) Create(c *gin.Context) {
	var req siteDailyMetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	row := &types.SiteDailyMetrics{
		SiteID:                    req.SiteID,
		DateFor:                   utils.DayOf(req.DateFor),
		CumulativeActiveUserCount: req.CumulativeActiveUserCount,
		TodaysActiveUserCount:     req.TodaysActiveUserCount,
		TotalUserCount:            req.TotalUserCount,
		CourseCount:               req.CourseCount,
		TotalEnrollmentCount:      req.TotalEnrollmentCount,
	}
	created, err := h.metricsRepo.Create(c.Request.Context(), nil, row)
	if err != nil {
		h.log.Error("Create site daily metrics failed", "site_id", req.SiteID, "error", err)
		RespondError(c, http.StatusInternalServerError, "create_metrics_failed", err)
		return
	}
	RespondCreated(c, created)
}

func (h *SiteDailyMetricsHandler) Update(c *gin.Context) {
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

	var req siteDailyMetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	row.SiteID = req.SiteID
	row.Site = nil
	row.DateFor = utils.DayOf(req.DateFor)
	row.CumulativeActiveUserCount = req.CumulativeActiveUserCount
	row.TodaysActiveUserCount = req.TodaysActiveUserCount
	row.TotalUserCount = req.TotalUserCount
	row.CourseCount = req.CourseCount
	row.TotalEnrollmentCount = req.TotalEnrollmentCount

	if err := h.metricsRepo.Update(c.Request.Context(), nil, row); err != nil {
		h.log.Error("Update site daily metrics failed", "metrics_id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, "update_metrics_failed", err)
		return
	}
	RespondOK(c, row)
}

func (h *SiteDailyMetricsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	if err := h.metricsRepo.DeleteByID(c.Request.Context(), nil, id); err != nil {
		h.log.Error("Delete site daily metrics failed", "metrics_id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, "delete_metrics_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}
