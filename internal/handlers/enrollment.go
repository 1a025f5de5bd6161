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
)

// CourseEnrollmentHandler exposes CRUD over course enrollment records.
type CourseEnrollmentHandler struct {
	log            *logger.Logger
	enrollmentRepo repos.CourseEnrollmentRepo
}

func NewCourseEnrollmentHandler(log *logger.Logger, enrollmentRepo repos.CourseEnrollmentRepo) *CourseEnrollmentHandler {
	return &CourseEnrollmentHandler{
		log:            log.With("handler", "CourseEnrollmentHandler"),
		enrollmentRepo: enrollmentRepo,
	}
}

var enrollmentFilters = []FilterField{
	{Param: "course_id", Column: "course_id", Op: FilterExact},
	{Param: "user_id", Column: "user_id", Op: FilterExact},
	{Param: "is_active", Column: "is_active", Op: FilterBool},
	{Param: "mode", Column: "mode", Op: FilterExact},
	{Param: "created_after", Column: "created", Op: FilterDateFrom},
	{Param: "created_before", Column: "created", Op: FilterDateTo},
}

type enrollmentRequest struct {
	UserID   uuid.UUID  `json:"user_id" binding:"required"`
	CourseID string     `json:"course_id" binding:"required"`
	Created  *time.Time `json:"created"`
	IsActive *bool      `json:"is_active"`
	Mode     string     `json:"mode"`
}

func (h *CourseEnrollmentHandler) List(c *gin.Context) {
	scopes, err := FilterScopes(c, enrollmentFilters)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_filter", err)
		return
	}

	rows, err := h.enrollmentRepo.List(c.Request.Context(), nil, scopes...)
	if err != nil {
		h.log.Error("List enrollments failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_enrollments_failed", err)
		return
	}
	RespondOK(c, rows)
}

func (h *CourseEnrollmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	row, err := h.enrollmentRepo.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			RespondError(c, http.StatusNotFound, "enrollment_not_found", err)
			return
		}
		h.log.Error("Get enrollment failed", "enrollment_id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, "load_enrollment_failed", err)
		return
	}
	RespondOK(c, row)
}

func (h *CourseEnrollmentHandler) Create(c *gin.Context) {
	var req enrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	row := &types.CourseEnrollment{
		UserID:   req.UserID,
		CourseID: req.CourseID,
		Created:  time.Now().UTC(),
		IsActive: true,
		Mode:     "audit",
	}
	if req.Created != nil {
		row.Created = *req.Created
	}
	if req.IsActive != nil {
		row.IsActive = *req.IsActive
	}
	if req.Mode != "" {
		row.Mode = req.Mode
	}

	created, err := h.enrollmentRepo.Create(c.Request.Context(), nil, row)
	if err != nil {
		h.log.Error("Create enrollment failed", "course_id", req.CourseID, "error", err)
		RespondError(c, http.StatusInternalServerError, "create_enrollment_failed", err)
		return
	}
	RespondCreated(c, created)
}

func (h *CourseEnrollmentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	row, err := h.enrollmentRepo.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			RespondError(c, http.StatusNotFound, "enrollment_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "load_enrollment_failed", err)
		return
	}

	var req enrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	row.UserID = req.UserID
	row.User = nil
	row.CourseID = req.CourseID
	if req.Created != nil {
		row.Created = *req.Created
	}
	if req.IsActive != nil {
		row.IsActive = *req.IsActive
	}
	if req.Mode != "" {
		row.Mode = req.Mode
	}

	if err := h.enrollmentRepo.Update(c.Request.Context(), nil, row); err != nil {
		h.log.Error("Update enrollment failed", "enrollment_id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, "update_enrollment_failed", err)
		return
	}
	RespondOK(c, row)
}

func (h *CourseEnrollmentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	if err := h.enrollmentRepo.DeleteByID(c.Request.Context(), nil, id); err != nil {
		h.log.Error("Delete enrollment failed", "enrollment_id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, "delete_enrollment_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}
