package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/appsembler/figures-backend/internal/logger"
	"github.com/appsembler/figures-backend/internal/services"
	"github.com/appsembler/figures-backend/internal/utils"
)

// PipelineHandler triggers an on-demand pipeline run, the HTTP equivalent
// of the scheduled daily job.
type PipelineHandler struct {
	log             *logger.Logger
	pipelineService services.PipelineService
}

func NewPipelineHandler(log *logger.Logger, pipelineService services.PipelineService) *PipelineHandler {
	return &PipelineHandler{
		log:             log.With("handler", "PipelineHandler"),
		pipelineService: pipelineService,
	}
}

type pipelineRunRequest struct {
	DateFor string `json:"date_for"`
}

func (h *PipelineHandler) Run(c *gin.Context) {
	var req pipelineRunRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", err)
			return
		}
	}

	dateFor := utils.YesterdayUTC()
	if req.DateFor != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.DateFor, time.UTC)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_date",
				fmt.Errorf("date_for must be YYYY-MM-DD: %q", req.DateFor))
			return
		}
		dateFor = parsed
	}

	h.log.Info("Pipeline run requested", "date_for", dateFor.Format("2006-01-02"))
	if err := h.pipelineService.RunForDate(c.Request.Context(), dateFor); err != nil {
		h.log.Error("Pipeline run failed", "date_for", dateFor.Format("2006-01-02"), "error", err)
		RespondError(c, http.StatusInternalServerError, "pipeline_run_failed", err)
		return
	}
	RespondOK(c, gin.H{"date_for": dateFor.Format("2006-01-02"), "status": "completed"})
}
