package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appsembler/figures-backend/internal/logger"
	"github.com/appsembler/figures-backend/internal/services"
)

// GeneralMetricsHandler serves the live site-wide rollup backing the
// dashboard landing page.
type GeneralMetricsHandler struct {
	log            *logger.Logger
	metricsService services.GeneralMetricsService
}

func NewGeneralMetricsHandler(log *logger.Logger, metricsService services.GeneralMetricsService) *GeneralMetricsHandler {
	return &GeneralMetricsHandler{
		log:            log.With("handler", "GeneralMetricsHandler"),
		metricsService: metricsService,
	}
}

func (h *GeneralMetricsHandler) Get(c *gin.Context) {
	metrics, err := h.metricsService.Get(c.Request.Context())
	if err != nil {
		h.log.Error("Get general site metrics failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_general_metrics_failed", err)
		return
	}
	RespondOK(c, metrics)
}
