package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appsembler/figures-backend/internal/logger"
)

// HomeHandler serves the single-page-application shell with the API base
// URL injected so the frontend knows where to find its data.
type HomeHandler struct {
	log        *logger.Logger
	apiBaseURL string
}

func NewHomeHandler(log *logger.Logger, apiBaseURL string) *HomeHandler {
	return &HomeHandler{
		log:        log.With("handler", "HomeHandler"),
		apiBaseURL: apiBaseURL,
	}
}

const homeShell = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Figures</title>
  <script>window.figures = { apiUrl: %q };</script>
</head>
<body>
  <div id="root"></div>
  <script src="/static/figures/app.js"></script>
</body>
</html>
`

func (h *HomeHandler) Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fmt.Sprintf(homeShell, h.apiBaseURL)))
}
