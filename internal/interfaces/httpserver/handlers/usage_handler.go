package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"geofora/ai-gateway/internal/domain/usage"
	"geofora/ai-gateway/internal/interfaces/httpserver/responses"
	"geofora/ai-gateway/internal/utils/platformerrors"
)

const defaultSummaryWindow = 24 * time.Hour

// UsageHandler serves aggregated usage reports.
type UsageHandler struct {
	svc *usage.Service
	log zerolog.Logger
}

func NewUsageHandler(svc *usage.Service, log zerolog.Logger) *UsageHandler {
	return &UsageHandler{svc: svc, log: log}
}

// GetSummary handles GET /v1/usage/summary. The optional window query
// parameter is a Go duration string, defaulting to 24h.
func (h *UsageHandler) GetSummary(c *gin.Context) {
	if !h.svc.Enabled() {
		platformerrors.WriteServiceUnavailable(c, "usage tracking is not configured")
		return
	}

	window := defaultSummaryWindow
	if raw := c.Query("window"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			platformerrors.WriteValidationError(c, "window must be a positive duration, e.g. 24h")
			return
		}
		window = parsed
	}

	since := time.Now().Add(-window)
	summaries, err := h.svc.Summary(c.Request.Context(), since)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusOK, responses.NewUsageSummaryResponse(since, summaries))
}
