package v1

import (
	"github.com/gin-gonic/gin"

	"geofora/ai-gateway/internal/interfaces/httpserver/handlers"
)

// UsageRoute wires the usage reporting endpoints.
type UsageRoute struct {
	handler *handlers.UsageHandler
}

func NewUsageRoute(handler *handlers.UsageHandler) *UsageRoute {
	return &UsageRoute{handler: handler}
}

func (r *UsageRoute) RegisterRouter(router gin.IRouter) {
	usage := router.Group("/usage")
	usage.GET("/summary", r.handler.GetSummary)
}
