package v1

import (
	"github.com/gin-gonic/gin"

	"geofora/ai-gateway/internal/interfaces/httpserver/handlers"
)

// ProviderRoute wires the provider status endpoints.
type ProviderRoute struct {
	handler *handlers.ProviderHandler
}

func NewProviderRoute(handler *handlers.ProviderHandler) *ProviderRoute {
	return &ProviderRoute{handler: handler}
}

func (r *ProviderRoute) RegisterRouter(router gin.IRouter) {
	providers := router.Group("/providers")
	providers.GET("", r.handler.GetProviders)
	providers.GET("/:id", r.handler.GetProvider)

	router.GET("/models", r.handler.GetModels)
}
