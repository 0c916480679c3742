package v1

import (
	"github.com/gin-gonic/gin"

	"geofora/ai-gateway/internal/interfaces/httpserver/handlers"
)

// GenerateRoute wires the completion endpoints.
type GenerateRoute struct {
	handler *handlers.GenerateHandler
}

func NewGenerateRoute(handler *handlers.GenerateHandler) *GenerateRoute {
	return &GenerateRoute{handler: handler}
}

func (r *GenerateRoute) RegisterRouter(router gin.IRouter) {
	router.POST("/generate", r.handler.PostGenerate)
	router.POST("/personas/:id/generate", r.handler.PostPersonaGenerate)
	router.POST("/dialogue", r.handler.PostDialogue)
}
