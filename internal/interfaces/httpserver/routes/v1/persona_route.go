package v1

import (
	"github.com/gin-gonic/gin"

	"geofora/ai-gateway/internal/interfaces/httpserver/handlers"
)

// PersonaRoute wires the persona catalog endpoints.
type PersonaRoute struct {
	handler *handlers.PersonaHandler
}

func NewPersonaRoute(handler *handlers.PersonaHandler) *PersonaRoute {
	return &PersonaRoute{handler: handler}
}

func (r *PersonaRoute) RegisterRouter(router gin.IRouter) {
	personas := router.Group("/personas")
	personas.GET("", r.handler.GetPersonas)
	personas.GET("/:id", r.handler.GetPersona)
}
