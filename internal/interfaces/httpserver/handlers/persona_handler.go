package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"geofora/ai-gateway/internal/domain/gateway"
	"geofora/ai-gateway/internal/interfaces/httpserver/responses"
	"geofora/ai-gateway/internal/utils/platformerrors"
)

// PersonaHandler serves the persona catalog endpoints.
type PersonaHandler struct {
	gw  *gateway.Gateway
	log zerolog.Logger
}

func NewPersonaHandler(gw *gateway.Gateway, log zerolog.Logger) *PersonaHandler {
	return &PersonaHandler{gw: gw, log: log}
}

// GetPersonas handles GET /v1/personas. The optional plan query parameter
// filters personas down to the plan's provider allow-list.
func (h *PersonaHandler) GetPersonas(c *gin.Context) {
	plan := c.Query("plan")

	var personas []*gateway.Persona
	if plan == "" {
		personas = h.gw.Personas().All()
	} else {
		personas = h.gw.Personas().ForPlan(gateway.Plan(plan))
	}

	out := responses.PersonaListResponse{
		Personas: make([]responses.PersonaResponse, 0, len(personas)),
		Plan:     plan,
	}
	for _, p := range personas {
		out.Personas = append(out.Personas, responses.NewPersonaResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

// GetPersona handles GET /v1/personas/:id.
func (h *PersonaHandler) GetPersona(c *gin.Context) {
	p, ok := h.gw.Personas().Find(c.Param("id"))
	if !ok {
		platformerrors.WriteNotFound(c, "persona not found: "+c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, responses.NewPersonaResponse(p))
}
