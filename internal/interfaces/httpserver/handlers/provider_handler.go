package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"geofora/ai-gateway/internal/domain/gateway"
	"geofora/ai-gateway/internal/interfaces/httpserver/responses"
	"geofora/ai-gateway/internal/utils/platformerrors"
)

// ProviderHandler serves the provider status endpoints.
type ProviderHandler struct {
	gw  *gateway.Gateway
	log zerolog.Logger
}

func NewProviderHandler(gw *gateway.Gateway, log zerolog.Logger) *ProviderHandler {
	return &ProviderHandler{gw: gw, log: log}
}

// GetProviders handles GET /v1/providers.
func (h *ProviderHandler) GetProviders(c *gin.Context) {
	statuses := h.gw.AllProviderStatuses()
	out := responses.ProviderListResponse{
		Providers: make([]responses.ProviderStatusResponse, 0, len(statuses)),
	}
	for _, status := range statuses {
		out.Providers = append(out.Providers, responses.NewProviderStatusResponse(status))
	}
	c.JSON(http.StatusOK, out)
}

// GetProvider handles GET /v1/providers/:id.
func (h *ProviderHandler) GetProvider(c *gin.Context) {
	status, err := h.gw.ProviderStatus(c.Param("id"))
	if err != nil {
		platformerrors.WriteNotFound(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, responses.NewProviderStatusResponse(status))
}

// GetModels handles GET /v1/models. Models are reported from the static
// provider catalog, not live backend calls.
func (h *ProviderHandler) GetModels(c *gin.Context) {
	out := responses.ModelListResponse{Models: make(map[string][]string)}
	for _, p := range h.gw.Providers() {
		out.Models[p.ID] = p.SupportedModels
	}
	c.JSON(http.StatusOK, out)
}
