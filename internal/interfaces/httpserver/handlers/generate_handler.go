package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"geofora/ai-gateway/internal/domain/gateway"
	"geofora/ai-gateway/internal/domain/usage"
	"geofora/ai-gateway/internal/infrastructure/metrics"
	"geofora/ai-gateway/internal/interfaces/httpserver/middlewares"
	"geofora/ai-gateway/internal/interfaces/httpserver/requests"
	"geofora/ai-gateway/internal/interfaces/httpserver/responses"
	"geofora/ai-gateway/internal/utils/platformerrors"
)

const planHeader = "X-Plan"

// GenerateHandler serves the completion endpoints.
type GenerateHandler struct {
	gw       *gateway.Gateway
	usageSvc *usage.Service
	log      zerolog.Logger
}

func NewGenerateHandler(gw *gateway.Gateway, usageSvc *usage.Service, log zerolog.Logger) *GenerateHandler {
	return &GenerateHandler{gw: gw, usageSvc: usageSvc, log: log}
}

// PostGenerate handles POST /v1/generate: a raw completion against an
// explicit provider with an optional fallback chain.
func (h *GenerateHandler) PostGenerate(c *gin.Context) {
	var req requests.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, err.Error())
		return
	}

	opts := gateway.GenerateOptions{
		Model:           req.Model,
		Temperature:     req.Temperature,
		MaxTokens:       req.MaxTokens,
		BusinessContext: requests.ToBusinessContext(req.BusinessContext),
	}
	messages := requests.ToMessages(req.Messages)

	resp, err := h.gw.GenerateWithFallback(c.Request.Context(), req.Provider, messages, opts, req.Fallbacks)
	h.finishGenerate(c, resp, err, "", req.Provider, req.Model)
}

// PostPersonaGenerate handles POST /v1/personas/:id/generate.
func (h *GenerateHandler) PostPersonaGenerate(c *gin.Context) {
	personaID := c.Param("id")

	var req requests.PersonaGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, err.Error())
		return
	}

	primaryProvider := ""
	if p, ok := h.gw.Personas().Find(personaID); ok {
		primaryProvider = p.ProviderID
	}

	resp, err := h.gw.GenerateWithPersona(
		c.Request.Context(),
		personaID,
		req.Prompt,
		requests.ToBusinessContext(req.BusinessContext),
		req.FallbackPersonaIDs,
	)
	h.finishGenerate(c, resp, err, personaID, primaryProvider, "")
}

// PostDialogue handles POST /v1/dialogue: a sequential multi-persona
// discussion over a single prompt.
func (h *GenerateHandler) PostDialogue(c *gin.Context) {
	var req requests.DialogueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, err.Error())
		return
	}

	result, err := h.gw.GenerateDialogue(
		c.Request.Context(),
		req.PersonaIDs,
		req.Prompt,
		requests.ToBusinessContext(req.BusinessContext),
		req.FallbackPersonaIDs,
	)
	if err != nil {
		h.writeGatewayError(c, err)
		return
	}

	requestID := middlewares.RequestIDFromContext(c)
	plan := c.GetHeader(planHeader)
	for i := range result.Turns {
		turn := &result.Turns[i]
		metrics.RecordTokens(turn.Response.Model, turn.Response.Provider, turn.Response.Usage.PromptTokens, turn.Response.Usage.CompletionTokens)
		h.usageSvc.RecordSuccess(c.Request.Context(), requestID, turn.PersonaID, plan, &turn.Response)
	}

	c.JSON(http.StatusOK, responses.NewDialogueResponse(result, requestID))
}

func (h *GenerateHandler) finishGenerate(c *gin.Context, resp *gateway.Response, err error, personaID, provider, model string) {
	requestID := middlewares.RequestIDFromContext(c)
	plan := c.GetHeader(planHeader)

	if err != nil {
		h.usageSvc.RecordFailure(c.Request.Context(), requestID, personaID, plan, provider, model)
		h.writeGatewayError(c, err)
		return
	}

	metrics.RecordTokens(resp.Model, resp.Provider, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	if provider != "" && resp.Provider != provider {
		metrics.FallbacksTotal.WithLabelValues(provider, resp.Provider).Inc()
	}

	h.usageSvc.RecordSuccess(c.Request.Context(), requestID, personaID, plan, resp)
	c.JSON(http.StatusOK, responses.NewGenerationResponse(resp, requestID))
}

// writeGatewayError maps domain dispatch failures onto HTTP statuses.
func (h *GenerateHandler) writeGatewayError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var (
		rateErr     *gateway.RateLimitExceededError
		circuitErr  *gateway.CircuitOpenError
		exhausted   *gateway.AllProvidersExhaustedError
		providerErr *gateway.ProviderError
	)

	switch {
	case errors.Is(err, gateway.ErrPersonaNotFound):
		platformerrors.WriteNotFound(c, err.Error())
	case errors.Is(err, gateway.ErrUnknownProvider):
		platformerrors.WriteNotFound(c, err.Error())
	case errors.As(err, &rateErr):
		metrics.RateLimitRejectionsTotal.WithLabelValues(rateErr.Provider).Inc()
		platformerrors.WriteHTTPError(c,
			platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeRateLimited, err.Error(), err, ""),
			h.log)
	case errors.As(err, &circuitErr):
		metrics.CircuitOpenSkipsTotal.WithLabelValues(circuitErr.Provider).Inc()
		platformerrors.WriteHTTPError(c,
			platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeUnavailable, err.Error(), err, ""),
			h.log)
	case errors.As(err, &exhausted):
		recordAttemptMetrics(exhausted.Attempts)
		platformerrors.WriteHTTPError(c,
			platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeUnavailable, err.Error(), err, ""),
			h.log)
	case errors.As(err, &providerErr):
		errType := platformerrors.ErrorTypeExternal
		if providerErr.StatusCode == http.StatusTooManyRequests {
			errType = platformerrors.ErrorTypeRateLimited
		}
		platformerrors.WriteHTTPError(c,
			platformerrors.NewError(ctx, platformerrors.LayerHandler, errType, err.Error(), err, ""),
			h.log)
	default:
		platformerrors.WriteError(c, err, h.log)
	}
}

// recordAttemptMetrics counts the local rejections inside an exhausted chain.
func recordAttemptMetrics(attempts []gateway.Attempt) {
	for _, a := range attempts {
		var (
			rateErr    *gateway.RateLimitExceededError
			circuitErr *gateway.CircuitOpenError
		)
		switch {
		case errors.As(a.Err, &rateErr):
			metrics.RateLimitRejectionsTotal.WithLabelValues(a.Provider).Inc()
		case errors.As(a.Err, &circuitErr):
			metrics.CircuitOpenSkipsTotal.WithLabelValues(a.Provider).Inc()
		}
	}
}
