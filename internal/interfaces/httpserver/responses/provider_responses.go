package responses

import (
	"time"

	"geofora/ai-gateway/internal/domain/gateway"
)

// ProviderStatusResponse is the point-in-time view of one provider.
type ProviderStatusResponse struct {
	ID                  string     `json:"id"`
	DisplayName         string     `json:"display_name"`
	Active              bool       `json:"active"`
	Healthy             bool       `json:"healthy"`
	LastCheckedAt       *time.Time `json:"last_checked_at,omitempty"`
	LastProbeLatencyMS  int64      `json:"last_probe_latency_ms"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
	CircuitOpen         bool       `json:"circuit_open"`
	NextRetryAt         *time.Time `json:"next_retry_at,omitempty"`
	WindowRequests      int        `json:"window_requests"`
	WindowTokens        int        `json:"window_tokens"`
	WindowResetAt       time.Time  `json:"window_reset_at"`
}

// NewProviderStatusResponse maps a domain status onto the wire shape.
func NewProviderStatusResponse(status gateway.ProviderStatus) ProviderStatusResponse {
	out := ProviderStatusResponse{
		ID:                  status.ID,
		DisplayName:         status.DisplayName,
		Active:              status.Active,
		Healthy:             status.Healthy,
		LastProbeLatencyMS:  status.LastProbeLatency.Milliseconds(),
		ConsecutiveFailures: status.ConsecutiveFailures,
		CircuitOpen:         status.CircuitOpen,
		WindowRequests:      status.WindowRequests,
		WindowTokens:        status.WindowTokens,
		WindowResetAt:       status.WindowResetAt,
	}
	if !status.LastCheckedAt.IsZero() {
		t := status.LastCheckedAt
		out.LastCheckedAt = &t
	}
	if !status.NextRetryAt.IsZero() {
		t := status.NextRetryAt
		out.NextRetryAt = &t
	}
	return out
}

// ProviderListResponse is the payload of GET /v1/providers.
type ProviderListResponse struct {
	Providers []ProviderStatusResponse `json:"providers"`
}

// ModelListResponse is the payload of GET /v1/models.
type ModelListResponse struct {
	Models map[string][]string `json:"models"`
}
