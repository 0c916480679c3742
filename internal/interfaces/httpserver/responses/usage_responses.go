package responses

import (
	"time"

	"geofora/ai-gateway/internal/domain/usage"
)

// ProviderUsageResponse aggregates recorded usage for one provider.
type ProviderUsageResponse struct {
	Provider    string `json:"provider"`
	Requests    int64  `json:"requests"`
	Failures    int64  `json:"failures"`
	TotalTokens int64  `json:"total_tokens"`
	TotalCost   string `json:"total_cost"`
}

// UsageSummaryResponse is the payload of GET /v1/usage/summary.
type UsageSummaryResponse struct {
	Since     time.Time               `json:"since"`
	Providers []ProviderUsageResponse `json:"providers"`
}

// NewUsageSummaryResponse maps aggregated usage rows onto the wire shape.
func NewUsageSummaryResponse(since time.Time, summaries []usage.ProviderSummary) UsageSummaryResponse {
	out := UsageSummaryResponse{
		Since:     since,
		Providers: make([]ProviderUsageResponse, 0, len(summaries)),
	}
	for _, s := range summaries {
		out.Providers = append(out.Providers, ProviderUsageResponse{
			Provider:    s.Provider,
			Requests:    s.Requests,
			Failures:    s.Failures,
			TotalTokens: s.TotalTokens,
			TotalCost:   s.TotalCost.StringFixed(6),
		})
	}
	return out
}
