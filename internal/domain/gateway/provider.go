package gateway

import (
	"context"
	"time"
)

// ProviderKind identifies a backend wire format.
type ProviderKind string

const (
	ProviderOpenAI    ProviderKind = "openai"
	ProviderAnthropic ProviderKind = "anthropic"
	ProviderGoogle    ProviderKind = "google"
)

// RateLimits is the per-provider local budget configuration.
type RateLimits struct {
	RequestsPerWindow   int `json:"requests_per_window"`
	TokensPerWindow     int `json:"tokens_per_window"`
	MaxTokensPerRequest int `json:"max_tokens_per_request"`
}

// Provider describes one external model backend: static capability and
// configuration plus mutable health status. Instances are constructed once at
// process start and never destroyed; IsHealthy/LastCheckedAt are mutated only
// by the health prober or by call outcomes.
type Provider struct {
	ID               string       `json:"id"`
	DisplayName      string       `json:"display_name"`
	Kind             ProviderKind `json:"kind"`
	BaseURL          string       `json:"base_url"`
	MaxContextLength int          `json:"max_context_length"`
	SupportsStreaming bool        `json:"supports_streaming"`
	SupportedModels  []string     `json:"supported_models"`
	RateLimits       RateLimits   `json:"rate_limits"`

	// Active means credentials were present at startup. An inactive provider
	// is constructed anyway so status endpoints can report it, but the
	// orchestrator always skips it.
	Active bool `json:"active"`
}

// ProviderStatus is the point-in-time view of a provider exposed to callers
// and dashboards.
type ProviderStatus struct {
	ID                  string        `json:"id"`
	DisplayName         string        `json:"display_name"`
	Active              bool          `json:"active"`
	Healthy             bool          `json:"healthy"`
	LastCheckedAt       time.Time     `json:"last_checked_at"`
	LastProbeLatency    time.Duration `json:"last_probe_latency"`
	ConsecutiveFailures int           `json:"consecutive_failures"`
	CircuitOpen         bool          `json:"circuit_open"`
	NextRetryAt         time.Time     `json:"next_retry_at,omitempty"`
	WindowRequests      int           `json:"window_requests"`
	WindowTokens        int           `json:"window_tokens"`
	WindowResetAt       time.Time     `json:"window_reset_at"`
}

// ProviderAdapter is the uniform contract each backend integration
// implements. One concrete adapter exists per backend; it owns that backend's
// authentication and wire format.
type ProviderAdapter interface {
	// Generate performs a chat completion. Failures are always returned as a
	// *ProviderError; adapters never swallow backend errors.
	Generate(ctx context.Context, req *Request) (*Response, error)

	// HealthCheck issues a minimal call against the backend, preferring a
	// lightweight endpoint where one exists.
	HealthCheck(ctx context.Context) error

	// ListModels returns the model identifiers the backend currently serves.
	ListModels(ctx context.Context) ([]string, error)
}
