package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AI Gateway Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geofora",
			Subsystem: "ai_gateway",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Token counters
	TokensPromptTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geofora",
			Subsystem: "ai_gateway",
			Name:      "tokens_prompt_total",
			Help:      "Total prompt tokens consumed",
		},
		[]string{"model", "provider"},
	)

	TokensCompletionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geofora",
			Subsystem: "ai_gateway",
			Name:      "tokens_completion_total",
			Help:      "Total completion tokens generated",
		},
		[]string{"model", "provider"},
	)

	// Provider errors
	ProviderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geofora",
			Subsystem: "ai_gateway",
			Name:      "provider_errors_total",
			Help:      "Total provider call failures",
		},
		[]string{"provider", "error_type"},
	)

	// Fallback dispatches that left the primary provider
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geofora",
			Subsystem: "ai_gateway",
			Name:      "fallbacks_total",
			Help:      "Dispatches served by a non-primary provider",
		},
		[]string{"primary", "served_by"},
	)

	// Local rejections (never reached the backend)
	RateLimitRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geofora",
			Subsystem: "ai_gateway",
			Name:      "rate_limit_rejections_total",
			Help:      "Candidates skipped because the local window budget was spent",
		},
		[]string{"provider"},
	)

	CircuitOpenSkipsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geofora",
			Subsystem: "ai_gateway",
			Name:      "circuit_open_skips_total",
			Help:      "Candidates skipped because the circuit breaker was open",
		},
		[]string{"provider"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "geofora",
			Subsystem: "ai_gateway",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Provider call duration
	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "geofora",
			Subsystem: "ai_gateway",
			Name:      "provider_duration_seconds",
			Help:      "Provider generation call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"model", "provider"},
	)

	// Health probe latency
	ProbeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "geofora",
			Subsystem: "ai_gateway",
			Name:      "probe_duration_seconds",
			Help:      "Health probe round-trip in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"provider"},
	)

	// Provider health gauge
	ProviderHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "geofora",
			Subsystem: "ai_gateway",
			Name:      "provider_health",
			Help:      "Provider health status (1=healthy, 0=unhealthy)",
		},
		[]string{"provider"},
	)
)

// RecordRequest records an HTTP request with all relevant labels
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordTokens records token usage for a completion request
func RecordTokens(model, provider string, promptTokens, completionTokens int) {
	TokensPromptTotal.WithLabelValues(model, provider).Add(float64(promptTokens))
	TokensCompletionTotal.WithLabelValues(model, provider).Add(float64(completionTokens))
}

// RecordProviderError records a backend call failure
func RecordProviderError(provider, errorType string) {
	ProviderErrorsTotal.WithLabelValues(provider, errorType).Inc()
}

// RecordProbe records a health probe outcome and latency
func RecordProbe(provider string, healthy bool, durationSec float64) {
	ProbeDuration.WithLabelValues(provider).Observe(durationSec)
	value := 0.0
	if healthy {
		value = 1.0
	}
	ProviderHealth.WithLabelValues(provider).Set(value)
}
