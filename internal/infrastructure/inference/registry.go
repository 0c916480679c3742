package inference

import (
	"geofora/ai-gateway/internal/config"
	"geofora/ai-gateway/internal/domain/gateway"
	"geofora/ai-gateway/internal/infrastructure/logger"
)

// Registry binds the static provider descriptors to their adapters.
type Registry struct {
	Providers []*gateway.Provider
	Adapters  map[string]gateway.ProviderAdapter
}

// BuildRegistry constructs the three supported providers from configuration.
// A provider whose credential is missing is still registered, marked
// inactive, so status endpoints can report it; dispatch skips it.
func BuildRegistry(cfg *config.Config) *Registry {
	log := logger.GetLogger()

	providers := []*gateway.Provider{
		{
			ID:                "openai",
			DisplayName:       "OpenAI",
			Kind:              gateway.ProviderOpenAI,
			BaseURL:           cfg.OpenAIBaseURL,
			MaxContextLength:  128000,
			SupportsStreaming: true,
			SupportedModels:   []string{"gpt-4o", "gpt-4o-mini", "gpt-4.1", "gpt-4.1-mini"},
			RateLimits: gateway.RateLimits{
				RequestsPerWindow:   cfg.OpenAIRequestsPerWindow,
				TokensPerWindow:     cfg.OpenAITokensPerWindow,
				MaxTokensPerRequest: 16384,
			},
			Active: cfg.OpenAIAPIKey != "",
		},
		{
			ID:                "anthropic",
			DisplayName:       "Anthropic",
			Kind:              gateway.ProviderAnthropic,
			BaseURL:           cfg.AnthropicBaseURL,
			MaxContextLength:  200000,
			SupportsStreaming: true,
			SupportedModels:   []string{"claude-sonnet-4-20250514", "claude-3-5-haiku-20241022"},
			RateLimits: gateway.RateLimits{
				RequestsPerWindow:   cfg.AnthropicRequestsPerWindow,
				TokensPerWindow:     cfg.AnthropicTokensPerWindow,
				MaxTokensPerRequest: 8192,
			},
			Active: cfg.AnthropicAPIKey != "",
		},
		{
			ID:                "google",
			DisplayName:       "Google AI",
			Kind:              gateway.ProviderGoogle,
			BaseURL:           cfg.GoogleAIBaseURL,
			MaxContextLength:  1000000,
			SupportsStreaming: true,
			SupportedModels:   []string{"gemini-2.0-flash", "gemini-2.0-flash-lite", "gemini-1.5-pro"},
			RateLimits: gateway.RateLimits{
				RequestsPerWindow:   cfg.GoogleRequestsPerWindow,
				TokensPerWindow:     cfg.GoogleTokensPerWindow,
				MaxTokensPerRequest: 8192,
			},
			Active: cfg.GoogleAIAPIKey != "",
		},
	}

	adapters := map[string]gateway.ProviderAdapter{
		"openai":    NewOpenAIAdapter(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey),
		"anthropic": NewAnthropicAdapter(cfg.AnthropicBaseURL, cfg.AnthropicAPIKey),
		"google":    NewGoogleAdapter(cfg.GoogleAIBaseURL, cfg.GoogleAIAPIKey),
	}

	for _, p := range providers {
		if !p.Active {
			log.Warn().Str("provider", p.ID).Msg("provider has no API key, registering as inactive")
		}
	}

	return &Registry{Providers: providers, Adapters: adapters}
}
