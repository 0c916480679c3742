package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geofora/ai-gateway/internal/config"
)

func TestBuildRegistry(t *testing.T) {
	cfg := &config.Config{
		OpenAIAPIKey:               "sk-test",
		AnthropicAPIKey:            "",
		GoogleAIAPIKey:             "google-key",
		OpenAIBaseURL:              "https://api.openai.com/v1",
		AnthropicBaseURL:           "https://api.anthropic.com",
		GoogleAIBaseURL:            "https://generativelanguage.googleapis.com/v1beta",
		OpenAIRequestsPerWindow:    60,
		OpenAITokensPerWindow:      90000,
		AnthropicRequestsPerWindow: 50,
		AnthropicTokensPerWindow:   80000,
		GoogleRequestsPerWindow:    60,
		GoogleTokensPerWindow:      120000,
	}

	registry := BuildRegistry(cfg)
	require.Len(t, registry.Providers, 3)

	byID := map[string]bool{}
	for _, p := range registry.Providers {
		byID[p.ID] = p.Active
		_, ok := registry.Adapters[p.ID]
		assert.True(t, ok, "provider %s must have an adapter", p.ID)
	}

	assert.True(t, byID["openai"])
	assert.False(t, byID["anthropic"], "provider without a key must be inactive")
	assert.True(t, byID["google"])

	for _, p := range registry.Providers {
		if p.ID == "openai" {
			assert.Equal(t, 60, p.RateLimits.RequestsPerWindow)
			assert.Equal(t, 90000, p.RateLimits.TokensPerWindow)
		}
	}
}
