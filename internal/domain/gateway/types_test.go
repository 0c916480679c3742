package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeSystemPrompt(t *testing.T) {
	base := "You are a helpful writer."

	assert.Equal(t, base, ComposeSystemPrompt(base, nil))
	assert.Equal(t, base, ComposeSystemPrompt(base, &BusinessContext{}))

	full := ComposeSystemPrompt(base, &BusinessContext{
		Industry:       "legal services",
		BrandVoice:     "formal but approachable",
		TargetKeywords: []string{"contract review", "compliance"},
	})
	assert.Equal(t, "You are a helpful writer.\n"+
		"Industry context: legal services\n"+
		"Brand voice: formal but approachable\n"+
		"Target keywords: contract review, compliance", full)

	partial := ComposeSystemPrompt(base, &BusinessContext{BrandVoice: "playful"})
	assert.Equal(t, "You are a helpful writer.\nBrand voice: playful", partial)
}

func TestClassifyRetryable(t *testing.T) {
	cases := []struct {
		status  int
		message string
		want    bool
	}{
		{429, "", true},
		{500, "", true},
		{502, "", true},
		{503, "", true},
		{504, "", true},
		{400, "bad request", false},
		{401, "invalid api key", false},
		{0, "Rate Limit reached for gpt-4o", true},
		{0, "request TIMEOUT after 30s", true},
		{0, "connection refused", true},
		{0, "network unreachable", true},
		{0, "model not found", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyRetryable(tc.status, tc.message), "status=%d message=%q", tc.status, tc.message)
	}
}
