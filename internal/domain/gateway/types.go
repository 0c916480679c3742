package gateway

import (
	"strings"
	"time"
)

// Message is a single chat message in the canonical request format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// BusinessContext carries optional content-shaping hints supplied by the
// caller. Adapters append these to the system prompt as instruction lines:
// industry first, then brand voice, then target keywords.
type BusinessContext struct {
	Industry       string   `json:"industry,omitempty"`
	BrandVoice     string   `json:"brand_voice,omitempty"`
	TargetKeywords []string `json:"target_keywords,omitempty"`
}

// Empty reports whether the context carries no augmentation at all.
func (bc *BusinessContext) Empty() bool {
	if bc == nil {
		return true
	}
	return bc.Industry == "" && bc.BrandVoice == "" && len(bc.TargetKeywords) == 0
}

// Request is the canonical generation request. It is the only request type
// crossing the gateway boundary; adapters translate it into each backend's
// native call.
type Request struct {
	Model           string           `json:"model"`
	Messages        []Message        `json:"messages"`
	Temperature     float32          `json:"temperature,omitempty"`
	MaxTokens       int              `json:"max_tokens,omitempty"`
	BusinessContext *BusinessContext `json:"business_context,omitempty"`
}

// Usage is the normalized token accounting for a single call. TotalTokens is
// always PromptTokens + CompletionTokens, synthesized from the estimator when
// the backend does not report exact counts.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the canonical generation response returned to callers
// regardless of which backend served the request.
type Response struct {
	Content   string            `json:"content"`
	Provider  string            `json:"provider"`
	Model     string            `json:"model"`
	Usage     Usage             `json:"usage"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// GenerateOptions are the caller-tunable knobs for a fallback dispatch.
type GenerateOptions struct {
	Model           string
	Temperature     float32
	MaxTokens       int
	BusinessContext *BusinessContext
}

// ComposeSystemPrompt merges the system prompt with the business-context
// augmentation. The order of the appended lines is fixed: industry, brand
// voice, target keywords.
func ComposeSystemPrompt(systemPrompt string, bc *BusinessContext) string {
	if bc.Empty() {
		return systemPrompt
	}

	var b strings.Builder
	b.WriteString(systemPrompt)
	if bc.Industry != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Industry context: " + bc.Industry)
	}
	if bc.BrandVoice != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Brand voice: " + bc.BrandVoice)
	}
	if len(bc.TargetKeywords) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Target keywords: " + strings.Join(bc.TargetKeywords, ", "))
	}
	return b.String()
}
