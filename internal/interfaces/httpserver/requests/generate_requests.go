package requests

import (
	"geofora/ai-gateway/internal/domain/gateway"
)

// MessagePayload is one chat message supplied by the caller.
type MessagePayload struct {
	Role    string `json:"role" binding:"required,oneof=system user assistant"`
	Content string `json:"content" binding:"required"`
}

// BusinessContextPayload carries optional content-shaping hints.
type BusinessContextPayload struct {
	Industry       string   `json:"industry"`
	BrandVoice     string   `json:"brand_voice"`
	TargetKeywords []string `json:"target_keywords"`
}

// GenerateRequest is the body of POST /v1/generate.
type GenerateRequest struct {
	Provider        string                  `json:"provider" binding:"required"`
	Fallbacks       []string                `json:"fallbacks"`
	Model           string                  `json:"model" binding:"required"`
	Messages        []MessagePayload        `json:"messages" binding:"required,min=1,dive"`
	Temperature     float32                 `json:"temperature" binding:"omitempty,gte=0,lte=2"`
	MaxTokens       int                     `json:"max_tokens" binding:"omitempty,gt=0"`
	BusinessContext *BusinessContextPayload `json:"business_context"`
}

// PersonaGenerateRequest is the body of POST /v1/personas/:id/generate.
type PersonaGenerateRequest struct {
	Prompt             string                  `json:"prompt" binding:"required"`
	FallbackPersonaIDs []string                `json:"fallback_persona_ids"`
	BusinessContext    *BusinessContextPayload `json:"business_context"`
}

// DialogueRequest is the body of POST /v1/dialogue.
type DialogueRequest struct {
	PersonaIDs         []string                `json:"persona_ids" binding:"required,min=1"`
	Prompt             string                  `json:"prompt" binding:"required"`
	FallbackPersonaIDs []string                `json:"fallback_persona_ids"`
	BusinessContext    *BusinessContextPayload `json:"business_context"`
}

// ToMessages converts the payload into the canonical message slice.
func ToMessages(payloads []MessagePayload) []gateway.Message {
	messages := make([]gateway.Message, 0, len(payloads))
	for _, p := range payloads {
		messages = append(messages, gateway.Message{Role: p.Role, Content: p.Content})
	}
	return messages
}

// ToBusinessContext converts the payload into the domain business context.
// A nil payload maps to nil so downstream code can treat absence uniformly.
func ToBusinessContext(p *BusinessContextPayload) *gateway.BusinessContext {
	if p == nil {
		return nil
	}
	return &gateway.BusinessContext{
		Industry:       p.Industry,
		BrandVoice:     p.BrandVoice,
		TargetKeywords: p.TargetKeywords,
	}
}
