package responses

import (
	"time"

	"geofora/ai-gateway/internal/domain/gateway"
)

// UsageResponse is the normalized token accounting echoed to callers.
type UsageResponse struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GenerationResponse is the canonical completion payload.
type GenerationResponse struct {
	Content   string            `json:"content"`
	Provider  string            `json:"provider"`
	Model     string            `json:"model"`
	Usage     UsageResponse     `json:"usage"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// NewGenerationResponse maps a domain response onto the wire shape.
func NewGenerationResponse(resp *gateway.Response, requestID string) GenerationResponse {
	return GenerationResponse{
		Content:  resp.Content,
		Provider: resp.Provider,
		Model:    resp.Model,
		Usage: UsageResponse{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
		Timestamp: resp.Timestamp,
		Metadata:  resp.Metadata,
		RequestID: requestID,
	}
}

// DialogueTurnResponse is one persona's contribution to a dialogue.
type DialogueTurnResponse struct {
	PersonaID   string             `json:"persona_id"`
	PersonaName string             `json:"persona_name"`
	Response    GenerationResponse `json:"response"`
}

// SkippedTurnResponse records a persona whose turn failed on every fallback.
type SkippedTurnResponse struct {
	PersonaID string `json:"persona_id"`
	Reason    string `json:"reason"`
}

// DialogueResponse is the payload of POST /v1/dialogue.
type DialogueResponse struct {
	Turns     []DialogueTurnResponse `json:"turns"`
	Skipped   []SkippedTurnResponse  `json:"skipped,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// NewDialogueResponse maps a dialogue result onto the wire shape.
func NewDialogueResponse(result *gateway.DialogueResult, requestID string) DialogueResponse {
	out := DialogueResponse{
		Turns:     make([]DialogueTurnResponse, 0, len(result.Turns)),
		RequestID: requestID,
	}
	for _, turn := range result.Turns {
		out.Turns = append(out.Turns, DialogueTurnResponse{
			PersonaID:   turn.PersonaID,
			PersonaName: turn.PersonaName,
			Response:    NewGenerationResponse(&turn.Response, ""),
		})
	}
	for _, skipped := range result.Skipped {
		out.Skipped = append(out.Skipped, SkippedTurnResponse{
			PersonaID: skipped.PersonaID,
			Reason:    skipped.Reason,
		})
	}
	return out
}
