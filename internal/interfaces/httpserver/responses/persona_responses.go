package responses

import (
	"geofora/ai-gateway/internal/domain/gateway"
)

// PersonaResponse describes one persona without exposing its system prompt.
type PersonaResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	ProviderID     string  `json:"provider_id"`
	Model          string  `json:"model"`
	Temperature    float32 `json:"temperature"`
	MaxTokens      int     `json:"max_tokens"`
	KnowledgeLevel string  `json:"knowledge_level"`
}

// NewPersonaResponse maps a domain persona onto the wire shape.
func NewPersonaResponse(p *gateway.Persona) PersonaResponse {
	return PersonaResponse{
		ID:             p.ID,
		Name:           p.Name,
		ProviderID:     p.ProviderID,
		Model:          p.Model,
		Temperature:    p.Temperature,
		MaxTokens:      p.MaxTokens,
		KnowledgeLevel: string(p.KnowledgeLevel),
	}
}

// PersonaListResponse is the payload of GET /v1/personas.
type PersonaListResponse struct {
	Personas []PersonaResponse `json:"personas"`
	Plan     string            `json:"plan,omitempty"`
}
