package gateway

import (
	"context"
	"fmt"
	"strings"
)

// DialogueTurn is one persona's contribution to a sequential dialogue.
type DialogueTurn struct {
	PersonaID   string   `json:"persona_id"`
	PersonaName string   `json:"persona_name"`
	Response    Response `json:"response"`
}

// SkippedTurn records a persona whose turn could not be generated.
type SkippedTurn struct {
	PersonaID string `json:"persona_id"`
	Reason    string `json:"reason"`
}

// DialogueResult always carries whatever turns succeeded; a failed turn never
// aborts the dialogue.
type DialogueResult struct {
	Turns   []DialogueTurn `json:"turns"`
	Skipped []SkippedTurn  `json:"skipped,omitempty"`
}

// GenerateDialogue runs a sequential multi-persona generation: each persona
// replies in order, with all prior replies appended to its prompt. Each turn
// is an independent dispatch with the persona's fallback chain; a turn that
// fails on every fallback is logged and skipped while the dialogue continues.
func (g *Gateway) GenerateDialogue(ctx context.Context, personaIDs []string, prompt string, bizCtx *BusinessContext, fallbackPersonaIDs []string) (*DialogueResult, error) {
	if len(personaIDs) == 0 {
		return nil, fmt.Errorf("gateway: dialogue requires at least one persona")
	}

	result := &DialogueResult{}

	for _, id := range personaIDs {
		persona, ok := g.personas.Find(id)
		if !ok {
			result.Skipped = append(result.Skipped, SkippedTurn{PersonaID: id, Reason: "persona not found"})
			continue
		}

		turnPrompt := prompt
		if len(result.Turns) > 0 {
			var b strings.Builder
			b.WriteString(prompt)
			b.WriteString("\n\nPrior replies in this discussion:")
			for _, turn := range result.Turns {
				b.WriteString(fmt.Sprintf("\n%s: %s", turn.PersonaName, turn.Response.Content))
			}
			turnPrompt = b.String()
		}

		resp, err := g.GenerateWithPersona(ctx, id, turnPrompt, bizCtx, fallbackPersonaIDs)
		if err != nil {
			g.log.Warn().
				Err(err).
				Str("persona", id).
				Msg("dialogue turn failed on all fallbacks, skipping persona")
			result.Skipped = append(result.Skipped, SkippedTurn{PersonaID: id, Reason: err.Error()})
			continue
		}

		result.Turns = append(result.Turns, DialogueTurn{
			PersonaID:   id,
			PersonaName: persona.Name,
			Response:    *resp,
		})
	}

	return result, nil
}
