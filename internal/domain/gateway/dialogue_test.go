package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedAdapter returns a fixed content string and remembers every request.
type scriptedAdapter struct {
	content string
	err     error
	reqs    []*Request
}

func (s *scriptedAdapter) Generate(ctx context.Context, req *Request) (*Response, error) {
	s.reqs = append(s.reqs, req)
	if s.err != nil {
		return nil, s.err
	}
	return &Response{
		Content:   s.content,
		Model:     req.Model,
		Usage:     Usage{PromptTokens: 5, CompletionTokens: 5, TotalTokens: 10},
		Timestamp: time.Now(),
	}, nil
}

func (s *scriptedAdapter) HealthCheck(ctx context.Context) error { return s.err }

func (s *scriptedAdapter) ListModels(ctx context.Context) ([]string, error) { return nil, s.err }

func dialogueGateway(t *testing.T, openaiAdapter, anthropicAdapter, googleAdapter ProviderAdapter) *Gateway {
	t.Helper()
	personas := []*Persona{
		{ID: "alice", Name: "Alice", ProviderID: "openai", Model: "gpt-4o", SystemPrompt: "be alice", KnowledgeLevel: KnowledgeExpert},
		{ID: "bob", Name: "Bob", ProviderID: "anthropic", Model: "claude-sonnet-4-20250514", SystemPrompt: "be bob", KnowledgeLevel: KnowledgeExpert},
		{ID: "carol", Name: "Carol", ProviderID: "google", Model: "gemini-2.0-flash", SystemPrompt: "be carol", KnowledgeLevel: KnowledgeExpert},
	}
	return testGateway(t,
		[]*Provider{testProvider("openai", true), testProvider("anthropic", true), testProvider("google", true)},
		map[string]ProviderAdapter{"openai": openaiAdapter, "anthropic": anthropicAdapter, "google": googleAdapter},
		personas,
	)
}

func TestGenerateDialogueThreadsPriorReplies(t *testing.T) {
	alice := &scriptedAdapter{content: "shard by tenant"}
	bob := &scriptedAdapter{content: "agreed, with a directory"}
	carol := &scriptedAdapter{content: "watch the hot keys"}
	g := dialogueGateway(t, alice, bob, carol)

	result, err := g.GenerateDialogue(context.Background(), []string{"alice", "bob", "carol"}, "How should we shard?", nil, nil)
	require.NoError(t, err)
	require.Len(t, result.Turns, 3)
	assert.Empty(t, result.Skipped)

	assert.Equal(t, "Alice", result.Turns[0].PersonaName)
	assert.Equal(t, "shard by tenant", result.Turns[0].Response.Content)

	// Turn 1 sees only the original prompt.
	require.Len(t, alice.reqs, 1)
	assert.Equal(t, "How should we shard?", alice.reqs[0].Messages[1].Content)

	// Turn 2 sees Alice's reply appended.
	require.Len(t, bob.reqs, 1)
	assert.Contains(t, bob.reqs[0].Messages[1].Content, "Prior replies in this discussion:")
	assert.Contains(t, bob.reqs[0].Messages[1].Content, "Alice: shard by tenant")

	// Turn 3 sees both prior replies.
	require.Len(t, carol.reqs, 1)
	assert.Contains(t, carol.reqs[0].Messages[1].Content, "Alice: shard by tenant")
	assert.Contains(t, carol.reqs[0].Messages[1].Content, "Bob: agreed, with a directory")
}

func TestGenerateDialogueSkipsFailedTurn(t *testing.T) {
	alice := &scriptedAdapter{content: "first"}
	bob := &scriptedAdapter{err: &ProviderError{Provider: "anthropic", StatusCode: 500, Retryable: true, Err: errors.New("backend down")}}
	carol := &scriptedAdapter{content: "third"}
	g := dialogueGateway(t, alice, bob, carol)

	result, err := g.GenerateDialogue(context.Background(), []string{"alice", "bob", "carol"}, "topic", nil, nil)
	require.NoError(t, err)

	require.Len(t, result.Turns, 2)
	assert.Equal(t, "alice", result.Turns[0].PersonaID)
	assert.Equal(t, "carol", result.Turns[1].PersonaID)

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "bob", result.Skipped[0].PersonaID)

	// Carol's prompt carries Alice's turn but nothing from the failed turn.
	require.Len(t, carol.reqs, 1)
	assert.Contains(t, carol.reqs[0].Messages[1].Content, "Alice: first")
	assert.NotContains(t, carol.reqs[0].Messages[1].Content, "Bob")
}

func TestGenerateDialogueUnknownPersonaSkipped(t *testing.T) {
	alice := &scriptedAdapter{content: "only turn"}
	g := dialogueGateway(t, alice, &scriptedAdapter{}, &scriptedAdapter{})

	result, err := g.GenerateDialogue(context.Background(), []string{"ghost", "alice"}, "topic", nil, nil)
	require.NoError(t, err)
	require.Len(t, result.Turns, 1)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "ghost", result.Skipped[0].PersonaID)
	assert.Equal(t, "persona not found", result.Skipped[0].Reason)
}

func TestGenerateDialogueRequiresPersonas(t *testing.T) {
	g := dialogueGateway(t, &scriptedAdapter{}, &scriptedAdapter{}, &scriptedAdapter{})

	_, err := g.GenerateDialogue(context.Background(), nil, "topic", nil, nil)
	require.Error(t, err)
}
