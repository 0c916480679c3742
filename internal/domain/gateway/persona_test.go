package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPersonas() []*Persona {
	return []*Persona{
		{ID: "tech-expert", Name: "Tech Expert", ProviderID: "openai", Model: "gpt-4o", KnowledgeLevel: KnowledgeExpert},
		{ID: "friendly-helper", Name: "Friendly Helper", ProviderID: "openai", Model: "gpt-4o-mini", KnowledgeLevel: KnowledgeBeginner},
		{ID: "claude-analyst", Name: "Analyst", ProviderID: "anthropic", Model: "claude-sonnet-4-20250514", KnowledgeLevel: KnowledgeExpert},
		{ID: "gemini-tutor", Name: "Tutor", ProviderID: "google", Model: "gemini-2.0-flash", KnowledgeLevel: KnowledgeIntermediate},
	}
}

func TestRegistryFind(t *testing.T) {
	r := NewPersonaRegistry(testPersonas())

	p, ok := r.Find("claude-analyst")
	require.True(t, ok)
	assert.Equal(t, "anthropic", p.ProviderID)

	_, ok = r.Find("missing")
	assert.False(t, ok)
}

func TestRegistryAllKeepsLoadOrder(t *testing.T) {
	r := NewPersonaRegistry(testPersonas())

	var ids []string
	for _, p := range r.All() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"tech-expert", "friendly-helper", "claude-analyst", "gemini-tutor"}, ids)
}

func TestRegistryForPlan(t *testing.T) {
	r := NewPersonaRegistry(testPersonas())

	starter := r.ForPlan(PlanStarter)
	require.Len(t, starter, 2)
	for _, p := range starter {
		assert.Equal(t, "openai", p.ProviderID)
	}

	enterprise := r.ForPlan(PlanEnterprise)
	assert.Len(t, enterprise, 4)

	// Starter is a strict, non-empty subset of enterprise.
	assert.Greater(t, len(enterprise), len(starter))
	assert.NotEmpty(t, starter)

	pro := r.ForPlan(PlanPro)
	assert.Len(t, pro, 4)

	assert.Nil(t, r.ForPlan(Plan("trial")))
}

func TestSameLevelOnProvider(t *testing.T) {
	r := NewPersonaRegistry(testPersonas())

	p, ok := r.SameLevelOnProvider("anthropic", KnowledgeExpert)
	require.True(t, ok)
	assert.Equal(t, "claude-analyst", p.ID)

	_, ok = r.SameLevelOnProvider("anthropic", KnowledgeBeginner)
	assert.False(t, ok)

	_, ok = r.SameLevelOnProvider("unknown", KnowledgeExpert)
	assert.False(t, ok)
}

func TestSameLevelOnProviderDeterministicTie(t *testing.T) {
	r := NewPersonaRegistry([]*Persona{
		{ID: "zeta", ProviderID: "openai", KnowledgeLevel: KnowledgeExpert},
		{ID: "alpha", ProviderID: "openai", KnowledgeLevel: KnowledgeExpert},
	})

	p, ok := r.SameLevelOnProvider("openai", KnowledgeExpert)
	require.True(t, ok)
	assert.Equal(t, "alpha", p.ID)
}
