package gateway

import (
	"sort"
)

// KnowledgeLevel grades how deep a persona's answers go. Fallback personas
// must match the original persona's level so the response voice degrades as
// little as possible.
type KnowledgeLevel string

const (
	KnowledgeBeginner     KnowledgeLevel = "beginner"
	KnowledgeIntermediate KnowledgeLevel = "intermediate"
	KnowledgeExpert       KnowledgeLevel = "expert"
)

// Persona is a named binding of provider+model+prompt parameters presented to
// end users as a distinct voice. Immutable after load.
type Persona struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	ProviderID     string         `json:"provider_id"`
	Model          string         `json:"model"`
	SystemPrompt   string         `json:"system_prompt"`
	Temperature    float32        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	KnowledgeLevel KnowledgeLevel `json:"knowledge_level"`
}

// Plan is a subscription tier. Each tier unlocks an allow-list of providers.
type Plan string

const (
	PlanStarter    Plan = "starter"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// planProviders maps each plan to its provider allow-list. A nil list means
// every provider is allowed.
var planProviders = map[Plan][]string{
	PlanStarter:    {string(ProviderOpenAI)},
	PlanPro:        {string(ProviderOpenAI), string(ProviderAnthropic), string(ProviderGoogle)},
	PlanEnterprise: nil,
}

// PersonaRegistry holds the static persona set, resolved once per request.
type PersonaRegistry struct {
	byID  map[string]*Persona
	order []string
}

// NewPersonaRegistry builds a registry from the loaded persona set. Later
// duplicates of an id replace earlier ones.
func NewPersonaRegistry(personas []*Persona) *PersonaRegistry {
	r := &PersonaRegistry{byID: make(map[string]*Persona, len(personas))}
	for _, p := range personas {
		if _, exists := r.byID[p.ID]; !exists {
			r.order = append(r.order, p.ID)
		}
		r.byID[p.ID] = p
	}
	return r
}

// Find resolves a persona by id.
func (r *PersonaRegistry) Find(id string) (*Persona, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// All returns every persona in load order.
func (r *PersonaRegistry) All() []*Persona {
	result := make([]*Persona, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.byID[id])
	}
	return result
}

// ForPlan filters personas down to those bound to a provider the plan allows.
func (r *PersonaRegistry) ForPlan(plan Plan) []*Persona {
	allowed, ok := planProviders[plan]
	if !ok {
		return nil
	}
	if allowed == nil {
		return r.All()
	}

	allowSet := make(map[string]bool, len(allowed))
	for _, id := range allowed {
		allowSet[id] = true
	}

	result := make([]*Persona, 0, len(r.order))
	for _, id := range r.order {
		p := r.byID[id]
		if allowSet[p.ProviderID] {
			result = append(result, p)
		}
	}
	return result
}

// SameLevelOnProvider returns the first persona bound to the given provider
// with a matching knowledge level, used when substituting personas during
// fallback. Ordering is deterministic (load order, then id).
func (r *PersonaRegistry) SameLevelOnProvider(providerID string, level KnowledgeLevel) (*Persona, bool) {
	candidates := make([]*Persona, 0, 2)
	for _, id := range r.order {
		p := r.byID[id]
		if p.ProviderID == providerID && p.KnowledgeLevel == level {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })
	return candidates[0], true
}
