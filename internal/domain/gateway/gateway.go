package gateway

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config tunes the gateway's local protection mechanisms.
type Config struct {
	RateWindow       time.Duration
	FailureThreshold int
	Cooldown         time.Duration
}

// healthStatus is the mutable slice of provider state owned by the gateway.
// It is written by call outcomes and by the health prober, and read by
// dispatch and the status endpoints.
type healthStatus struct {
	healthy          bool
	lastCheckedAt    time.Time
	lastProbeLatency time.Duration
}

// Gateway dispatches generation requests across providers, enforcing rate
// budgets and circuit breaking, and failing over along a candidate chain. It
// owns all mutable per-provider state; construct one per process and share it
// by reference.
type Gateway struct {
	providers map[string]*Provider
	adapters  map[string]ProviderAdapter
	personas  *PersonaRegistry
	limiter   *FixedWindowLimiter
	breakers  *BreakerSet

	mu     sync.Mutex
	health map[string]*healthStatus

	log zerolog.Logger
}

// New builds a gateway over the given providers and their adapters. Every
// provider must have a matching adapter entry.
func New(cfg Config, providers []*Provider, adapters map[string]ProviderAdapter, personas *PersonaRegistry, log zerolog.Logger) (*Gateway, error) {
	limits := make(map[string]RateLimits, len(providers))
	providerMap := make(map[string]*Provider, len(providers))
	health := make(map[string]*healthStatus, len(providers))

	for _, p := range providers {
		if _, ok := adapters[p.ID]; !ok {
			return nil, fmt.Errorf("gateway: provider %q has no adapter", p.ID)
		}
		providerMap[p.ID] = p
		limits[p.ID] = p.RateLimits
		// Providers start healthy; the first probe round runs immediately on
		// startup and corrects this if needed.
		health[p.ID] = &healthStatus{healthy: true}
	}

	return &Gateway{
		providers: providerMap,
		adapters:  adapters,
		personas:  personas,
		limiter:   NewFixedWindowLimiter(cfg.RateWindow, limits),
		breakers:  NewBreakerSet(cfg.FailureThreshold, cfg.Cooldown, log),
		health:    health,
		log:       log,
	}, nil
}

// Personas exposes the persona registry for the serving layer.
func (g *Gateway) Personas() *PersonaRegistry {
	return g.personas
}

// Providers returns the static provider descriptors.
func (g *Gateway) Providers() []*Provider {
	result := make([]*Provider, 0, len(g.providers))
	for _, p := range g.providers {
		result = append(result, p)
	}
	return result
}

// Adapter returns the adapter for a provider id.
func (g *Gateway) Adapter(providerID string) (ProviderAdapter, bool) {
	a, ok := g.adapters[providerID]
	return a, ok
}

// candidate is one entry in a dispatch chain: a provider plus the request
// shaped for it. Persona chains produce per-candidate requests; plain
// provider chains reuse one request.
type candidate struct {
	providerID string
	personaID  string
	req        *Request
}

// GenerateWithFallback dispatches a request to the primary provider, failing
// over along the fallback chain. Candidates that are inactive, circuit-open,
// or over their rate budget are skipped without touching the backend.
func (g *Gateway) GenerateWithFallback(ctx context.Context, primary string, messages []Message, opts GenerateOptions, fallbacks []string) (*Response, error) {
	req := &Request{
		Model:           opts.Model,
		Messages:        messages,
		Temperature:     opts.Temperature,
		MaxTokens:       opts.MaxTokens,
		BusinessContext: opts.BusinessContext,
	}

	chain := make([]candidate, 0, 1+len(fallbacks))
	for _, id := range append([]string{primary}, fallbacks...) {
		chain = append(chain, candidate{providerID: id, req: req})
	}
	return g.dispatch(ctx, chain)
}

// GenerateWithPersona resolves the persona to its provider and parameters and
// dispatches, failing over along the persona chain. A fallback persona is
// used only if its knowledge level matches the original's; fallback providers
// with no same-level persona are skipped.
func (g *Gateway) GenerateWithPersona(ctx context.Context, personaID, prompt string, bizCtx *BusinessContext, fallbackPersonaIDs []string) (*Response, error) {
	primary, ok := g.personas.Find(personaID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPersonaNotFound, personaID)
	}

	chain := []candidate{personaCandidate(primary, prompt, bizCtx)}
	for _, id := range fallbackPersonaIDs {
		p, ok := g.personas.Find(id)
		if !ok {
			g.log.Warn().Str("persona", id).Msg("skipping unknown fallback persona")
			continue
		}
		if p.KnowledgeLevel != primary.KnowledgeLevel {
			substitute, found := g.personas.SameLevelOnProvider(p.ProviderID, primary.KnowledgeLevel)
			if !found {
				g.log.Debug().
					Str("persona", id).
					Str("provider", p.ProviderID).
					Str("level", string(primary.KnowledgeLevel)).
					Msg("no same-level persona on fallback provider, skipping")
				continue
			}
			p = substitute
		}
		chain = append(chain, personaCandidate(p, prompt, bizCtx))
	}

	return g.dispatch(ctx, chain)
}

func personaCandidate(p *Persona, prompt string, bizCtx *BusinessContext) candidate {
	return candidate{
		providerID: p.ProviderID,
		personaID:  p.ID,
		req: &Request{
			Model: p.Model,
			Messages: []Message{
				{Role: RoleSystem, Content: p.SystemPrompt},
				{Role: RoleUser, Content: prompt},
			},
			Temperature:     p.Temperature,
			MaxTokens:       p.MaxTokens,
			BusinessContext: bizCtx,
		},
	}
}

// dispatch walks the candidate chain in order. The breaker gate runs before
// the rate-limit gate so a known-bad provider never consumes budget. Local
// rejections (circuit open, rate limit) are folded into the aggregate error
// rather than surfaced on their own.
func (g *Gateway) dispatch(ctx context.Context, chain []candidate) (*Response, error) {
	attempts := make([]Attempt, 0, len(chain))

	for _, c := range chain {
		provider, ok := g.providers[c.providerID]
		if !ok {
			attempts = append(attempts, Attempt{Provider: c.providerID, Err: ErrUnknownProvider})
			continue
		}
		if !provider.Active {
			attempts = append(attempts, Attempt{Provider: c.providerID, Err: fmt.Errorf("provider %s inactive (no credentials)", c.providerID)})
			continue
		}
		if !g.breakers.Allow(c.providerID) {
			attempts = append(attempts, Attempt{Provider: c.providerID, Err: &CircuitOpenError{
				Provider: c.providerID,
				RetryAt:  g.breakers.NextRetryAt(c.providerID),
			}})
			continue
		}

		estimated := EstimateMessageTokens(c.req.Messages)
		if !g.limiter.Admit(c.providerID, estimated) {
			attempts = append(attempts, Attempt{Provider: c.providerID, Err: &RateLimitExceededError{
				Provider: c.providerID,
				ResetAt:  g.limiter.ResetAt(c.providerID),
			}})
			continue
		}

		resp, err := g.adapters[c.providerID].Generate(ctx, c.req)
		if err != nil {
			g.breakers.RecordFailure(c.providerID)
			g.recordOutcome(c.providerID, false)
			g.log.Warn().
				Err(err).
				Str("provider", c.providerID).
				Str("persona", c.personaID).
				Msg("provider call failed, trying next candidate")
			attempts = append(attempts, Attempt{Provider: c.providerID, Err: err})
			continue
		}

		tokens := resp.Usage.TotalTokens
		if tokens == 0 {
			tokens = estimated
		}
		g.limiter.Record(c.providerID, tokens)
		g.breakers.RecordSuccess(c.providerID)
		g.recordOutcome(c.providerID, true)
		return resp, nil
	}

	if len(chain) == 1 && len(attempts) == 1 {
		// No fallback chain: surface the single failure as-is.
		return nil, attempts[0].Err
	}
	return nil, &AllProvidersExhaustedError{Attempts: attempts}
}

// recordOutcome updates health state from a call result, mirroring what the
// prober writes.
func (g *Gateway) recordOutcome(providerID string, success bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if h, ok := g.health[providerID]; ok {
		h.healthy = success
		h.lastCheckedAt = time.Now()
	}
}

// RecordProbe stores a health-probe result. Called only by the health prober;
// it must never block dispatch, so it takes the same short-lived lock the
// status readers use.
func (g *Gateway) RecordProbe(providerID string, healthy bool, latency time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if h, ok := g.health[providerID]; ok {
		h.healthy = healthy
		h.lastCheckedAt = time.Now()
		h.lastProbeLatency = latency
	}
}

// ProviderStatus assembles the point-in-time view of one provider.
func (g *Gateway) ProviderStatus(providerID string) (ProviderStatus, error) {
	p, ok := g.providers[providerID]
	if !ok {
		return ProviderStatus{}, fmt.Errorf("%w: %s", ErrUnknownProvider, providerID)
	}

	g.mu.Lock()
	h := *g.health[providerID]
	g.mu.Unlock()

	breaker := g.breakers.State(providerID)
	requests, tokens, resetAt := g.limiter.Snapshot(providerID)

	return ProviderStatus{
		ID:                  p.ID,
		DisplayName:         p.DisplayName,
		Active:              p.Active,
		Healthy:             h.healthy,
		LastCheckedAt:       h.lastCheckedAt,
		LastProbeLatency:    h.lastProbeLatency,
		ConsecutiveFailures: breaker.ConsecutiveFailures,
		CircuitOpen:         breaker.Open,
		NextRetryAt:         breaker.NextRetryAt,
		WindowRequests:      requests,
		WindowTokens:        tokens,
		WindowResetAt:       resetAt,
	}, nil
}

// AllProviderStatuses returns the status of every provider, ordered by id.
func (g *Gateway) AllProviderStatuses() []ProviderStatus {
	ids := make([]string, 0, len(g.providers))
	for id := range g.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]ProviderStatus, 0, len(ids))
	for _, id := range ids {
		status, err := g.ProviderStatus(id)
		if err != nil {
			continue
		}
		result = append(result, status)
	}
	return result
}

// UnhealthyProviderIDs returns the ids of active providers currently marked
// unhealthy; the prober's fast cadence re-probes only these.
func (g *Gateway) UnhealthyProviderIDs() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var ids []string
	for id, h := range g.health {
		if g.providers[id].Active && !h.healthy {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// ActiveProviderIDs returns the ids of providers constructed with
// credentials, ordered by id.
func (g *Gateway) ActiveProviderIDs() []string {
	var ids []string
	for id, p := range g.providers {
		if p.Active {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

