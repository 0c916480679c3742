package usage

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"geofora/ai-gateway/internal/domain/gateway"
)

// Service accounts completed and failed generation calls. It is invoked by
// the serving layer after dispatch; the gateway core never touches it.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Enabled reports whether usage persistence is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.repo != nil
}

// RecordSuccess accounts a served response.
func (s *Service) RecordSuccess(ctx context.Context, requestID, personaID, plan string, resp *gateway.Response) {
	if !s.Enabled() || resp == nil {
		return
	}
	record := &Record{
		RequestID:        requestID,
		Provider:         resp.Provider,
		Model:            resp.Model,
		PersonaID:        personaID,
		Plan:             plan,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
		Cost:             CostFor(resp.Provider, resp.Model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens),
		Success:          true,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		// Accounting must never fail a served request.
		s.log.Error().Err(err).Str("request_id", requestID).Msg("failed to persist usage record")
	}
}

// RecordFailure accounts a dispatch that exhausted all candidates.
func (s *Service) RecordFailure(ctx context.Context, requestID, personaID, plan, provider, model string) {
	if !s.Enabled() {
		return
	}
	record := &Record{
		RequestID: requestID,
		Provider:  provider,
		Model:     model,
		PersonaID: personaID,
		Plan:      plan,
		Success:   false,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		s.log.Error().Err(err).Str("request_id", requestID).Msg("failed to persist usage record")
	}
}

// Summary aggregates per-provider usage since the given cutoff.
func (s *Service) Summary(ctx context.Context, since time.Time) ([]ProviderSummary, error) {
	if !s.Enabled() {
		return nil, nil
	}
	return s.repo.SummarizeSince(ctx, since)
}
