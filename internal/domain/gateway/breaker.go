package gateway

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultFailureThreshold is the consecutive-failure count that opens a
	// provider's breaker.
	DefaultFailureThreshold = 5
	// DefaultCooldown is how long an open breaker blocks calls before the
	// optimistic retry.
	DefaultCooldown = 5 * time.Minute
)

// BreakerState is the per-provider circuit state exposed for status
// reporting.
type BreakerState struct {
	Open                bool
	ConsecutiveFailures int
	OpenedAt            time.Time
	NextRetryAt         time.Time
}

// BreakerSet tracks one circuit breaker per provider. The breaker is
// deliberately simple: no half-open concurrency limiting — after the cooldown
// it closes optimistically and the next call's outcome decides whether it
// re-opens.
type BreakerSet struct {
	mu        sync.Mutex
	states    map[string]*BreakerState
	threshold int
	cooldown  time.Duration
	now       func() time.Time
	log       zerolog.Logger
}

// NewBreakerSet builds a breaker set. Non-positive threshold/cooldown fall
// back to the defaults.
func NewBreakerSet(threshold int, cooldown time.Duration, log zerolog.Logger) *BreakerSet {
	if threshold <= 0 {
		threshold = DefaultFailureThreshold
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &BreakerSet{
		states:    make(map[string]*BreakerState),
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
		log:       log,
	}
}

func (b *BreakerSet) state(providerID string) *BreakerState {
	s, ok := b.states[providerID]
	if !ok {
		s = &BreakerState{}
		b.states[providerID] = s
	}
	return s
}

// Allow reports whether calls to the provider may proceed. An open breaker
// whose cooldown has elapsed transitions back to closed here, letting exactly
// one caller through to probe the backend.
func (b *BreakerSet) Allow(providerID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.state(providerID)
	if !s.Open {
		return true
	}
	if b.now().Before(s.NextRetryAt) {
		return false
	}

	s.Open = false
	b.log.Info().Str("provider", providerID).Msg("circuit breaker cooldown elapsed, closing for retry")
	return true
}

// RecordSuccess resets the failure count and closes the breaker if open.
func (b *BreakerSet) RecordSuccess(providerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.state(providerID)
	if s.Open {
		b.log.Info().Str("provider", providerID).Msg("circuit breaker closing after successful call")
	}
	s.Open = false
	s.ConsecutiveFailures = 0
	s.OpenedAt = time.Time{}
	s.NextRetryAt = time.Time{}
}

// RecordFailure increments the failure count and opens the breaker when the
// threshold is reached.
func (b *BreakerSet) RecordFailure(providerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.state(providerID)
	s.ConsecutiveFailures++
	if s.Open || s.ConsecutiveFailures < b.threshold {
		if s.Open {
			// Failed optimistic retry: re-open for another full cooldown.
			s.OpenedAt = b.now()
			s.NextRetryAt = s.OpenedAt.Add(b.cooldown)
		}
		return
	}

	now := b.now()
	s.Open = true
	s.OpenedAt = now
	s.NextRetryAt = now.Add(b.cooldown)
	b.log.Warn().
		Str("provider", providerID).
		Int("consecutive_failures", s.ConsecutiveFailures).
		Time("next_retry_at", s.NextRetryAt).
		Msg("circuit breaker opened")
}

// State returns a copy of the provider's breaker state.
func (b *BreakerSet) State(providerID string) BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return *b.state(providerID)
}

// NextRetryAt returns when an open breaker will next allow a call.
func (b *BreakerSet) NextRetryAt(providerID string) time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state(providerID).NextRetryAt
}
