package gateway

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownProvider is returned when a candidate references a provider id
// the gateway was not constructed with.
var ErrUnknownProvider = errors.New("gateway: unknown provider")

// ErrPersonaNotFound is returned when a persona id cannot be resolved.
var ErrPersonaNotFound = errors.New("gateway: persona not found")

// ProviderError reports that a backend rejected or failed a call.
type ProviderError struct {
	Provider   string
	Model      string
	StatusCode int
	Retryable  bool
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %s (model %s) failed with status %d: %v", e.Provider, e.Model, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider %s (model %s) failed: %v", e.Provider, e.Model, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// retryableStatuses are the backend HTTP statuses worth retrying on another
// candidate.
var retryableStatuses = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

var retryableFragments = []string{"rate limit", "timeout", "connection", "network"}

// ClassifyRetryable decides whether a backend failure may succeed on a
// different provider: retryable statuses, or transient-looking error text.
func ClassifyRetryable(statusCode int, message string) bool {
	if retryableStatuses[statusCode] {
		return true
	}
	lower := strings.ToLower(message)
	for _, fragment := range retryableFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

// RateLimitExceededError reports that the local budget for a provider is
// exhausted. The backend is never reached.
type RateLimitExceededError struct {
	Provider string
	ResetAt  time.Time
}

func (e *RateLimitExceededError) Error() string {
	return fmt.Sprintf("provider %s rate limit exceeded, window resets at %s", e.Provider, e.ResetAt.Format(time.RFC3339))
}

// CircuitOpenError reports that a provider is being skipped due to recent
// failures.
type CircuitOpenError struct {
	Provider string
	RetryAt  time.Time
}

func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("provider %s circuit open, retry at %s", e.Provider, e.RetryAt.Format(time.RFC3339))
}

// Attempt records why a single candidate was skipped or failed during a
// dispatch.
type Attempt struct {
	Provider string
	Err      error
}

// AllProvidersExhaustedError aggregates every candidate outcome when a
// dispatch runs out of providers. It is the only failure shape callers see
// from a multi-candidate dispatch.
type AllProvidersExhaustedError struct {
	Attempts []Attempt
}

func (e *AllProvidersExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Provider, a.Err))
	}
	return "all providers exhausted: " + strings.Join(parts, "; ")
}

// Providers returns the ids of every attempted provider, in order.
func (e *AllProvidersExhaustedError) Providers() []string {
	ids := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		ids[i] = a.Provider
	}
	return ids
}
