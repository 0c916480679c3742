package gateway

import (
	"sync"
	"time"
)

// DefaultRateWindow is the fixed-window length shared by all providers.
const DefaultRateWindow = 60 * time.Second

// usageCounter tracks accepted calls inside the current window. Counts are
// valid only while now < resetAt; an expired window reads as zero.
type usageCounter struct {
	requestCount int
	tokenCount   int
	resetAt      time.Time
}

// FixedWindowLimiter enforces per-provider request and token budgets with a
// fixed window counter. Bursts at window boundaries are an accepted tradeoff
// for simplicity; this is not a token bucket.
type FixedWindowLimiter struct {
	mu       sync.Mutex
	window   time.Duration
	limits   map[string]RateLimits
	counters map[string]*usageCounter
	now      func() time.Time
}

// NewFixedWindowLimiter builds a limiter for the given providers. A zero
// window falls back to DefaultRateWindow.
func NewFixedWindowLimiter(window time.Duration, limits map[string]RateLimits) *FixedWindowLimiter {
	if window <= 0 {
		window = DefaultRateWindow
	}
	l := &FixedWindowLimiter{
		window:   window,
		limits:   make(map[string]RateLimits, len(limits)),
		counters: make(map[string]*usageCounter, len(limits)),
		now:      time.Now,
	}
	for id, lim := range limits {
		l.limits[id] = lim
		l.counters[id] = &usageCounter{}
	}
	return l
}

// Admit reports whether a prospective call fits the provider's remaining
// budget. It never mutates the counters: an expired window is treated as
// reset lazily, without writing until a call is actually recorded.
func (l *FixedWindowLimiter) Admit(providerID string, estimatedTokens int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limits, ok := l.limits[providerID]
	if !ok {
		return false
	}

	requests, tokens := 0, 0
	if c := l.counters[providerID]; l.now().Before(c.resetAt) {
		requests, tokens = c.requestCount, c.tokenCount
	}

	return requests < limits.RequestsPerWindow && tokens+estimatedTokens < limits.TokensPerWindow
}

// Record charges a completed call against the provider's window.
func (l *FixedWindowLimiter) Record(providerID string, tokensUsed int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.counters[providerID]
	if !ok {
		return
	}

	now := l.now()
	if !now.Before(c.resetAt) {
		c.requestCount = 0
		c.tokenCount = 0
		c.resetAt = now.Add(l.window)
	}
	c.requestCount++
	c.tokenCount += tokensUsed
}

// Snapshot returns the current window counters for status reporting.
func (l *FixedWindowLimiter) Snapshot(providerID string) (requests, tokens int, resetAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.counters[providerID]
	if !ok {
		return 0, 0, time.Time{}
	}
	if !l.now().Before(c.resetAt) {
		return 0, 0, c.resetAt
	}
	return c.requestCount, c.tokenCount, c.resetAt
}

// ResetAt returns when the provider's current window expires; callers use it
// to tell rejected requests when to retry.
func (l *FixedWindowLimiter) ResetAt(providerID string) time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.counters[providerID]; ok {
		return c.resetAt
	}
	return time.Time{}
}
