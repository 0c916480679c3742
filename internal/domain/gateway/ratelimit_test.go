package gateway

import (
	"testing"
	"time"
)

func testLimiter(limits RateLimits) (*FixedWindowLimiter, *time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewFixedWindowLimiter(60*time.Second, map[string]RateLimits{"openai": limits})
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiterAdmitUnknownProvider(t *testing.T) {
	l, _ := testLimiter(RateLimits{RequestsPerWindow: 1, TokensPerWindow: 100})
	if l.Admit("nope", 1) {
		t.Fatal("expected rejection for unknown provider")
	}
}

func TestLimiterRequestExhaustion(t *testing.T) {
	l, _ := testLimiter(RateLimits{RequestsPerWindow: 3, TokensPerWindow: 100000})

	for i := 0; i < 3; i++ {
		if !l.Admit("openai", 10) {
			t.Fatalf("call %d should be admitted", i+1)
		}
		l.Record("openai", 10)
	}

	if l.Admit("openai", 10) {
		t.Fatal("4th call in window should be rejected")
	}
}

func TestLimiterTokenExhaustion(t *testing.T) {
	l, _ := testLimiter(RateLimits{RequestsPerWindow: 100, TokensPerWindow: 50})

	if !l.Admit("openai", 30) {
		t.Fatal("first call should be admitted")
	}
	l.Record("openai", 30)

	// 30 + 20 == 50 is not strictly below the budget.
	if l.Admit("openai", 20) {
		t.Fatal("call reaching the token budget should be rejected")
	}
	if !l.Admit("openai", 19) {
		t.Fatal("call below the token budget should be admitted")
	}
}

func TestLimiterWindowReset(t *testing.T) {
	l, now := testLimiter(RateLimits{RequestsPerWindow: 1, TokensPerWindow: 1000})

	l.Record("openai", 10)
	if l.Admit("openai", 10) {
		t.Fatal("window should be exhausted")
	}

	*now = now.Add(61 * time.Second)
	if !l.Admit("openai", 10) {
		t.Fatal("expired window should admit regardless of prior count")
	}

	// Admission after expiry must not have mutated anything.
	requests, tokens, _ := l.Snapshot("openai")
	if requests != 0 || tokens != 0 {
		t.Fatalf("expected lazy reset on read, got requests=%d tokens=%d", requests, tokens)
	}

	l.Record("openai", 5)
	requests, tokens, resetAt := l.Snapshot("openai")
	if requests != 1 || tokens != 5 {
		t.Fatalf("expected fresh window counters, got requests=%d tokens=%d", requests, tokens)
	}
	if want := now.Add(60 * time.Second); !resetAt.Equal(want) {
		t.Fatalf("expected resetAt %v, got %v", want, resetAt)
	}
}

func TestLimiterAdmitHasNoSideEffect(t *testing.T) {
	l, _ := testLimiter(RateLimits{RequestsPerWindow: 10, TokensPerWindow: 1000})

	for i := 0; i < 20; i++ {
		l.Admit("openai", 100)
	}

	requests, tokens, _ := l.Snapshot("openai")
	if requests != 0 || tokens != 0 {
		t.Fatalf("Admit must not mutate counters, got requests=%d tokens=%d", requests, tokens)
	}
}
