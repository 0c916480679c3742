package usage

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one accounted generation call. Failed calls are recorded too so
// cost and error rates can be reported side by side.
type Record struct {
	ID               uint
	RequestID        string
	Provider         string
	Model            string
	PersonaID        string
	Plan             string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Cost             decimal.Decimal
	Success          bool
	CreatedAt        time.Time
}

// ProviderSummary aggregates usage per provider over a reporting window.
type ProviderSummary struct {
	Provider     string
	Requests     int64
	Failures     int64
	TotalTokens  int64
	TotalCost    decimal.Decimal
}

// Repository persists usage records.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	SummarizeSince(ctx context.Context, since time.Time) ([]ProviderSummary, error)
}
