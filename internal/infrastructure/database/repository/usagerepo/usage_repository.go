package usagerepo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"geofora/ai-gateway/internal/domain/usage"
	"geofora/ai-gateway/internal/infrastructure/database/dbschema"
	"geofora/ai-gateway/internal/utils/platformerrors"
)

type Repository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) usage.Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, record *usage.Record) error {
	model := dbschema.UsageRecordFromDomain(record)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create usage record")
	}
	record.ID = model.ID
	record.CreatedAt = model.CreatedAt
	return nil
}

type summaryRow struct {
	Provider    string
	Requests    int64
	Failures    int64
	TotalTokens int64
	TotalCost   decimal.Decimal
}

func (r *Repository) SummarizeSince(ctx context.Context, since time.Time) ([]usage.ProviderSummary, error) {
	var rows []summaryRow
	err := r.db.WithContext(ctx).
		Model(&dbschema.UsageRecord{}).
		Select(`provider,
			COUNT(*) AS requests,
			COUNT(*) FILTER (WHERE NOT success) AS failures,
			COALESCE(SUM(total_tokens), 0) AS total_tokens,
			COALESCE(SUM(cost), 0) AS total_cost`).
		Where("created_at >= ?", since).
		Group("provider").
		Order("provider").
		Scan(&rows).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to summarize usage")
	}

	result := make([]usage.ProviderSummary, 0, len(rows))
	for _, row := range rows {
		result = append(result, usage.ProviderSummary{
			Provider:    row.Provider,
			Requests:    row.Requests,
			Failures:    row.Failures,
			TotalTokens: row.TotalTokens,
			TotalCost:   row.TotalCost,
		})
	}
	return result, nil
}
