package dbschema

import (
	"time"

	"github.com/shopspring/decimal"

	"geofora/ai-gateway/internal/domain/usage"
	"geofora/ai-gateway/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(&UsageRecord{})
}

// UsageRecord persists per-call token and cost accounting.
type UsageRecord struct {
	ID               uint            `gorm:"primaryKey"`
	RequestID        string          `gorm:"type:varchar(64);index"`
	Provider         string          `gorm:"type:varchar(32);not null;index"`
	Model            string          `gorm:"type:varchar(128)"`
	PersonaID        string          `gorm:"type:varchar(64);index"`
	Plan             string          `gorm:"type:varchar(32)"`
	PromptTokens     int             `gorm:"not null;default:0"`
	CompletionTokens int             `gorm:"not null;default:0"`
	TotalTokens      int             `gorm:"not null;default:0"`
	Cost             decimal.Decimal `gorm:"type:numeric(12,6);not null;default:0"`
	Success          bool            `gorm:"not null;index"`
	CreatedAt        time.Time       `gorm:"index"`
}

// EtoD converts schema model to domain representation.
func (r *UsageRecord) EtoD() *usage.Record {
	if r == nil {
		return nil
	}
	return &usage.Record{
		ID:               r.ID,
		RequestID:        r.RequestID,
		Provider:         r.Provider,
		Model:            r.Model,
		PersonaID:        r.PersonaID,
		Plan:             r.Plan,
		PromptTokens:     r.PromptTokens,
		CompletionTokens: r.CompletionTokens,
		TotalTokens:      r.TotalTokens,
		Cost:             r.Cost,
		Success:          r.Success,
		CreatedAt:        r.CreatedAt,
	}
}

// UsageRecordFromDomain converts domain model to schema representation.
func UsageRecordFromDomain(record *usage.Record) *UsageRecord {
	if record == nil {
		return nil
	}
	return &UsageRecord{
		ID:               record.ID,
		RequestID:        record.RequestID,
		Provider:         record.Provider,
		Model:            record.Model,
		PersonaID:        record.PersonaID,
		Plan:             record.Plan,
		PromptTokens:     record.PromptTokens,
		CompletionTokens: record.CompletionTokens,
		TotalTokens:      record.TotalTokens,
		Cost:             record.Cost,
		Success:          record.Success,
		CreatedAt:        record.CreatedAt,
	}
}
