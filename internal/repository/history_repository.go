package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/yamanekazuki/hr-qa-assistant/internal/entity"
)

type HistoryRepository interface {
	CreateRecord(ctx context.Context, record *entity.QueryRecord) error
	AttachInsights(ctx context.Context, recordID uuid.UUID, insights []byte) error
	AttachSuggestions(ctx context.Context, recordID uuid.UUID, suggestions []byte) error
	ListRecords(ctx context.Context, limit, offset int) ([]entity.QueryRecord, int64, error)
	CountByOutcome(ctx context.Context) (map[string]int64, error)
	CountByGranularity(ctx context.Context) (map[string]int64, error)
}
