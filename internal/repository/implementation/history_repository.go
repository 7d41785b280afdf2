package implementation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yamanekazuki/hr-qa-assistant/internal/entity"
	"github.com/yamanekazuki/hr-qa-assistant/internal/repository"
)

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) repository.HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) CreateRecord(ctx context.Context, record *entity.QueryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *historyRepository) AttachInsights(ctx context.Context, recordID uuid.UUID, insights []byte) error {
	return r.db.WithContext(ctx).
		Model(&entity.QueryRecord{}).
		Where("id = ?", recordID).
		Update("insights", insights).Error
}

func (r *historyRepository) AttachSuggestions(ctx context.Context, recordID uuid.UUID, suggestions []byte) error {
	return r.db.WithContext(ctx).
		Model(&entity.QueryRecord{}).
		Where("id = ?", recordID).
		Update("suggestions", suggestions).Error
}

func (r *historyRepository) ListRecords(ctx context.Context, limit, offset int) ([]entity.QueryRecord, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.QueryRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []entity.QueryRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *historyRepository) CountByOutcome(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "outcome")
}

func (r *historyRepository) CountByGranularity(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "granularity")
}

func (r *historyRepository) countGrouped(ctx context.Context, column string) (map[string]int64, error) {
	type row struct {
		Key   string
		Count int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&entity.QueryRecord{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Count
	}
	return out, nil
}
