package service

import (
	"context"
	"encoding/json"

	"github.com/yamanekazuki/hr-qa-assistant/internal/dto"
	"github.com/yamanekazuki/hr-qa-assistant/internal/entity"
	"github.com/yamanekazuki/hr-qa-assistant/internal/pkg/logger"
	"github.com/yamanekazuki/hr-qa-assistant/internal/repository"
)

// IAdminService serves the operator views: persisted query history, aggregate
// usage stats, and application log inspection.
type IAdminService interface {
	History(ctx context.Context, limit, offset int) (*dto.HistoryResponse, error)
	Stats(ctx context.Context) (*dto.UsageStatsResponse, error)
	Logs(level string, limit, offset int) ([]logger.LogEntry, error)
}

type adminService struct {
	historyRepo repository.HistoryRepository
	logger      logger.ILogger
}

func NewAdminService(historyRepo repository.HistoryRepository, sysLogger logger.ILogger) IAdminService {
	return &adminService{historyRepo: historyRepo, logger: sysLogger}
}

func (s *adminService) History(ctx context.Context, limit, offset int) (*dto.HistoryResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	records, total, err := s.historyRepo.ListRecords(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	out := make([]dto.QueryRecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toQueryRecordResponse(record))
	}
	return &dto.HistoryResponse{Records: out, Total: total}, nil
}

func (s *adminService) Stats(ctx context.Context) (*dto.UsageStatsResponse, error) {
	byOutcome, err := s.historyRepo.CountByOutcome(ctx)
	if err != nil {
		return nil, err
	}
	byGranularity, err := s.historyRepo.CountByGranularity(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range byOutcome {
		total += n
	}
	return &dto.UsageStatsResponse{
		TotalQueries:  total,
		ByOutcome:     byOutcome,
		ByGranularity: byGranularity,
	}, nil
}

func (s *adminService) Logs(level string, limit, offset int) ([]logger.LogEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.logger.GetLogs(level, limit, offset)
}

func toQueryRecordResponse(record entity.QueryRecord) dto.QueryRecordResponse {
	res := dto.QueryRecordResponse{
		Id:          record.Id,
		UserId:      record.UserId,
		Query:       record.Query,
		Granularity: record.Granularity,
		Outcome:     string(record.Outcome),
		Answer:      record.Answer,
		CreatedAt:   record.CreatedAt,
	}
	if len(record.Insights) > 0 {
		_ = json.Unmarshal(record.Insights, &res.Insights)
	}
	if len(record.Suggestions) > 0 {
		_ = json.Unmarshal(record.Suggestions, &res.Suggestions)
	}
	return res
}
