package dto

import (
	"time"

	"github.com/google/uuid"
)

type QueryRecordResponse struct {
	Id          uuid.UUID `json:"id"`
	UserId      uuid.UUID `json:"user_id"`
	Query       string    `json:"query"`
	Granularity string    `json:"granularity"`
	Outcome     string    `json:"outcome"`
	Answer      string    `json:"answer"`
	Insights    []string  `json:"insights,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type HistoryResponse struct {
	Records []QueryRecordResponse `json:"records"`
	Total   int64                 `json:"total"`
}

type UsageStatsResponse struct {
	TotalQueries  int64            `json:"total_queries"`
	ByOutcome     map[string]int64 `json:"by_outcome"`
	ByGranularity map[string]int64 `json:"by_granularity"`
}
