package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type QueryOutcome string

const (
	QueryOutcomeAnswered QueryOutcome = "answered"
	QueryOutcomeNotFound QueryOutcome = "not_found"
	QueryOutcomeError    QueryOutcome = "error"
)

// QueryRecord is one persisted question-answer cycle, appended by the
// analytics consumer for the admin history view. Id equals the search tag, so
// late-settling insight/suggestion results can be attached to the right row.
type QueryRecord struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserId      uuid.UUID      `gorm:"type:uuid;index"`
	Query       string         `gorm:"type:text;not null"`
	Granularity string         `gorm:"type:varchar(16);not null"`
	Outcome     QueryOutcome   `gorm:"type:varchar(16);not null;index"`
	Answer      string         `gorm:"type:text"`
	Insights    datatypes.JSON `gorm:"type:jsonb"`
	Suggestions datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time
}
