package dto

import "github.com/google/uuid"

// QueryAnsweredMessage is published on the analytics bus once the main answer
// settles. RecordId is the search tag of the originating submit.
type QueryAnsweredMessage struct {
	RecordId    uuid.UUID `json:"record_id"`
	UserId      uuid.UUID `json:"user_id"`
	Query       string    `json:"query"`
	Granularity string    `json:"granularity"`
	Outcome     string    `json:"outcome"`
	Answer      string    `json:"answer"`
}

// QueryEnrichedMessage is published when a secondary request settles with
// usable data. Only one of the two fields is set per message.
type QueryEnrichedMessage struct {
	RecordId    uuid.UUID `json:"record_id"`
	Insights    []string  `json:"insights,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
}
