package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "QUERY_ANSWERED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewQueryAnsweredEvent is emitted towards external consumers once a query's
// main answer settles.
func NewQueryAnsweredEvent(recordId, userId uuid.UUID, query, granularity, outcome string) Event {
	return BaseEvent{
		Type: "QUERY_ANSWERED",
		Data: map[string]interface{}{
			"record_id":   recordId.String(),
			"user_id":     userId.String(),
			"query":       query,
			"granularity": granularity,
			"outcome":     outcome,
		},
		OccurredAt: time.Now(),
	}
}

// NewUserSignedInEvent is emitted on a successful Google sign-in.
func NewUserSignedInEvent(userId uuid.UUID, email string) Event {
	return BaseEvent{
		Type: "USER_SIGNED_IN",
		Data: map[string]interface{}{
			"user_id": userId.String(),
			"email":   email,
		},
		OccurredAt: time.Now(),
	}
}
