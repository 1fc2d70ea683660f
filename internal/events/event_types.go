package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRecordsChanged EventType = "records_changed"
)

// ChangeAction describes what happened to the records.
type ChangeAction string

const (
	ActionCreated  ChangeAction = "created"
	ActionUpdated  ChangeAction = "updated"
	ActionDeleted  ChangeAction = "deleted"
	ActionReseeded ChangeAction = "reseeded"
)

// Event represents a change emitted by the API or the setup run.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	Collection string      `json:"collection"`
	Actor      string      `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// RecordsChangedPayload payload.
type RecordsChangedPayload struct {
	Action   ChangeAction `json:"action"`
	RecordID string       `json:"record_id,omitempty"`
	Count    int64        `json:"count,omitempty"`
}

// NewRecordsChanged builds a records_changed event for collection.
func NewRecordsChanged(collection, actor string, payload RecordsChangedPayload) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       EventRecordsChanged,
		Collection: collection,
		Actor:      actor,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}
