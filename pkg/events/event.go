package events

import "time"

const (
	// EventTypeIndexReload asks every replica to reload the corpus snapshot
	// and swap its in-memory index.
	EventTypeIndexReload = "INDEX_RELOAD"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "INDEX_RELOAD").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
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

// NewIndexReloadEvent marks a reload request. reason is free text for the log
// ("admin endpoint", "startup backfill").
func NewIndexReloadEvent(reason string) Event {
	return BaseEvent{
		Type: EventTypeIndexReload,
		Data: map[string]interface{}{
			"reason": reason,
		},
		OccurredAt: time.Now(),
	}
}
