package events

import (
	"encoding/json"
	"strings"
	"time"
)

// SubjectPrefix is prepended to the event type to form the bus subject.
const SubjectPrefix = "events."

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CHORES_ADDED").
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

func NewEvent(eventType string, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = make(map[string]interface{})
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
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

// Subject returns the bus subject an event of this type is published on.
func Subject(eventType string) string {
	return SubjectPrefix + eventType
}

// TypeFromSubject is the inverse of Subject.
func TypeFromSubject(subject string) string {
	return strings.TrimPrefix(subject, SubjectPrefix)
}

// PayloadString reads a string field, returning "" when it is missing or not a string.
func PayloadString(e Event, key string) string {
	s, _ := e.Payload()[key].(string)
	return s
}

// PayloadInt reads a numeric field. Payloads that went through JSON carry
// float64 numbers, so those are accepted as well.
func PayloadInt(e Event, key string) (int, bool) {
	switch v := e.Payload()[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	default:
		return 0, false
	}
}
