package feed

import (
	"time"
)

// Event is a single protocol event in the feed.
type Event struct {
	// Seq is the unique, strictly increasing position of this event.
	Seq uint64 `json:"seq"`

	// Name is the canonical event name (see pkg/hub event constants).
	Name string `json:"name"`

	// Payload is the typed event payload, one of the pkg/hub event structs.
	Payload interface{} `json:"payload"`

	// Timestamp is the hub-assigned time of the underlying state change.
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates an event with the given name and payload. The sequence
// number is assigned by the feed on append.
func NewEvent(name string, payload interface{}, timestamp time.Time) *Event {
	return &Event{
		Name:      name,
		Payload:   payload,
		Timestamp: timestamp,
	}
}

// WithSeq returns a copy of the event with the assigned sequence number.
func (e *Event) WithSeq(seq uint64) *Event {
	return &Event{
		Seq:       seq,
		Name:      e.Name,
		Payload:   e.Payload,
		Timestamp: e.Timestamp,
	}
}
