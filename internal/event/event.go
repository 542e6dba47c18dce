// Package event carries runtime notifications from the session state
// machine to its subscribers (presentation, reward ledger) without either
// side importing the other.
package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a "category.action" identifier, e.g. "session.completed".
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Base provides the common fields. Embed it in concrete event types.
type Base struct {
	Type string
	At   time.Time
}

func (b Base) EventType() string    { return b.Type }
func (b Base) Timestamp() time.Time { return b.At }

// NewBase creates a Base stamped with the current time.
func NewBase(eventType string) Base {
	return Base{Type: eventType, At: time.Now()}
}
