package events

import "time"

// Event is the base interface for everything published on the bus.
type Event interface {
	// Type returns the event type string used for filtering and logging.
	Type() string
	// Timestamp returns when the event occurred.
	Timestamp() time.Time
	// RunID returns the training or replay run this event belongs to.
	RunID() string
}

// BaseEvent provides the common fields of every event.
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Run       string    `json:"run_id"`
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) RunID() string        { return e.Run }

// Subscriber receives events it has declared interest in.
type Subscriber interface {
	// ID uniquely identifies the subscriber on a bus.
	ID() string
	// InterestedIn reports whether the subscriber wants this event type.
	InterestedIn(eventType string) bool
	// HandleEvent processes one event. Called synchronously.
	HandleEvent(event Event)
}

// Handler is a function form of Subscriber for single event types.
type Handler func(event Event)
