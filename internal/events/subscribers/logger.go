// Package subscribers contains reusable event bus subscribers.
package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/doribd/TicTacToe-AI-GUI/internal/events"
)

// LoggerSubscriber writes events to structured logs.
type LoggerSubscriber struct {
	id      string
	logger  zerolog.Logger
	level   zerolog.Level
	filter  map[string]bool // nil means log all event types
	verbose bool            // include the full event payload
}

// NewLoggerSubscriber creates a subscriber that logs every event at the
// given level.
func NewLoggerSubscriber(id string, logger zerolog.Logger, level zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:     id,
		logger: logger.With().Str("subscriber", "event_logger").Logger(),
		level:  level,
	}
}

// ID returns the subscriber's unique identifier.
func (ls *LoggerSubscriber) ID() string { return ls.id }

// SetEventFilter restricts logging to the given event types. An empty
// list clears the filter.
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.filter = nil
		return
	}
	ls.filter = make(map[string]bool, len(eventTypes))
	for _, t := range eventTypes {
		ls.filter[t] = true
	}
}

// SetVerbose toggles logging of the full event payload as JSON.
func (ls *LoggerSubscriber) SetVerbose(enabled bool) { ls.verbose = enabled }

// InterestedIn reports whether this event type passes the filter.
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.filter == nil {
		return true
	}
	return ls.filter[eventType]
}

// HandleEvent logs one event.
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	ev := ls.logger.WithLevel(ls.level).
		Str("event_type", event.Type()).
		Str("run_id", event.RunID()).
		Time("event_time", event.Timestamp())

	if ls.verbose {
		if payload, err := json.Marshal(event); err == nil {
			ev = ev.RawJSON("event", payload)
		}
	}
	ev.Msg("Event")
}
