package events

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Bus is a synchronous publish/subscribe hub for training and replay
// events. Publication happens on the publisher's goroutine; a subscriber
// that panics is isolated so it cannot break the others.
type Bus struct {
	mu           sync.RWMutex
	subscribers  map[string]Subscriber
	funcHandlers map[string][]Handler
	logger       zerolog.Logger
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{
		subscribers:  make(map[string]Subscriber),
		funcHandlers: make(map[string][]Handler),
		logger:       log.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe registers a subscriber, replacing any previous subscriber
// with the same ID.
func (b *Bus) Subscribe(s Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[s.ID()] = s
	b.logger.Debug().Str("subscriber_id", s.ID()).Msg("Subscriber added")
}

// Unsubscribe removes a subscriber by ID.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subscribers, id)
	b.logger.Debug().Str("subscriber_id", id).Msg("Subscriber removed")
}

// SubscribeFunc registers a handler for one event type and returns a
// handle that can be logged or used for debugging.
func (b *Bus) SubscribeFunc(eventType string, h Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.funcHandlers[eventType] = append(b.funcHandlers[eventType], h)
	return fmt.Sprintf("%s_func_%d", eventType, len(b.funcHandlers[eventType]))
}

// Publish delivers an event to every interested subscriber synchronously.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	eventType := event.Type()
	for id, s := range b.subscribers {
		if s.InterestedIn(eventType) {
			b.deliver(id, eventType, event, s.HandleEvent)
		}
	}
	for i, h := range b.funcHandlers[eventType] {
		b.deliver(fmt.Sprintf("func_%d", i), eventType, event, h)
	}
}

func (b *Bus) deliver(id, eventType string, event Event, handle func(Event)) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Str("subscriber_id", id).
				Str("event_type", eventType).
				Interface("panic", r).
				Msg("Subscriber panicked while handling event")
		}
	}()
	handle(event)
}

// SubscriberCount returns the number of registered object subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// FuncHandlerCount returns the number of handlers for an event type.
func (b *Bus) FuncHandlerCount(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.funcHandlers[eventType])
}
