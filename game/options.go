package game

import (
	"log/slog"

	"github.com/lazharichir/handreplay/events"
)

// Option configures an Engine.
type Option func(*Engine)

// WithEventStore records every replay event in store, keyed by hand ID.
func WithEventStore(store events.EventStore) Option {
	return func(e *Engine) {
		e.eventStore = store
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
