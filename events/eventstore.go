package events

import (
	"fmt"
	"sort"
	"sync"
)

// EventStore is the interface for storing and retrieving replay events.
type EventStore interface {
	Append(event Event) error
	LoadEvents(handID string) ([]Event, error)
}

// InMemoryEventStore is an in-memory implementation of the EventStore interface.
type InMemoryEventStore struct {
	events map[string][]Event
	mutex  sync.RWMutex
}

// NewInMemoryEventStore creates a new in-memory event store.
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		events: make(map[string][]Event),
	}
}

// Append adds a new event to the store.
func (s *InMemoryEventStore) Append(event Event) error {
	handID := GetHandID(event)
	if handID == "" {
		return fmt.Errorf("event %s has no handID", event.EventName())
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.events[handID] = append(s.events[handID], event)
	return nil
}

// LoadEvents retrieves all events for the given hand, oldest first.
func (s *InMemoryEventStore) LoadEvents(handID string) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if events, exists := s.events[handID]; exists {
		// Make a copy to avoid potential race conditions
		result := make([]Event, len(events))
		copy(result, events)
		return result, nil
	}

	// Return empty slice if no events found
	return []Event{}, nil
}

// HandIDs lists every hand with recorded events, sorted.
func (s *InMemoryEventStore) HandIDs() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	ids := make([]string, 0, len(s.events))
	for id := range s.events {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reset drops the events of one hand so it can be replayed again from scratch.
func (s *InMemoryEventStore) Reset(handID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.events, handID)
}
