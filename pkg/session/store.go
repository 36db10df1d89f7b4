package session

import (
	"context"
	"fmt"
	"sync"
)

// MaxEvents caps the per-session crisis event history. Older events fall off
// the front so escalation checks always reason over the recent window.
const MaxEvents = 10

// EventStore persists per-session crisis events. Implementations must be safe
// for concurrent use and must enforce the MaxEvents cap.
//
// MemoryStore suits single-node deployments; RedisStore and PGStore back
// multi-node deployments and audit requirements.
type EventStore interface {
	// AppendEvent records an event, evicting the oldest beyond MaxEvents.
	AppendEvent(ctx context.Context, event CrisisEvent) error

	// RecentEvents returns up to n events in chronological order, oldest
	// first. A session with no history yields an empty slice, not an error.
	RecentEvents(ctx context.Context, sessionID string, n int) ([]CrisisEvent, error)

	// EventCount returns the number of retained events for a session.
	EventCount(ctx context.Context, sessionID string) (int, error)

	// EndSession discards all history for a session. Ending an unknown
	// session is a no-op.
	EndSession(ctx context.Context, sessionID string) error
}

// MemoryStore implements EventStore with in-process storage.
type MemoryStore struct {
	mu     sync.RWMutex
	events map[string][]CrisisEvent
}

// NewMemoryStore creates an empty in-memory event store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make(map[string][]CrisisEvent)}
}

func (s *MemoryStore) AppendEvent(_ context.Context, event CrisisEvent) error {
	if event.SessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := append(s.events[event.SessionID], event)
	if len(list) > MaxEvents {
		list = list[len(list)-MaxEvents:]
	}
	s.events[event.SessionID] = list
	return nil
}

func (s *MemoryStore) RecentEvents(_ context.Context, sessionID string, n int) ([]CrisisEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.events[sessionID]
	if n > 0 && len(list) > n {
		list = list[len(list)-n:]
	}
	out := make([]CrisisEvent, len(list))
	copy(out, list)
	return out, nil
}

func (s *MemoryStore) EventCount(_ context.Context, sessionID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.events[sessionID]), nil
}

func (s *MemoryStore) EndSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.events, sessionID)
	return nil
}

// SessionCount returns the number of sessions with retained events.
func (s *MemoryStore) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.events)
}

var _ EventStore = (*MemoryStore)(nil)
