package session

import (
	"context"
	"sync"

	"github.com/mindbridge-care/sentinel/pkg/lexicon"
)

const (
	// maxTurns bounds the in-process turn ring per session.
	maxTurns = 5

	// recentThemeTurns is how many recent turns are scanned for repeated
	// crisis themes.
	recentThemeTurns = 3

	// repeatThreshold: more lexicon hits than this across recent turns
	// counts as escalation.
	repeatThreshold = 2

	// deteriorationMin: this many negative emotions in the turn ring counts
	// as emotional deterioration.
	deteriorationMin = 3
)

// Tracker owns the per-session view of a conversation: the recent turn ring
// used to derive context signals, the per-session analysis lock, and the
// crisis events delegated to the configured EventStore.
//
// Analyses for one session must be serialized; callers wrap each analysis in
// LockSession. Different sessions proceed concurrently.
type Tracker struct {
	store    EventStore
	registry *lexicon.Registry

	mu       sync.Mutex
	sessions map[string]*sessionState
}

type sessionState struct {
	mu    sync.Mutex
	turns []Turn
}

// NewTracker creates a tracker over the given store and lexicon registry.
func NewTracker(store EventStore, registry *lexicon.Registry) *Tracker {
	return &Tracker{
		store:    store,
		registry: registry,
		sessions: make(map[string]*sessionState),
	}
}

func (t *Tracker) state(sessionID string) *sessionState {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.sessions[sessionID]
	if !ok {
		st = &sessionState{}
		t.sessions[sessionID] = st
	}
	return st
}

// LockSession acquires the per-session analysis lock and returns the unlock
// function. Verdicts within one session observe each other's recorded
// history because every analysis runs under this lock.
func (t *Tracker) LockSession(sessionID string) (unlock func()) {
	st := t.state(sessionID)
	st.mu.Lock()
	return st.mu.Unlock
}

// Context derives context signals from history recorded before the current
// turn. The in-memory signals are always computed; if the event store fails,
// the store-backed count stays zero and the error is returned so the caller
// can log the degradation without losing the rest of the signals.
func (t *Tracker) Context(ctx context.Context, sessionID string) (ContextSignals, error) {
	st := t.state(sessionID)

	var signals ContextSignals

	themes := 0
	turns := st.turns
	recent := turns
	if len(recent) > recentThemeTurns {
		recent = recent[len(recent)-recentThemeTurns:]
	}
	for _, turn := range recent {
		report := t.registry.MatchCategories(turn.Message)
		for _, hit := range report.Matches {
			themes += hit.Count
		}
	}
	signals.RepeatedCrisisThemes = themes
	signals.EscalationDetected = themes > repeatThreshold

	negative := 0
	for _, turn := range turns {
		if IsNegativeEmotion(turn.Emotion) {
			negative++
		}
	}
	signals.EmotionalDeterioration = negative >= deteriorationMin

	count, err := t.store.EventCount(ctx, sessionID)
	if err != nil {
		return signals, err
	}
	signals.PreviousInterventions = count

	return signals, nil
}

// RecordTurn appends the current turn to the session's ring, trimming to the
// window. Call after Context so the current message does not count toward
// its own history signals.
func (t *Tracker) RecordTurn(sessionID string, turn Turn) {
	st := t.state(sessionID)

	st.turns = append(st.turns, turn)
	if len(st.turns) > maxTurns {
		st.turns = st.turns[len(st.turns)-maxTurns:]
	}
}

// RecordEvent persists a crisis event through the store.
func (t *Tracker) RecordEvent(ctx context.Context, event CrisisEvent) error {
	return t.store.AppendEvent(ctx, event)
}

// RecentEvents returns up to n stored events for the session, oldest first.
func (t *Tracker) RecentEvents(ctx context.Context, sessionID string, n int) ([]CrisisEvent, error) {
	return t.store.RecentEvents(ctx, sessionID, n)
}

// EndSession tears down all state for a session, in memory and in the store.
// Sessions are never reaped implicitly; this is the only way history leaves
// the tracker.
func (t *Tracker) EndSession(ctx context.Context, sessionID string) error {
	t.mu.Lock()
	delete(t.sessions, sessionID)
	t.mu.Unlock()

	return t.store.EndSession(ctx, sessionID)
}

// ActiveSessions reports how many sessions currently hold in-memory state.
func (t *Tracker) ActiveSessions() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.sessions)
}
