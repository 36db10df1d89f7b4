package session

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// SESSION CRISIS TRACKING TYPES
// ============================================================================
// A session accumulates two kinds of history:
//   - turns: the recent user messages and reported emotional states, kept in
//     a small in-process ring and used to derive context signals
//   - crisis events: every analysis that crossed the recording threshold,
//     persisted through an EventStore so escalation checks survive restarts
//     when a durable store is configured

// CrisisEvent is one recorded crisis observation for a session. Immutable
// once appended.
type CrisisEvent struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Timestamp  time.Time `json:"timestamp"`
	Level      int       `json:"crisis_level"` // 0-10
	Type       string    `json:"crisis_type"`
	Categories []string  `json:"contributing_categories,omitempty"`
	Intervened bool      `json:"intervention"` // an intervention response was issued
}

// NewCrisisEvent builds an event with a fresh ID and the current time.
func NewCrisisEvent(sessionID string, level int, crisisType string, categories []string, intervened bool) CrisisEvent {
	return CrisisEvent{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Timestamp:  time.Now().UTC(),
		Level:      level,
		Type:       crisisType,
		Categories: categories,
		Intervened: intervened,
	}
}

// Turn is one observed user turn: the message plus the emotional state the
// caller attributed to it (empty when unknown).
type Turn struct {
	Message string
	Emotion string
}

// ContextSignals summarizes session history for the risk calculation. The
// zero value means "no signal", which is also what callers fall back to when
// history is unavailable.
type ContextSignals struct {
	RepeatedCrisisThemes   int  `json:"repeated_crisis_themes"`  // lexicon hits across recent turns
	EscalationDetected     bool `json:"escalation_detected"`     // themes above the repeat threshold
	EmotionalDeterioration bool `json:"emotional_deterioration"` // sustained negative emotional trend
	PreviousInterventions  int  `json:"previous_interventions"`  // recorded crisis events this session
}

// negativeEmotions are the states counted toward deterioration.
var negativeEmotions = map[string]bool{
	"sad":      true,
	"anxious":  true,
	"hopeless": true,
	"angry":    true,
}

// IsNegativeEmotion reports whether an emotional state counts toward the
// deterioration trend.
func IsNegativeEmotion(emotion string) bool {
	return negativeEmotions[emotion]
}
