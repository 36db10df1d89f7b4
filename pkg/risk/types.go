package risk

import (
	"github.com/mindbridge-care/sentinel/pkg/lexicon"
	"github.com/mindbridge-care/sentinel/pkg/session"
)

// CrisisType classifies the dominant crisis in a message. The set is closed;
// downstream consumers switch on these values.
type CrisisType string

const (
	TypeSuicideRisk       CrisisType = "suicide_risk"
	TypeSelfHarmRisk      CrisisType = "self_harm_risk"
	TypeViolenceRisk      CrisisType = "violence_risk"
	TypeMentalHealthEmer  CrisisType = "mental_health_emergency"
	TypeSubstanceAbuse    CrisisType = "substance_abuse"
	TypeSevereDepression  CrisisType = "severe_depression"
	TypeSocialCrisis      CrisisType = "social_crisis"
	TypeEmotionalDistress CrisisType = "emotional_distress"

	// TypeUnknown appears only in the conservative fallback verdict when
	// analysis itself failed.
	TypeUnknown CrisisType = "unknown"
)

// Urgency grades how fast a human should act on a verdict.
type Urgency string

const (
	UrgencyNone      Urgency = "none"
	UrgencyLow       Urgency = "low"
	UrgencyModerate  Urgency = "moderate"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyImmediate Urgency = "immediate"

	// UrgencyHigh appears only in the conservative fallback verdict. It is
	// deliberately outside the normal ladder so operators can spot degraded
	// analyses in logs and dashboards.
	UrgencyHigh Urgency = "high"
)

// Indicators bundles the raw detector output that produced a verdict, for
// audit and debugging.
type Indicators struct {
	Keywords lexicon.CategoryReport `json:"keywords"`
	Patterns lexicon.PatternReport  `json:"patterns"`
	Context  session.ContextSignals `json:"context"`
}

// SafetyVerdict is the full result of analyzing one message.
type SafetyVerdict struct {
	CrisisLevel          int        `json:"crisis_level"` // 0-10
	CrisisType           CrisisType `json:"crisis_type"`
	Urgency              Urgency    `json:"urgency"`
	Indicators           Indicators `json:"indicators"`
	Recommendations      []string   `json:"recommendations"`
	RequiresIntervention bool       `json:"requires_intervention"`
	RequiresEscalation   bool       `json:"requires_escalation"`

	// Degraded marks the conservative fallback verdict issued when analysis
	// failed. A zero-risk verdict from a healthy analysis never sets this.
	Degraded bool   `json:"degraded,omitempty"`
	Error    string `json:"error,omitempty"`
}

// EscalationCriteria records which escalation conditions held for a session.
type EscalationCriteria struct {
	SustainedHighRisk   bool `json:"sustained_high_risk"`
	IncreasingSeverity  bool `json:"increasing_severity"`
	FailedInterventions bool `json:"failed_interventions"`
	ImmediateDanger     bool `json:"immediate_danger"`
}

// EscalationAssessment is the result of a human-escalation check. It is
// recomputed from stored history on every call, never cached.
type EscalationAssessment struct {
	Needed            bool               `json:"escalation_needed"`
	CriteriaMet       EscalationCriteria `json:"criteria_met"`
	RecommendedAction string             `json:"recommended_action"`
	Urgency           Urgency            `json:"urgency"`
}

// FallbackVerdict is the conservative assessment returned when analysis
// fails: high enough to force intervention, but without the hard escalation
// that a confirmed critical reading would carry.
func FallbackVerdict(reason string) SafetyVerdict {
	return SafetyVerdict{
		CrisisLevel:          8,
		CrisisType:           TypeUnknown,
		Urgency:              UrgencyHigh,
		RequiresIntervention: true,
		RequiresEscalation:   false,
		Degraded:             true,
		Error:                reason,
	}
}

// lifeThreatTypes drive the accelerated urgency ladder.
var lifeThreatTypes = map[CrisisType]bool{
	TypeSuicideRisk:      true,
	TypeViolenceRisk:     true,
	TypeMentalHealthEmer: true,
}

// IsLifeThreat reports whether a crisis type uses the accelerated urgency
// ladder.
func IsLifeThreat(t CrisisType) bool {
	return lifeThreatTypes[t]
}
