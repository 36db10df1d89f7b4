package risk

import (
	"github.com/mindbridge-care/sentinel/pkg/config"
	"github.com/mindbridge-care/sentinel/pkg/session"
)

// AssessUrgency maps a crisis level, its type, and the session context onto
// the urgency ladder. Life-threat types (suicide, violence, psychiatric
// emergency) escalate one band earlier than the generic ladder.
func AssessUrgency(t config.Thresholds, level int, crisisType CrisisType, ctx session.ContextSignals) Urgency {
	if level >= t.Critical {
		return UrgencyImmediate
	}

	if IsLifeThreat(crisisType) {
		if level >= t.High {
			return UrgencyImmediate
		}
		if level >= t.Medium {
			return UrgencyUrgent
		}
	}

	// Session escalation promotes a level just below the high band.
	if ctx.EscalationDetected && level > t.Medium {
		return UrgencyUrgent
	}

	switch {
	case level >= t.High:
		return UrgencyUrgent
	case level >= t.Medium:
		return UrgencyModerate
	case level >= t.Low:
		return UrgencyLow
	default:
		return UrgencyNone
	}
}

// RecommendationsFor returns the clinician-facing safety recommendations for
// an urgency band.
func RecommendationsFor(urgency Urgency) []string {
	switch urgency {
	case UrgencyImmediate:
		return []string{
			"Immediate intervention required",
			"Refer to psychiatric emergency services",
			"Do not leave the user alone",
			"Activate the emergency protocol",
		}
	case UrgencyUrgent, UrgencyHigh:
		return []string{
			"Continuous monitoring required",
			"Refer to a specialist as soon as possible",
			"Involve family members where possible",
			"Follow up within 24 hours",
		}
	case UrgencyModerate:
		return []string{
			"Reassess the situation periodically",
			"Strengthen the support network",
			"Schedule a follow-up within a week",
			"Provide self-help resources",
		}
	default:
		return []string{
			"Continue emotional support",
			"Monitor for changes",
			"Reinforce healthy coping mechanisms",
		}
	}
}
