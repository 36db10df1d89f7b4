package risk

import (
	"github.com/mindbridge-care/sentinel/pkg/config"
	"github.com/mindbridge-care/sentinel/pkg/session"
)

// AssessEscalation decides whether a session needs handoff to a human
// clinician. It reasons over the retained crisis events (oldest first) plus
// the level of the message being handled right now.
//
// Escalation triggers on any of:
//   - immediate danger: the current level is in the critical band
//   - sustained high risk combined with increasing severity across the
//     recent event window
//   - repeated interventions that did not resolve the crisis, with the
//     current level still in the high band
func AssessEscalation(t config.Thresholds, events []session.CrisisEvent, currentLevel int) EscalationAssessment {
	var criteria EscalationCriteria

	recent := events
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	highRisk := 0
	for _, ev := range recent {
		if ev.Level >= t.High {
			highRisk++
		}
	}
	criteria.SustainedHighRisk = highRisk >= 3

	if len(events) >= 3 {
		last3 := events[len(events)-3:]
		sum := last3[0].Level + last3[1].Level + last3[2].Level
		// Strictly rising trajectory with an average above 6.
		criteria.IncreasingSeverity = last3[0].Level < last3[1].Level &&
			last3[1].Level < last3[2].Level && sum > 18
	}

	criteria.ImmediateDanger = currentLevel >= t.Critical
	criteria.FailedInterventions = len(events) > 2

	needed := criteria.ImmediateDanger ||
		(criteria.SustainedHighRisk && criteria.IncreasingSeverity) ||
		(criteria.FailedInterventions && currentLevel >= t.High)

	urgency := UrgencyUrgent
	if criteria.ImmediateDanger {
		urgency = UrgencyImmediate
	}

	return EscalationAssessment{
		Needed:            needed,
		CriteriaMet:       criteria,
		RecommendedAction: escalationRecommendation(criteria),
		Urgency:           urgency,
	}
}

// escalationRecommendation maps the strongest met criterion to an action.
func escalationRecommendation(c EscalationCriteria) string {
	switch {
	case c.ImmediateDanger:
		return "Immediate emergency intervention, contact emergency services"
	case c.SustainedHighRisk:
		return "Urgent referral to a specialized psychiatrist"
	case c.IncreasingSeverity:
		return "Comprehensive psychiatric evaluation required"
	case c.FailedInterventions:
		return "Direct clinical supervision required"
	default:
		return "Continue monitoring and support"
	}
}
