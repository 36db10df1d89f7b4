package risk

import (
	"github.com/mindbridge-care/sentinel/pkg/config"
	"github.com/mindbridge-care/sentinel/pkg/lexicon"
	"github.com/mindbridge-care/sentinel/pkg/session"
)

// AggregateLevel fuses the message-level reports and session context into a
// single crisis level on the 0-10 scale.
//
// The lexical severity carries the most weight, patterns less, and context
// contributes flat bonuses: escalation across recent turns, a sustained
// negative emotional trend, more than one prior recorded intervention, and a
// per-category bonus for every high-risk category present. The sum is
// truncated and clamped.
func AggregateLevel(w config.Weights, cats lexicon.CategoryReport, pats lexicon.PatternReport, ctx session.ContextSignals) int {
	score := cats.TotalSeverity*w.Category + pats.Severity*w.Pattern

	if ctx.EscalationDetected {
		score += w.Escalation
	}
	if ctx.EmotionalDeterioration {
		score += w.Deterioration
	}
	if ctx.PreviousInterventions > 1 {
		score += w.Interventions
	}
	score += float64(len(cats.HighRisk)) * w.HighRiskPerHit

	level := int(score)
	if level < 0 {
		level = 0
	}
	if level > 10 {
		level = 10
	}
	return level
}

// classificationOrder is the clinical priority for picking the dominant
// crisis type when several categories matched. Life-threat first.
var classificationOrder = []struct {
	category lexicon.Category
	crisis   CrisisType
}{
	{lexicon.CategorySuicide, TypeSuicideRisk},
	{lexicon.CategorySelfHarm, TypeSelfHarmRisk},
	{lexicon.CategoryViolence, TypeViolenceRisk},
	{lexicon.CategoryPsychosis, TypeMentalHealthEmer},
	{lexicon.CategorySubstanceAbuse, TypeSubstanceAbuse},
	{lexicon.CategoryHopelessness, TypeSevereDepression},
	{lexicon.CategoryIsolation, TypeSocialCrisis},
}

// Classify picks the dominant crisis type from the matched categories. When
// no category matched, finality or farewell language alone still classifies
// as suicide risk; anything else is generic emotional distress.
func Classify(cats lexicon.CategoryReport, pats lexicon.PatternReport) CrisisType {
	for _, entry := range classificationOrder {
		if cats.Has(entry.category) {
			return entry.crisis
		}
	}

	if pats.HasHighRisk(lexicon.PatternFinality) || pats.HasHighRisk(lexicon.PatternGoodbye) {
		return TypeSuicideRisk
	}
	return TypeEmotionalDistress
}
