package lexicon

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CategoryHit describes the matches for one risk category in one message.
type CategoryHit struct {
	Terms    []string `json:"terms"`    // matched terms, in registry order
	Count    int      `json:"count"`    // number of distinct terms matched
	Severity float64  `json:"severity"` // count x category weight
}

// CategoryReport is the full lexical analysis of one message.
type CategoryReport struct {
	Matches       map[Category]CategoryHit `json:"matches"`
	TotalSeverity float64                  `json:"total_severity"`       // sum of severities, clamped [0,10]
	HighRisk      []Category               `json:"high_risk_categories"` // life-threat categories with count > 0
}

// PatternReport is the linguistic pattern analysis of one message.
type PatternReport struct {
	Counts   map[Pattern]int `json:"counts"`
	Severity float64         `json:"severity"`           // weighted sum, clamped [0,10]
	HighRisk []Pattern       `json:"high_risk_patterns"` // classification-driving patterns with count > 0
}

const maxSeverity = 10.0

// Normalize prepares raw message text for matching: Unicode NFKC fold (so
// fullwidth and compatibility forms collapse to their canonical shape)
// followed by lower-casing. Callers are not assumed to have normalized.
func Normalize(text string) string {
	return strings.ToLower(norm.NFKC.String(text))
}

// MatchCategories scans the message against every registered risk category.
// Pure function of (registry, text): identical input always yields identical
// output, including slice ordering.
func (r *Registry) MatchCategories(text string) CategoryReport {
	normalized := Normalize(text)

	report := CategoryReport{Matches: make(map[Category]CategoryHit)}
	for _, cat := range r.Categories() {
		entry := r.categories[cat]

		var hit CategoryHit
		for _, term := range entry.Terms {
			if strings.Contains(normalized, term) {
				hit.Terms = append(hit.Terms, term)
				hit.Count++
			}
		}
		if hit.Count == 0 {
			continue
		}
		hit.Severity = float64(hit.Count) * entry.Weight
		report.Matches[cat] = hit
		report.TotalSeverity += hit.Severity

		if IsHighRisk(cat) {
			report.HighRisk = append(report.HighRisk, cat)
		}
	}

	if report.TotalSeverity > maxSeverity {
		report.TotalSeverity = maxSeverity
	}
	return report
}

// DetectPatterns scans the message for every registered linguistic risk
// pattern. Pure and deterministic like MatchCategories.
func (r *Registry) DetectPatterns(text string) PatternReport {
	normalized := Normalize(text)

	report := PatternReport{Counts: make(map[Pattern]int)}
	for _, pat := range r.Patterns() {
		entry := r.patterns[pat]

		count := 0
		for _, phrase := range entry.Phrases {
			if strings.Contains(normalized, phrase) {
				count++
			}
		}
		report.Counts[pat] = count
		if count == 0 {
			continue
		}
		report.Severity += float64(count) * entry.Weight

		if IsHighRiskPattern(pat) {
			report.HighRisk = append(report.HighRisk, pat)
		}
	}

	if report.Severity > maxSeverity {
		report.Severity = maxSeverity
	}
	return report
}

// Matched reports whether any category matched at all.
func (cr CategoryReport) Matched() bool { return len(cr.Matches) > 0 }

// Has reports whether a specific category matched.
func (cr CategoryReport) Has(c Category) bool {
	hit, ok := cr.Matches[c]
	return ok && hit.Count > 0
}

// HasHighRisk reports whether a specific high-risk pattern fired.
func (pr PatternReport) HasHighRisk(p Pattern) bool {
	for _, hp := range pr.HighRisk {
		if hp == p {
			return true
		}
	}
	return false
}
