// Package lexicon provides the weighted risk lexicon used for crisis
// detection. All term and phrase tables are assembled once at package init
// and shared across all analyses.
//
// Design principles:
// - BUILD ONCE: term tables assembled at init, not per-message
// - DRY: single source of truth for all risk terms and phrases
// - CATEGORIZED: terms organized by risk category for targeted scans
// - EXTENSIBLE: YAML seed files can extend or replace the built-in tables
package lexicon

import (
	"sort"
	"sync"
)

// Category represents a lexical risk category
type Category string

const (
	CategorySuicide        Category = "suicide"
	CategorySelfHarm       Category = "self_harm"
	CategoryHopelessness   Category = "hopelessness"
	CategoryIsolation      Category = "isolation"
	CategorySubstanceAbuse Category = "substance_abuse"
	CategoryViolence       Category = "violence"
	CategoryPsychosis      Category = "psychosis"
)

// Pattern represents a linguistic risk pattern
type Pattern string

const (
	PatternFinality      Pattern = "finality_statement"
	PatternGoodbye       Pattern = "goodbye_message"
	PatternExtreme       Pattern = "extreme_language"
	PatternWorthlessness Pattern = "worthlessness"
	PatternBurden        Pattern = "burden_statement"
	PatternIsolation     Pattern = "isolation_expression"
)

// categoryOrder fixes the iteration order for deterministic output.
// The order also encodes clinical priority: life-threat categories first.
var categoryOrder = []Category{
	CategorySuicide,
	CategorySelfHarm,
	CategoryViolence,
	CategoryPsychosis,
	CategorySubstanceAbuse,
	CategoryHopelessness,
	CategoryIsolation,
}

var patternOrder = []Pattern{
	PatternFinality,
	PatternGoodbye,
	PatternExtreme,
	PatternWorthlessness,
	PatternBurden,
	PatternIsolation,
}

// highRiskCategories are the categories whose presence alone raises the
// aggregate crisis level.
var highRiskCategories = map[Category]bool{
	CategorySuicide:  true,
	CategorySelfHarm: true,
	CategoryViolence: true,
}

// highRiskPatterns are the patterns that drive pattern-based classification.
var highRiskPatterns = map[Pattern]bool{
	PatternFinality: true,
	PatternGoodbye:  true,
	PatternBurden:   true,
}

// CategoryEntry holds the trigger terms and per-match weight for one category
type CategoryEntry struct {
	Terms  []string
	Weight float64
}

// PatternEntry holds the trigger phrases and per-match weight for one pattern
type PatternEntry struct {
	Phrases []string
	Weight  float64
}

// Registry holds the assembled risk lexicon. Immutable after construction;
// safe for concurrent use.
type Registry struct {
	categories map[Category]CategoryEntry
	patterns   map[Pattern]PatternEntry
}

// global singleton - initialized once at first use
var (
	globalRegistry *Registry
	initOnce       sync.Once
)

// Get returns the built-in global lexicon registry (singleton).
func Get() *Registry {
	initOnce.Do(func() {
		globalRegistry = newRegistry()
	})
	return globalRegistry
}

// newRegistry assembles the registry from the built-in tables.
func newRegistry() *Registry {
	return &Registry{
		categories: builtinCategories(),
		patterns:   builtinPatterns(),
	}
}

// Category returns the entry for a category. The second result is false for
// unknown categories.
func (r *Registry) Category(c Category) (CategoryEntry, bool) {
	e, ok := r.categories[c]
	return e, ok
}

// Pattern returns the entry for a pattern.
func (r *Registry) Pattern(p Pattern) (PatternEntry, bool) {
	e, ok := r.patterns[p]
	return e, ok
}

// Categories returns all category names in clinical priority order.
func (r *Registry) Categories() []Category {
	out := make([]Category, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		if _, ok := r.categories[c]; ok {
			out = append(out, c)
		}
	}
	// Seed files may add categories beyond the built-in set; they sort after
	// the known ones, alphabetically.
	var extra []Category
	for c := range r.categories {
		if !containsCategory(categoryOrder, c) {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// Patterns returns all pattern names in evaluation order.
func (r *Registry) Patterns() []Pattern {
	out := make([]Pattern, 0, len(patternOrder))
	for _, p := range patternOrder {
		if _, ok := r.patterns[p]; ok {
			out = append(out, p)
		}
	}
	var extra []Pattern
	for p := range r.patterns {
		if !containsPattern(patternOrder, p) {
			extra = append(extra, p)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// TermCount returns the total number of registered terms and phrases.
func (r *Registry) TermCount() int {
	n := 0
	for _, e := range r.categories {
		n += len(e.Terms)
	}
	for _, e := range r.patterns {
		n += len(e.Phrases)
	}
	return n
}

// IsHighRisk reports whether a category is in the life-threat set.
func IsHighRisk(c Category) bool { return highRiskCategories[c] }

// IsHighRiskPattern reports whether a pattern is in the classification set.
func IsHighRiskPattern(p Pattern) bool { return highRiskPatterns[p] }

func containsCategory(s []Category, c Category) bool {
	for _, v := range s {
		if v == c {
			return true
		}
	}
	return false
}

func containsPattern(s []Pattern, p Pattern) bool {
	for _, v := range s {
		if v == p {
			return true
		}
	}
	return false
}
