package risk

import (
	"context"
	"log"

	"github.com/mindbridge-care/sentinel/pkg/config"
	"github.com/mindbridge-care/sentinel/pkg/httputil"
	"github.com/mindbridge-care/sentinel/pkg/lexicon"
	"github.com/mindbridge-care/sentinel/pkg/session"
)

// ============================================================================
// CRISIS ANALYSIS ENGINE
// ============================================================================
// The engine fuses the deterministic detectors (lexical categories,
// linguistic patterns, session context) into a SafetyVerdict, optionally
// raised by the fail-open LLM and semantic estimators. Analyses within one
// session are serialized through the tracker's session lock; different
// sessions proceed concurrently.
//
// Analyze never fails: a panic anywhere in the pipeline produces the
// conservative fallback verdict instead of an error, because a crisis
// checker that errors out on the one message that crashed it is worse than
// one that over-alerts.

// Estimator is an optional second-opinion source. Estimates can only raise
// the locally computed crisis level.
type Estimator interface {
	Estimate(ctx context.Context, message string) (int, error)
}

// estimatorSlots bounds concurrent outbound estimator calls across all
// sessions. When saturated, analyses skip the estimators and stand on local
// detection rather than queue.
const estimatorSlots = 32

// Engine runs crisis analysis for sessions.
type Engine struct {
	cfg      *config.Config
	registry *lexicon.Registry
	tracker  *session.Tracker

	llm      Estimator
	semantic Estimator
	remote   *httputil.Semaphore
}

// Option configures optional engine collaborators.
type Option func(*Engine)

// WithLLMEstimator attaches the remote LLM estimator.
func WithLLMEstimator(e Estimator) Option {
	return func(eng *Engine) { eng.llm = e }
}

// WithSemanticEstimator attaches the embedding-based estimator.
func WithSemanticEstimator(e Estimator) Option {
	return func(eng *Engine) { eng.semantic = e }
}

// NewEngine wires an engine over a lexicon registry and session tracker.
func NewEngine(cfg *config.Config, registry *lexicon.Registry, tracker *session.Tracker, opts ...Option) *Engine {
	e := &Engine{
		cfg:      cfg,
		registry: registry,
		tracker:  tracker,
		remote:   httputil.NewSemaphore(estimatorSlots),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze runs the full crisis assessment for one message.
//
// emotionalState is the caller-attributed emotional label for this turn
// (empty when unknown); it feeds the deterioration trend of later turns, not
// the current verdict's level directly.
func (e *Engine) Analyze(ctx context.Context, sessionID, message, emotionalState string) (verdict SafetyVerdict) {
	unlock := e.tracker.LockSession(sessionID)
	defer unlock()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] crisis analysis panicked for session %s: %v", sessionID, r)
			verdict = FallbackVerdict("analysis failure")
		}
	}()

	categories := e.registry.MatchCategories(message)
	patterns := e.registry.DetectPatterns(message)

	signals, err := e.tracker.Context(ctx, sessionID)
	if err != nil {
		// Degraded signals, not a degraded verdict. The message-level
		// detectors still produce a full assessment.
		log.Printf("[WARN] session context unavailable for %s: %v", sessionID, err)
	}

	level := AggregateLevel(e.cfg.Weights, categories, patterns, signals)
	level = e.applyEstimators(ctx, sessionID, message, level)

	crisisType := Classify(categories, patterns)
	urgency := AssessUrgency(e.cfg.Thresholds, level, crisisType, signals)

	verdict = SafetyVerdict{
		CrisisLevel: level,
		CrisisType:  crisisType,
		Urgency:     urgency,
		Indicators: Indicators{
			Keywords: categories,
			Patterns: patterns,
			Context:  signals,
		},
		Recommendations:      RecommendationsFor(urgency),
		RequiresIntervention: level >= e.cfg.Thresholds.High,
		RequiresEscalation:   level >= e.cfg.Thresholds.Critical,
	}

	if level >= e.cfg.Thresholds.Medium {
		event := session.NewCrisisEvent(sessionID, level, string(crisisType), contributingCategories(e.registry, categories), verdict.RequiresIntervention)
		if err := e.tracker.RecordEvent(ctx, event); err != nil {
			log.Printf("[WARN] failed to record crisis event for %s: %v", sessionID, err)
		}
	}

	e.tracker.RecordTurn(sessionID, session.Turn{Message: message, Emotion: emotionalState})

	return verdict
}

// contributingCategories lists the matched category names in clinical
// priority order for the recorded event.
func contributingCategories(registry *lexicon.Registry, report lexicon.CategoryReport) []string {
	var out []string
	for _, c := range registry.Categories() {
		if report.Has(c) {
			out = append(out, string(c))
		}
	}
	return out
}

// applyEstimators raises the local level toward any higher remote estimate.
// Both estimators are bounded by the analyzer timeout and fail open.
func (e *Engine) applyEstimators(ctx context.Context, sessionID, message string, level int) int {
	if e.llm == nil && e.semantic == nil {
		return level
	}

	if !e.remote.TryAcquire() {
		log.Printf("[WARN] estimator capacity saturated, using local reading for session %s", sessionID)
		return level
	}
	defer e.remote.Release()

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.AnalyzerTimeout)
	defer cancel()

	for name, est := range map[string]Estimator{"llm": e.llm, "semantic": e.semantic} {
		if est == nil {
			continue
		}
		remote, err := est.Estimate(callCtx, message)
		if err != nil {
			log.Printf("[WARN] %s estimator unavailable for session %s: %v", name, sessionID, err)
			continue
		}
		if remote > level {
			log.Printf("[INFO] %s estimator raised crisis level %d -> %d for session %s", name, level, remote, sessionID)
			level = remote
		}
	}
	if level > 10 {
		level = 10
	}
	return level
}

// CheckEscalation reassesses human-handoff need from the stored event history
// plus the current crisis level. The assessment is recomputed on every call.
//
// On store failure the assessment is computed against an empty history (the
// immediate-danger criterion still fires on the current level) and the error
// is returned alongside it.
func (e *Engine) CheckEscalation(ctx context.Context, sessionID string, currentLevel int) (EscalationAssessment, error) {
	events, err := e.tracker.RecentEvents(ctx, sessionID, 0)
	if err != nil {
		log.Printf("[WARN] event history unavailable for %s: %v", sessionID, err)
		events = nil
	}
	return AssessEscalation(e.cfg.Thresholds, events, currentLevel), err
}

// EndSession tears down all tracked state for a session.
func (e *Engine) EndSession(ctx context.Context, sessionID string) error {
	return e.tracker.EndSession(ctx, sessionID)
}

// Health describes the engine's loaded state for operational checks.
type Health struct {
	Status           string            `json:"status"`
	LexiconTerms     int               `json:"lexicon_terms"`
	Categories       int               `json:"categories"`
	Patterns         int               `json:"patterns"`
	ActiveSessions   int               `json:"active_sessions"`
	Thresholds       config.Thresholds `json:"thresholds"`
	LLMEnabled       bool              `json:"llm_enabled"`
	SemanticsEnabled bool              `json:"semantics_enabled"`
}

// Health reports the engine's operational state.
func (e *Engine) Health() Health {
	return Health{
		Status:           "healthy",
		LexiconTerms:     e.registry.TermCount(),
		Categories:       len(e.registry.Categories()),
		Patterns:         len(e.registry.Patterns()),
		ActiveSessions:   e.tracker.ActiveSessions(),
		Thresholds:       e.cfg.Thresholds,
		LLMEnabled:       e.llm != nil,
		SemanticsEnabled: e.semantic != nil,
	}
}
