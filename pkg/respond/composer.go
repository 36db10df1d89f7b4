package respond

import (
	"github.com/mindbridge-care/sentinel/pkg/config"
	"github.com/mindbridge-care/sentinel/pkg/risk"
)

// CrisisResponse is the user-facing intervention assembled for a verdict.
type CrisisResponse struct {
	Message           string       `json:"message"`
	CrisisLevel       int          `json:"crisis_level"`
	Urgency           risk.Urgency `json:"urgency"`
	Resources         []Hotline    `json:"resources"`
	EmergencyContacts []Contact    `json:"emergency_contacts"`
	ImmediateActions  []string     `json:"immediate_actions"`
	FollowUpRequired  bool         `json:"follow_up_required"`
}

// Composer turns verdicts into crisis responses. Phrase variation goes
// through the Selector, so output is reproducible for a given selector
// state.
type Composer struct {
	resources  *ResourceDirectory
	thresholds config.Thresholds
	selector   Selector
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithSelector replaces the default round-robin variant selector.
func WithSelector(s Selector) ComposerOption {
	return func(c *Composer) { c.selector = s }
}

// NewComposer builds a composer over a resource directory. A nil directory
// falls back to the built-in default.
func NewComposer(resources *ResourceDirectory, thresholds config.Thresholds, opts ...ComposerOption) *Composer {
	c := &Composer{
		resources:  resources,
		thresholds: thresholds,
		selector:   NewRoundRobinSelector(),
	}
	if c.resources == nil {
		c.resources = DefaultDirectory()
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose assembles the intervention response for a verdict.
//
// Emergency resources and contacts are attached only from the high band up;
// below it the response is supportive text plus self-directed actions.
func (c *Composer) Compose(v risk.SafetyVerdict) CrisisResponse {
	variants := templatesFor(v.CrisisType)
	base := variants[c.selector.Pick(len(variants))]

	resp := CrisisResponse{
		Message:          base + "\n\n" + culturalSupport(v.CrisisType),
		CrisisLevel:      v.CrisisLevel,
		Urgency:          v.Urgency,
		ImmediateActions: c.immediateActions(v.CrisisLevel),
		FollowUpRequired: v.CrisisLevel >= c.thresholds.Medium,
	}

	if v.CrisisLevel >= c.thresholds.High {
		resp.Resources = c.resources.Hotlines
		resp.EmergencyContacts = c.resources.EmergencyContacts
	}

	return resp
}

// immediateActions returns the action checklist for a crisis level band.
func (c *Composer) immediateActions(level int) []string {
	switch {
	case level >= c.thresholds.Critical:
		return []string{
			"Call emergency services (999) immediately",
			"Do not leave the person alone",
			"Remove any means of self-harm within reach",
			"Transfer to hospital if necessary",
		}
	case level >= c.thresholds.High:
		return []string{
			"Call the mental health helpline (80077)",
			"Involve a trusted person (family or friend)",
			"Arrange an urgent specialist visit",
			"Keep continuous follow-up for 24-48 hours",
		}
	case level >= c.thresholds.Medium:
		return []string{
			"Schedule an appointment with a mental health specialist",
			"Inform a trusted person about the situation",
			"Remove immediate stressors",
			"Practice self-calming techniques",
		}
	default:
		return []string{
			"Strengthen the social support network",
			"Engage in calming activities",
			"Check in on emotional wellbeing regularly",
		}
	}
}
