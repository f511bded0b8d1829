// Package autonomy implements the autonomy-mode decision cascade.
//
// The cascade is rule-ordered, not rule-exclusive: earlier rules mask later
// ones, so the evaluation order below is part of the contract. Stress and
// burnout always cap autonomy before high motivation can raise it, and
// sensitive domains never leave human-in-the-loop handling.
package autonomy

import (
	"log/slog"

	"github.com/aurra-labs/AuraCore/internal/models"
)

// Burnout threshold above which autonomy is capped regardless of domain.
const burnoutCeiling = 70

// sensitiveDomains always receive suggest-and-approve handling.
var sensitiveDomains = map[models.Domain]bool{
	models.DomainFinance: true,
	models.DomainSocial:  true,
}

// fullAutoDomains are the only domains eligible for full autonomy, and then
// only under demonstrated high motivation.
var fullAutoDomains = map[models.Domain]bool{
	models.DomainRoutine: true,
	models.DomainFitness: true,
}

// Selector decides the autonomy mode for an agent response.
type Selector struct{}

// NewSelector creates a Selector.
func NewSelector() *Selector {
	return &Selector{}
}

// DetermineMode runs the decision cascade for one candidate agent.
//
// override is the session-wide mode; anything other than adaptive wins
// unconditionally. urgency of 0 means "unspecified" and maps to the default;
// out-of-range values are clamped at this boundary.
func (s *Selector) DetermineMode(domain models.Domain, urgency int, ctx models.AgentContext, override models.AutonomyMode) models.AutonomyMode {
	urgency = models.ClampUrgency(urgency)

	// Rule 1: explicit operator/user override always wins.
	if override != "" && override != models.ModeAdaptive {
		return override
	}

	// Rule 2: never grant more autonomy under high burnout or stress.
	if ctx.BurnoutScore > burnoutCeiling || ctx.Stress == models.LevelHigh {
		slog.Debug("Selector.DetermineMode: safety rail engaged", "burnout", ctx.BurnoutScore, "stress", ctx.Stress)
		return models.ModeSuggestApprove
	}

	// Rule 3: low energy reduces autonomy unless urgency demands faster handling.
	if ctx.Energy == models.LevelLow {
		if urgency > 7 {
			return models.ModePredictConfirm
		}
		return models.ModeSuggestApprove
	}

	// Rule 4: very urgent work gets predicted next steps with quick confirms.
	if urgency > 8 {
		return models.ModePredictConfirm
	}

	// Rule 5: sensitive domains always keep a human in the loop.
	if sensitiveDomains[domain] {
		return models.ModeSuggestApprove
	}

	// Rule 6: low-risk domains with demonstrated high motivation run on their own.
	if fullAutoDomains[domain] && ctx.Motivation == models.LevelHigh {
		return models.ModeFullAuto
	}

	// Rule 7: default middle ground.
	return models.ModePredictConfirm
}
