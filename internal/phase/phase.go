// Package phase derives relationship phases from engagement counters and
// builds the per-phase tone guidance injected into downstream prompts.
package phase

import (
	"strings"
	"time"

	"github.com/aurra-labs/AuraCore/internal/models"
)

// Phase thresholds. Evaluated highest-first; counters never decrease, so the
// derived phase only moves forward in practice.
const (
	companionMinDays      = 30
	companionMinMessages  = 100
	companionMinEmotional = 10

	trustedMinDays     = 11
	trustedMinMessages = 50
	trustedMinMoods    = 3

	familiarityMinDays     = 4
	familiarityMinMessages = 20
)

// Calculate re-derives the relationship phase from scratch.
//
// This is a pure recomputation, not a guarded step machine: a user returning
// after a long gap can jump several stages in one call. That matches the
// product behavior; do not add single-step limiting here.
func Calculate(e models.UserEngagement, now time.Time) models.RelationshipPhase {
	days := daysSince(e.FirstInteractionAt, now)

	if days >= companionMinDays && e.TotalMessages >= companionMinMessages && e.EmotionalConversations >= companionMinEmotional {
		return models.PhaseCompanion
	}
	if days >= trustedMinDays && e.TotalMessages >= trustedMinMessages && e.MoodShares >= trustedMinMoods {
		return models.PhaseTrusted
	}
	if days >= familiarityMinDays && e.TotalMessages >= familiarityMinMessages {
		return models.PhaseFamiliarity
	}
	return models.PhaseIntroduction
}

// daysSince counts whole days between first interaction and now.
func daysSince(first, now time.Time) int {
	if first.IsZero() || now.Before(first) {
		return 0
	}
	return int(now.Sub(first).Hours() / 24)
}

// BuildPhaseGuide produces a compact instruction snippet for injection into
// agent system prompts. It returns an empty string for unknown phases.
func BuildPhaseGuide(p models.RelationshipPhase) string {
	var b strings.Builder
	b.WriteString("\n<RELATIONSHIP GUIDE>\n")

	switch p {
	case models.PhaseIntroduction:
		b.WriteString("- You are newly acquainted. Keep a friendly, slightly formal register.\n")
		b.WriteString("- Explain what you can do; do not assume shared history.\n")
		b.WriteString("- Ask light questions; avoid probing emotional topics.\n")
	case models.PhaseFamiliarity:
		b.WriteString("- You know the user's basic rhythms. Use a casual, warm register.\n")
		b.WriteString("- Reference recent interactions where relevant.\n")
		b.WriteString("- Gently invite mood sharing without pushing.\n")
	case models.PhaseTrusted:
		b.WriteString("- The user shares moods with you. Be candid and personal.\n")
		b.WriteString("- Recall patterns across weeks; name them when helpful.\n")
		b.WriteString("- Offer honest pushback when plans conflict with wellbeing.\n")
	case models.PhaseCompanion:
		b.WriteString("- You are a long-term companion. Speak with earned familiarity.\n")
		b.WriteString("- Draw on the full shared history; celebrate milestones.\n")
		b.WriteString("- Hold the user accountable to their own stated goals.\n")
	default:
		return ""
	}

	b.WriteString("- NEVER claim feelings you do not have or make promises about the future.\n")
	b.WriteString("</RELATIONSHIP GUIDE>\n")
	return b.String()
}
