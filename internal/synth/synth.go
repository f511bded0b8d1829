// Package synth builds display payloads for routed agents.
//
// Message, action, and stat lookups are closed switches over the agent id
// enum so that adding or removing an agent is a compile-checked exhaustive
// update rather than a silently absent map entry. Every lookup degrades to a
// generic payload for unknown ids; nothing in this package errors.
package synth

import (
	"context"
	"log/slog"
	"time"

	"github.com/aurra-labs/AuraCore/internal/models"
)

// fallbackMessage is returned for agent ids missing from the dispatch tables.
const fallbackMessage = "Processing."

// MessageEnricher optionally rewrites a canned message, typically via GenAI.
// The canned text is always the fallback when enrichment fails.
type MessageEnricher interface {
	EnrichAgentMessage(ctx context.Context, systemPrompt, message string) (string, error)
}

// Synthesizer produces AgentResponse payloads from static lookup tables.
type Synthesizer struct {
	catalog  catalogLookup
	enricher MessageEnricher
	guide    GuideSource
}

// GuideSource provides per-user tone-guidance text appended to enrichment
// system prompts. An empty return means no guidance for that user.
type GuideSource func(ctx context.Context, userID string) string

// catalogLookup is the minimal catalog surface the synthesizer needs.
type catalogLookup interface {
	ByID(id models.AgentID) (models.AgentDefinition, bool)
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithEnricher attaches an optional GenAI message enricher.
func WithEnricher(e MessageEnricher) Option {
	return func(s *Synthesizer) {
		s.enricher = e
	}
}

// WithGuideSource attaches a provider of tone-guidance text injected into
// enrichment system prompts (e.g. the relationship-phase guide).
func WithGuideSource(fn GuideSource) Option {
	return func(s *Synthesizer) {
		s.guide = fn
	}
}

// NewSynthesizer creates a Synthesizer over the given catalog.
func NewSynthesizer(catalog catalogLookup, opts ...Option) *Synthesizer {
	s := &Synthesizer{catalog: catalog}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize builds the display payload for one agent under one autonomy mode.
// The userID scopes the optional tone guide to the requesting user.
func (s *Synthesizer) Synthesize(ctx context.Context, userID string, agentID models.AgentID, mode models.AutonomyMode) models.AgentResponse {
	def, known := s.catalog.ByID(agentID)
	resp := models.AgentResponse{
		AgentID:   agentID,
		AgentName: def.Name,
		Domain:    def.Domain,
		Mode:      mode,
		Message:   modePrefix(mode) + " " + agentMessage(agentID),
		Actions:   agentActions(agentID, mode),
		Stats:     agentStats(agentID),
		Timestamp: time.Now(),
	}
	if !known {
		slog.Warn("Synthesizer.Synthesize: unknown agent id, using generic payload", "agentID", agentID)
	}

	if s.enricher != nil && known {
		enriched, err := s.enricher.EnrichAgentMessage(ctx, s.systemPrompt(ctx, userID, def), resp.Message)
		if err != nil {
			slog.Error("Synthesizer.Synthesize: enrichment failed, keeping canned message", "agentID", agentID, "error", err)
		} else if enriched != "" {
			resp.Message = enriched
		}
	}
	return resp
}

func (s *Synthesizer) systemPrompt(ctx context.Context, userID string, def models.AgentDefinition) string {
	prompt := def.Description
	if s.guide != nil {
		prompt += s.guide(ctx, userID)
	}
	return prompt
}

// modePrefix maps the autonomy mode to its display emoji.
func modePrefix(mode models.AutonomyMode) string {
	switch mode {
	case models.ModeFullAuto:
		return "✅"
	case models.ModePredictConfirm:
		return "🔮"
	case models.ModeSuggestApprove:
		return "💡"
	default:
		return "📋"
	}
}

// agentMessage returns the canned message template for an agent.
func agentMessage(id models.AgentID) string {
	switch id {
	case models.AgentHealth:
		return "Checking in on how you're feeling. I've adjusted today's pace to protect your energy."
	case models.AgentMemory:
		return "Got it — I'll hold onto that and surface it when it matters."
	case models.AgentFocus:
		return "Here's what's on your plate. I've lined up the next task so you can stay in flow."
	case models.AgentEducation:
		return "Ready for a quick practice session? Short reps keep the streak alive."
	case models.AgentFitness:
		return "I've sized a movement break to your current energy. Nothing heroic, just momentum."
	case models.AgentAutomation:
		return "Your routine is set. I'll nudge you at the right moments."
	case models.AgentCulture:
		return "Found a few picks that match your mood tonight."
	case models.AgentVision:
		return "Let's check this against your long-term goals before you commit."
	case models.AgentStrategy:
		return "This one deserves a careful look. Here's the breakdown before any move."
	default:
		return fallbackMessage
	}
}

// agentActions returns the suggestion buttons for an agent. Full-autonomy
// responses never offer approval buttons.
func agentActions(id models.AgentID, mode models.AutonomyMode) []models.SuggestedAction {
	if mode == models.ModeFullAuto {
		return nil
	}
	switch id {
	case models.AgentHealth:
		return []models.SuggestedAction{
			{Label: "Log mood", Action: "log_mood"},
			{Label: "2-minute breathing", Action: "start_breathing"},
		}
	case models.AgentMemory:
		return []models.SuggestedAction{
			{Label: "Save note", Action: "save_note"},
			{Label: "Set reminder", Action: "set_reminder"},
		}
	case models.AgentFocus:
		return []models.SuggestedAction{
			{Label: "Start focus session", Action: "start_focus"},
			{Label: "Reorder tasks", Action: "reorder_tasks"},
		}
	case models.AgentEducation:
		return []models.SuggestedAction{
			{Label: "Start 5-minute session", Action: "start_skill_session"},
		}
	case models.AgentFitness:
		return []models.SuggestedAction{
			{Label: "Start workout", Action: "start_workout"},
			{Label: "Log activity", Action: "log_activity"},
		}
	case models.AgentAutomation:
		return []models.SuggestedAction{
			{Label: "Create routine", Action: "create_routine"},
			{Label: "Schedule daily reminder", Action: "schedule_routine", Data: map[string]string{"time": "08:00"}},
		}
	case models.AgentCulture:
		return []models.SuggestedAction{
			{Label: "Show recommendations", Action: "show_recommendations"},
		}
	case models.AgentVision:
		return []models.SuggestedAction{
			{Label: "Review goals", Action: "review_goals"},
		}
	case models.AgentStrategy:
		return []models.SuggestedAction{
			{Label: "See full breakdown", Action: "show_breakdown"},
			{Label: "Not now", Action: "dismiss"},
		}
	default:
		return nil
	}
}

// agentStats returns the display statistics for an agent, if any are tracked.
func agentStats(id models.AgentID) []models.ResponseStat {
	switch id {
	case models.AgentHealth:
		return []models.ResponseStat{
			{Label: "Mood check-ins this week", Value: "5"},
			{Label: "Hydration", Value: "1.2L / 2L"},
		}
	case models.AgentFocus:
		return []models.ResponseStat{
			{Label: "Tasks done today", Value: "3"},
			{Label: "Focus time", Value: "1h 40m"},
		}
	case models.AgentEducation:
		return []models.ResponseStat{
			{Label: "Practice streak", Value: "4 days"},
		}
	case models.AgentFitness:
		return []models.ResponseStat{
			{Label: "Active days this week", Value: "3"},
		}
	case models.AgentAutomation:
		return []models.ResponseStat{
			{Label: "Routines running", Value: "2"},
		}
	case models.AgentMemory, models.AgentCulture, models.AgentVision, models.AgentStrategy:
		// No tracked numeric stats for these agents.
		return nil
	default:
		return nil
	}
}
