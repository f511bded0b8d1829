// Package agents defines the static agent catalog, keyword routing, and
// conflict-priority ordering for AuraCore.
//
// The catalog is pure data built at startup. Declaration order matters: the
// router resolves keyword ties positionally and the conflict resolver uses a
// fixed priority array, so reordering entries is a behavior change.
package agents

import "github.com/aurra-labs/AuraCore/internal/models"

// DefaultAgentID receives messages that match no keyword list.
const DefaultAgentID = models.AgentFocus

// Catalog holds the agent definitions in declaration order plus an id index.
type Catalog struct {
	defs []models.AgentDefinition
	byID map[models.AgentID]models.AgentDefinition
}

// NewCatalog builds the default AURA agent catalog.
func NewCatalog() *Catalog {
	defs := defaultDefinitions()
	byID := make(map[models.AgentID]models.AgentDefinition, len(defs))
	for _, d := range defs {
		byID[d.ID] = d
	}
	return &Catalog{defs: defs, byID: byID}
}

// Definitions returns the agent definitions in declaration order.
func (c *Catalog) Definitions() []models.AgentDefinition {
	return c.defs
}

// ByID looks up an agent definition. The second return is false for unknown ids.
func (c *Catalog) ByID(id models.AgentID) (models.AgentDefinition, bool) {
	d, ok := c.byID[id]
	return d, ok
}

func defaultDefinitions() []models.AgentDefinition {
	return []models.AgentDefinition{
		{
			ID:          models.AgentHealth,
			Name:        "Wellbeing Guide",
			Domain:      models.DomainHealth,
			Description: "Watches mood, stress, and recovery. Always surfaces first when the user is struggling.",
			Triggers: []models.Trigger{
				{Type: models.TriggerKeyword, Condition: "distress language", Priority: 9},
				{Type: models.TriggerContext, Condition: "burnout_score > 70", Priority: 10},
			},
			Capabilities: []string{"mood_tracking", "stress_checkin", "hydration"},
			Keywords: []string{
				"mood", "stress", "anxious", "overwhelmed", "tired",
				"sleep", "sad", "burnout", "hydration", "water",
			},
		},
		{
			ID:          models.AgentMemory,
			Name:        "Memory Keeper",
			Domain:      models.DomainMemory,
			Description: "Captures notes and reminders, recalls what the user told AURA before.",
			Triggers: []models.Trigger{
				{Type: models.TriggerKeyword, Condition: "recall request", Priority: 6},
			},
			Capabilities: []string{"reminders", "notes", "recall"},
			Keywords:     []string{"remember", "remind", "forgot", "note", "recall"},
		},
		{
			ID:          models.AgentFocus,
			Name:        "Focus Partner",
			Domain:      models.DomainFocus,
			Description: "Keeps tasks and deadlines moving. Default handler for unmatched chat.",
			Triggers: []models.Trigger{
				{Type: models.TriggerKeyword, Condition: "task language", Priority: 5},
				{Type: models.TriggerContext, Condition: "focus_session_active", Priority: 7},
			},
			Capabilities: []string{"tasks", "deep_work", "deadlines"},
			Keywords:     []string{"focus", "task", "todo", "work", "deadline", "productivity", "distracted"},
		},
		{
			ID:          models.AgentEducation,
			Name:        "Skill Coach",
			Domain:      models.DomainEducation,
			Description: "Guides learning sessions and skill practice streaks.",
			Triggers: []models.Trigger{
				{Type: models.TriggerKeyword, Condition: "learning intent", Priority: 4},
			},
			Capabilities: []string{"skill_sessions", "courses", "practice"},
			Keywords:     []string{"learn", "study", "course", "skill", "practice"},
		},
		{
			ID:          models.AgentFitness,
			Name:        "Movement Coach",
			Domain:      models.DomainFitness,
			Description: "Suggests workouts sized to current energy and motivation.",
			Triggers: []models.Trigger{
				{Type: models.TriggerKeyword, Condition: "exercise intent", Priority: 5},
			},
			Capabilities: []string{"workouts", "steps", "stretching"},
			Keywords:     []string{"workout", "exercise", "run", "gym", "steps", "stretch"},
		},
		{
			ID:          models.AgentAutomation,
			Name:        "Routine Builder",
			Domain:      models.DomainRoutine,
			Description: "Creates and adjusts daily routines and recurring habits.",
			Triggers: []models.Trigger{
				{Type: models.TriggerKeyword, Condition: "routine intent", Priority: 4},
				{Type: models.TriggerSchedule, Condition: "daily reminder due", Priority: 3},
			},
			Capabilities: []string{"routines", "habits", "scheduling"},
			Keywords:     []string{"routine", "habit", "schedule", "automate", "morning", "evening"},
		},
		{
			ID:          models.AgentCulture,
			Name:        "Culture Curator",
			Domain:      models.DomainCulture,
			Description: "Recommends media and downtime ideas matched to mood.",
			Triggers: []models.Trigger{
				{Type: models.TriggerKeyword, Condition: "leisure intent", Priority: 2},
			},
			Capabilities: []string{"recommendations", "downtime"},
			Keywords:     []string{"movie", "music", "book", "show", "recommend"},
		},
		{
			ID:          models.AgentVision,
			Name:        "Vision Keeper",
			Domain:      models.DomainVision,
			Description: "Holds long-term goals and checks plans against them.",
			Triggers: []models.Trigger{
				{Type: models.TriggerKeyword, Condition: "goal language", Priority: 3},
			},
			Capabilities: []string{"goals", "milestones", "reflection"},
			Keywords:     []string{"goal", "dream", "future", "plan", "vision"},
		},
		{
			ID:          models.AgentStrategy,
			Name:        "Strategy Advisor",
			Domain:      models.DomainFinance,
			Description: "Handles money and high-stakes decisions. Always human-in-the-loop.",
			Triggers: []models.Trigger{
				{Type: models.TriggerKeyword, Condition: "finance language", Priority: 6},
			},
			Capabilities: []string{"budgeting", "decisions"},
			Keywords:     []string{"money", "budget", "finance", "invest", "save", "strategy"},
		},
	}
}
