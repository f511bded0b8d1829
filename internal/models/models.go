// Package models defines the core data structures for AuraCore.
//
// It includes agent definitions, autonomy modes, ambient context, and the
// response payloads shared across modules.
package models

import (
	"errors"
	"time"
)

// AgentID identifies one of the fixed set of AURA agents.
type AgentID string

const (
	// AgentHealth handles mood, stress, and wellbeing check-ins.
	AgentHealth AgentID = "health"
	// AgentMemory handles reminders, notes, and recall.
	AgentMemory AgentID = "memory"
	// AgentFocus handles tasks, deadlines, and deep work.
	AgentFocus AgentID = "focus"
	// AgentEducation handles learning and skill practice.
	AgentEducation AgentID = "education"
	// AgentFitness handles workouts and movement.
	AgentFitness AgentID = "fitness"
	// AgentAutomation handles routines and recurring habits.
	AgentAutomation AgentID = "automation"
	// AgentCulture handles media and leisure recommendations.
	AgentCulture AgentID = "culture"
	// AgentVision handles long-term goals and life planning.
	AgentVision AgentID = "vision"
	// AgentStrategy handles money and high-stakes decisions.
	AgentStrategy AgentID = "strategy"
)

// AllAgentIDs lists every agent in declaration order. Router ties and the
// conflict priority table both depend on this ordering staying fixed.
var AllAgentIDs = []AgentID{
	AgentHealth, AgentMemory, AgentFocus, AgentEducation, AgentFitness,
	AgentAutomation, AgentCulture, AgentVision, AgentStrategy,
}

// IsValidAgentID checks if the given agent id is one of the known agents.
func IsValidAgentID(id AgentID) bool {
	switch id {
	case AgentHealth, AgentMemory, AgentFocus, AgentEducation, AgentFitness,
		AgentAutomation, AgentCulture, AgentVision, AgentStrategy:
		return true
	default:
		return false
	}
}

// Domain buckets agents into life areas and drives autonomy sensitivity rules.
type Domain string

const (
	DomainHealth    Domain = "health"
	DomainMemory    Domain = "memory"
	DomainFocus     Domain = "focus"
	DomainEducation Domain = "education"
	DomainFitness   Domain = "fitness"
	DomainRoutine   Domain = "routine"
	DomainCulture   Domain = "culture"
	DomainVision    Domain = "vision"
	DomainFinance   Domain = "finance"
	DomainSocial    Domain = "social"
)

// AutonomyMode describes how much independent action an agent response implies.
type AutonomyMode string

const (
	// ModeDoAsTold performs exactly what the user asked, nothing more.
	ModeDoAsTold AutonomyMode = "do_as_told"
	// ModeSuggestApprove proposes actions and waits for explicit approval.
	ModeSuggestApprove AutonomyMode = "suggest_approve"
	// ModePredictConfirm predicts the next step and asks for a quick confirm.
	ModePredictConfirm AutonomyMode = "predict_confirm"
	// ModeFullAuto acts without asking.
	ModeFullAuto AutonomyMode = "full_auto"
	// ModeAdaptive defers to the context-driven decision cascade.
	ModeAdaptive AutonomyMode = "adaptive"
)

// IsValidAutonomyMode checks if the given autonomy mode is supported.
func IsValidAutonomyMode(m AutonomyMode) bool {
	switch m {
	case ModeDoAsTold, ModeSuggestApprove, ModePredictConfirm, ModeFullAuto, ModeAdaptive:
		return true
	default:
		return false
	}
}

// Level is the three-step scale used for mood, energy, stress, and motivation.
type Level string

const (
	LevelLow     Level = "low"
	LevelNeutral Level = "neutral"
	LevelHigh    Level = "high"
)

// IsValidLevel checks if the given level is one of the declared values.
func IsValidLevel(l Level) bool {
	switch l {
	case LevelLow, LevelNeutral, LevelHigh:
		return true
	default:
		return false
	}
}

// TimeOfDay buckets the clock into coarse periods.
type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "morning"
	TimeOfDayAfternoon TimeOfDay = "afternoon"
	TimeOfDayEvening   TimeOfDay = "evening"
	TimeOfDayNight     TimeOfDay = "night"
)

// Validation constants for boundary clamping.
const (
	// MinBurnoutScore is the lower bound of the burnout scale.
	MinBurnoutScore = 0
	// MaxBurnoutScore is the upper bound of the burnout scale.
	MaxBurnoutScore = 100
	// MinUrgency is the lowest urgency a trigger or caller may carry.
	MinUrgency = 1
	// MaxUrgency is the highest urgency a trigger or caller may carry.
	MaxUrgency = 10
	// DefaultUrgency is assumed when the caller does not supply one.
	DefaultUrgency = 5
	// RecentResponseLimit bounds the orchestrator's recent-response ring.
	RecentResponseLimit = 20
	// MaxRoutedAgents caps how many agents a single message may activate.
	MaxRoutedAgents = 3
)

// Error variables for better error handling and testability.
var (
	ErrUnknownAgent        = errors.New("unknown agent id")
	ErrInvalidAutonomyMode = errors.New("invalid autonomy mode")
	ErrInvalidLevel        = errors.New("invalid level value")
	ErrEmptyUserID         = errors.New("user id cannot be empty")
	ErrInvalidInteraction  = errors.New("invalid interaction type")
)

// ClampBurnout forces a burnout score into the [0,100] range.
func ClampBurnout(score int) int {
	if score < MinBurnoutScore {
		return MinBurnoutScore
	}
	if score > MaxBurnoutScore {
		return MaxBurnoutScore
	}
	return score
}

// ClampUrgency forces an urgency value into the [1,10] range.
// Zero (unset) maps to the default urgency.
func ClampUrgency(urgency int) int {
	if urgency == 0 {
		return DefaultUrgency
	}
	if urgency < MinUrgency {
		return MinUrgency
	}
	if urgency > MaxUrgency {
		return MaxUrgency
	}
	return urgency
}

// TriggerType describes what kind of signal activates an agent's trigger.
type TriggerType string

const (
	// TriggerKeyword fires on keyword matches in user text.
	TriggerKeyword TriggerType = "keyword"
	// TriggerContext fires on ambient context conditions.
	TriggerContext TriggerType = "context"
	// TriggerSchedule fires on time-based conditions.
	TriggerSchedule TriggerType = "schedule"
)

// Trigger describes one activation rule for an agent.
type Trigger struct {
	Type      TriggerType `json:"type"`
	Condition string      `json:"condition"`
	Priority  int         `json:"priority"` // 1-10, doubles as urgency when the trigger fires
}

// AgentDefinition is a static agent entry in the catalog. Definitions are
// built at startup and never mutated.
type AgentDefinition struct {
	ID           AgentID   `json:"id"`
	Name         string    `json:"name"`
	Domain       Domain    `json:"domain"`
	Description  string    `json:"description"`
	Triggers     []Trigger `json:"triggers,omitempty"`
	Capabilities []string  `json:"capabilities,omitempty"`
	Keywords     []string  `json:"keywords,omitempty"`
}

// MaxTriggerPriority returns the highest trigger priority for the agent,
// or the default urgency when the agent declares no triggers.
func (d AgentDefinition) MaxTriggerPriority() int {
	max := 0
	for _, t := range d.Triggers {
		if t.Priority > max {
			max = t.Priority
		}
	}
	if max == 0 {
		return DefaultUrgency
	}
	return ClampUrgency(max)
}

// AgentContext is the ambient context snapshot used by the autonomy selector.
type AgentContext struct {
	Mood           Level     `json:"mood"`
	Energy         Level     `json:"energy"`
	Stress         Level     `json:"stress"`
	Motivation     Level     `json:"motivation"`
	TimeOfDay      TimeOfDay `json:"time_of_day"`
	DayOfWeek      string    `json:"day_of_week"`
	IsWorkHours    bool      `json:"is_work_hours"`
	InFocusSession bool      `json:"in_focus_session"`
	BurnoutScore   int       `json:"burnout_score"` // clamped to [0,100]
}

// DefaultAgentContext returns the neutral baseline context.
func DefaultAgentContext() AgentContext {
	return AgentContext{
		Mood:         LevelNeutral,
		Energy:       LevelNeutral,
		Stress:       LevelNeutral,
		Motivation:   LevelNeutral,
		TimeOfDay:    TimeOfDayMorning,
		BurnoutScore: 0,
	}
}

// ContextUpdate is a partial context patch. Nil fields are left unchanged.
type ContextUpdate struct {
	Mood           *Level     `json:"mood,omitempty"`
	Energy         *Level     `json:"energy,omitempty"`
	Stress         *Level     `json:"stress,omitempty"`
	Motivation     *Level     `json:"motivation,omitempty"`
	TimeOfDay      *TimeOfDay `json:"time_of_day,omitempty"`
	DayOfWeek      *string    `json:"day_of_week,omitempty"`
	IsWorkHours    *bool      `json:"is_work_hours,omitempty"`
	InFocusSession *bool      `json:"in_focus_session,omitempty"`
	BurnoutScore   *int       `json:"burnout_score,omitempty"`
}

// Validate rejects patches carrying undeclared enum values.
func (u *ContextUpdate) Validate() error {
	for _, l := range []*Level{u.Mood, u.Energy, u.Stress, u.Motivation} {
		if l != nil && !IsValidLevel(*l) {
			return ErrInvalidLevel
		}
	}
	return nil
}

// Apply merges the patch into a context, clamping numeric fields at the boundary.
func (u *ContextUpdate) Apply(ctx *AgentContext) {
	if u.Mood != nil {
		ctx.Mood = *u.Mood
	}
	if u.Energy != nil {
		ctx.Energy = *u.Energy
	}
	if u.Stress != nil {
		ctx.Stress = *u.Stress
	}
	if u.Motivation != nil {
		ctx.Motivation = *u.Motivation
	}
	if u.TimeOfDay != nil {
		ctx.TimeOfDay = *u.TimeOfDay
	}
	if u.DayOfWeek != nil {
		ctx.DayOfWeek = *u.DayOfWeek
	}
	if u.IsWorkHours != nil {
		ctx.IsWorkHours = *u.IsWorkHours
	}
	if u.InFocusSession != nil {
		ctx.InFocusSession = *u.InFocusSession
	}
	if u.BurnoutScore != nil {
		ctx.BurnoutScore = ClampBurnout(*u.BurnoutScore)
	}
}

// SuggestedAction is one approval button attached to an agent response.
type SuggestedAction struct {
	Label  string            `json:"label"`
	Action string            `json:"action"`
	Data   map[string]string `json:"data,omitempty"`
}

// ResponseStat is one label/value display pair attached to an agent response.
type ResponseStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// AgentResponse is the display payload produced for one routed agent.
type AgentResponse struct {
	AgentID   AgentID           `json:"agent_id"`
	AgentName string            `json:"agent_name"`
	Domain    Domain            `json:"domain"`
	Mode      AutonomyMode      `json:"mode"`
	Message   string            `json:"message"`
	Actions   []SuggestedAction `json:"actions,omitempty"`
	Stats     []ResponseStat    `json:"stats,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// PendingAction is a queued approvable action awaiting ExecuteAction.
type PendingAction struct {
	ID        string            `json:"id"`
	AgentID   AgentID           `json:"agent_id"`
	Label     string            `json:"label"`
	Action    string            `json:"action"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// ActionResult is the structured outcome of executing a pending action.
// Unknown action ids report failure here rather than through an error return.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OrchestratorSnapshot is a defensive copy of the orchestrator's session state.
type OrchestratorSnapshot struct {
	GlobalMode      AutonomyMode    `json:"global_mode"`
	Context         AgentContext    `json:"context"`
	ActiveAgents    []AgentID       `json:"active_agents"`
	PendingActions  []PendingAction `json:"pending_actions"`
	RecentResponses []AgentResponse `json:"recent_responses"`
}
