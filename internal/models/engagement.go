// Package models defines engagement tracking structures for AuraCore.
package models

import "time"

// RelationshipPhase is the four-stage progression of the companion relationship.
type RelationshipPhase string

const (
	// PhaseIntroduction is the starting phase for every new user.
	PhaseIntroduction RelationshipPhase = "introduction"
	// PhaseFamiliarity unlocks once early engagement thresholds are crossed.
	PhaseFamiliarity RelationshipPhase = "familiarity"
	// PhaseTrusted unlocks after sustained engagement and mood sharing.
	PhaseTrusted RelationshipPhase = "trusted"
	// PhaseCompanion is the deepest phase; counters never decrease, so it is sticky.
	PhaseCompanion RelationshipPhase = "companion"
)

// IsValidRelationshipPhase checks if the given phase is one of the four stages.
func IsValidRelationshipPhase(p RelationshipPhase) bool {
	switch p {
	case PhaseIntroduction, PhaseFamiliarity, PhaseTrusted, PhaseCompanion:
		return true
	default:
		return false
	}
}

// SubscriptionTier identifies the user's plan.
type SubscriptionTier string

const (
	// TierCore is the free tier.
	TierCore SubscriptionTier = "core"
	// TierPremium is the paid tier.
	TierPremium SubscriptionTier = "premium"
)

// InteractionType classifies a recorded user interaction.
type InteractionType string

const (
	InteractionMessage   InteractionType = "message"
	InteractionMood      InteractionType = "mood"
	InteractionSkill     InteractionType = "skill"
	InteractionRoutine   InteractionType = "routine"
	InteractionEmotional InteractionType = "emotional"
)

// IsValidInteractionType checks if the given interaction type is supported.
func IsValidInteractionType(t InteractionType) bool {
	switch t {
	case InteractionMessage, InteractionMood, InteractionSkill, InteractionRoutine, InteractionEmotional:
		return true
	default:
		return false
	}
}

// UserEngagement is one user's cumulative engagement row. Counters are
// monotonically non-decreasing; the relationship phase is a pure function
// of the counters and the days since first interaction.
type UserEngagement struct {
	UserID                 string            `json:"user_id"`
	FirstInteractionAt     time.Time         `json:"first_interaction_at"`
	LastInteractionAt      time.Time         `json:"last_interaction_at"`
	TotalMessages          int               `json:"total_messages"`
	TotalDaysActive        int               `json:"total_days_active"`
	MoodShares             int               `json:"mood_shares"`
	SkillSessions          int               `json:"skill_sessions"`
	RoutinesCreated        int               `json:"routines_created"`
	EmotionalConversations int               `json:"emotional_conversations"`
	RelationshipPhase      RelationshipPhase `json:"relationship_phase"`
	SubscriptionTier       SubscriptionTier  `json:"subscription_tier"`
	UpgradePromptedAt      *time.Time        `json:"upgrade_prompted_at,omitempty"`
	CreatedAt              time.Time         `json:"created_at"`
	UpdatedAt              time.Time         `json:"updated_at"`
}

// NewUserEngagement returns the default row inserted on first contact.
func NewUserEngagement(userID string, now time.Time) UserEngagement {
	return UserEngagement{
		UserID:             userID,
		FirstInteractionAt: now,
		LastInteractionAt:  now,
		TotalDaysActive:    1, // first contact counts as an active day
		RelationshipPhase:  PhaseIntroduction,
		SubscriptionTier:   TierCore,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// EngagementUpdate is a partial update of an engagement row. Nil fields are
// left untouched so each interaction persists only what actually changed.
type EngagementUpdate struct {
	LastInteractionAt      *time.Time         `json:"last_interaction_at,omitempty"`
	TotalMessages          *int               `json:"total_messages,omitempty"`
	TotalDaysActive        *int               `json:"total_days_active,omitempty"`
	MoodShares             *int               `json:"mood_shares,omitempty"`
	SkillSessions          *int               `json:"skill_sessions,omitempty"`
	RoutinesCreated        *int               `json:"routines_created,omitempty"`
	EmotionalConversations *int               `json:"emotional_conversations,omitempty"`
	RelationshipPhase      *RelationshipPhase `json:"relationship_phase,omitempty"`
	SubscriptionTier       *SubscriptionTier  `json:"subscription_tier,omitempty"`
	UpgradePromptedAt      *time.Time         `json:"upgrade_prompted_at,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (u EngagementUpdate) IsEmpty() bool {
	return u.LastInteractionAt == nil && u.TotalMessages == nil && u.TotalDaysActive == nil &&
		u.MoodShares == nil && u.SkillSessions == nil && u.RoutinesCreated == nil &&
		u.EmotionalConversations == nil && u.RelationshipPhase == nil &&
		u.SubscriptionTier == nil && u.UpgradePromptedAt == nil
}

// InteractionRecord is one audit row per classified interaction.
type InteractionRecord struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Type       InteractionType `json:"type"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// InteractionRequest is the payload for recording an interaction via the API.
type InteractionRequest struct {
	UserID string          `json:"user_id"`
	Type   InteractionType `json:"type"`
}

// Validate checks the interaction request fields.
func (r *InteractionRequest) Validate() error {
	if r.UserID == "" {
		return ErrEmptyUserID
	}
	if !IsValidInteractionType(r.Type) {
		return ErrInvalidInteraction
	}
	return nil
}

// RouteRequest is the payload for routing a chat message.
type RouteRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// ModeRequest is the payload for setting the global autonomy mode.
type ModeRequest struct {
	Mode AutonomyMode `json:"mode"`
}

// ExecuteActionRequest is the payload for executing a pending action.
type ExecuteActionRequest struct {
	ActionID string `json:"action_id"`
}

// UpgradeEligibility is the API result of an upgrade-prompt policy check.
type UpgradeEligibility struct {
	Eligible bool              `json:"eligible"`
	Phase    RelationshipPhase `json:"phase"`
}
