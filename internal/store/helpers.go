package store

import (
	"database/sql"
	"fmt"

	"github.com/aurra-labs/AuraCore/internal/models"
)

// engagementColumns is the canonical column order shared by both SQL stores.
const engagementColumns = `user_id, first_interaction_at, last_interaction_at,
	total_messages, total_days_active, mood_shares, skill_sessions,
	routines_created, emotional_conversations, relationship_phase,
	subscription_tier, upgrade_prompted_at, created_at, updated_at`

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanEngagement scans one engagement row in engagementColumns order.
func scanEngagement(row rowScanner) (models.UserEngagement, error) {
	var e models.UserEngagement
	var upgradePromptedAt sql.NullTime
	err := row.Scan(
		&e.UserID, &e.FirstInteractionAt, &e.LastInteractionAt,
		&e.TotalMessages, &e.TotalDaysActive, &e.MoodShares, &e.SkillSessions,
		&e.RoutinesCreated, &e.EmotionalConversations, &e.RelationshipPhase,
		&e.SubscriptionTier, &upgradePromptedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return e, err
	}
	if upgradePromptedAt.Valid {
		e.UpgradePromptedAt = &upgradePromptedAt.Time
	}
	return e, nil
}

// placeholderFunc renders the nth (1-based) SQL placeholder for a dialect.
type placeholderFunc func(n int) string

func sqlitePlaceholder(int) string     { return "?" }
func postgresPlaceholder(n int) string { return fmt.Sprintf("$%d", n) }

// buildEngagementUpdate renders the SET clause and argument list for a
// partial engagement update. Returns ok=false when the update is empty.
func buildEngagementUpdate(u models.EngagementUpdate, ph placeholderFunc) (setClause string, args []interface{}, ok bool) {
	add := func(column string, value interface{}) {
		if setClause != "" {
			setClause += ", "
		}
		args = append(args, value)
		setClause += fmt.Sprintf("%s = %s", column, ph(len(args)))
	}

	if u.LastInteractionAt != nil {
		add("last_interaction_at", *u.LastInteractionAt)
	}
	if u.TotalMessages != nil {
		add("total_messages", *u.TotalMessages)
	}
	if u.TotalDaysActive != nil {
		add("total_days_active", *u.TotalDaysActive)
	}
	if u.MoodShares != nil {
		add("mood_shares", *u.MoodShares)
	}
	if u.SkillSessions != nil {
		add("skill_sessions", *u.SkillSessions)
	}
	if u.RoutinesCreated != nil {
		add("routines_created", *u.RoutinesCreated)
	}
	if u.EmotionalConversations != nil {
		add("emotional_conversations", *u.EmotionalConversations)
	}
	if u.RelationshipPhase != nil {
		add("relationship_phase", string(*u.RelationshipPhase))
	}
	if u.SubscriptionTier != nil {
		add("subscription_tier", string(*u.SubscriptionTier))
	}
	if u.UpgradePromptedAt != nil {
		add("upgrade_prompted_at", *u.UpgradePromptedAt)
	}
	if setClause == "" {
		return "", nil, false
	}
	return setClause, args, true
}

// upgradePromptedValue converts the optional prompt timestamp for insertion.
func upgradePromptedValue(e *models.UserEngagement) interface{} {
	if e.UpgradePromptedAt == nil {
		return nil
	}
	return *e.UpgradePromptedAt
}
