// Package engagement tracks per-user engagement counters and derives the
// relationship phase on every recorded interaction.
package engagement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aurra-labs/AuraCore/internal/models"
	"github.com/aurra-labs/AuraCore/internal/phase"
	"github.com/aurra-labs/AuraCore/internal/store"
	"github.com/aurra-labs/AuraCore/internal/util"
)

// Upgrade-prompt policy constants.
const (
	// MinMessagesForUpgrade gates upsells behind demonstrated engagement.
	MinMessagesForUpgrade = 30
	// UpgradeCooldown is the minimum interval between upgrade prompts.
	UpgradeCooldown = 7 * 24 * time.Hour
)

// Service manages engagement rows through a Store backend.
type Service struct {
	store store.Store
	loc   *time.Location
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLocation sets the location used for calendar-day comparisons.
// Defaults to time.Local, matching the device-date semantics of the app.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		s.loc = loc
	}
}

// WithClock overrides the time source (tests only).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates an engagement service over the given store.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{store: st, loc: time.Local, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get fetches the engagement row for a user, inserting the default row on
// first contact (upsert-on-read).
func (s *Service) Get(ctx context.Context, userID string) (*models.UserEngagement, error) {
	if userID == "" {
		return nil, models.ErrEmptyUserID
	}
	e, err := s.store.GetEngagement(userID)
	if err != nil {
		slog.Error("Service.Get: engagement fetch failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to fetch engagement: %w", err)
	}
	if e != nil {
		return e, nil
	}

	fresh := models.NewUserEngagement(userID, s.now())
	if err := s.store.CreateEngagement(fresh); err != nil {
		slog.Error("Service.Get: engagement insert failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to create engagement: %w", err)
	}
	slog.Info("Service.Get: created engagement row on first contact", "userID", userID)
	return &fresh, nil
}

// RecordInteraction increments the counter matching the interaction type,
// updates activity timestamps, re-derives the relationship phase, and
// persists only the fields that changed.
//
// totalDaysActive increments only when the calendar day (in the service's
// location) differs from the previous lastInteractionAt. There is no
// idempotency key: duplicate calls for the same logical event double-count.
func (s *Service) RecordInteraction(ctx context.Context, userID string, t models.InteractionType) (*models.UserEngagement, error) {
	if !models.IsValidInteractionType(t) {
		return nil, models.ErrInvalidInteraction
	}
	e, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	update := models.EngagementUpdate{LastInteractionAt: &now}

	switch t {
	case models.InteractionMessage:
		e.TotalMessages++
		update.TotalMessages = &e.TotalMessages
	case models.InteractionMood:
		e.MoodShares++
		update.MoodShares = &e.MoodShares
	case models.InteractionSkill:
		e.SkillSessions++
		update.SkillSessions = &e.SkillSessions
	case models.InteractionRoutine:
		e.RoutinesCreated++
		update.RoutinesCreated = &e.RoutinesCreated
	case models.InteractionEmotional:
		e.EmotionalConversations++
		update.EmotionalConversations = &e.EmotionalConversations
	}

	if !sameCalendarDay(e.LastInteractionAt, now, s.loc) {
		e.TotalDaysActive++
		update.TotalDaysActive = &e.TotalDaysActive
	}
	e.LastInteractionAt = now

	if derived := phase.Calculate(*e, now); derived != e.RelationshipPhase {
		slog.Info("Service.RecordInteraction: relationship phase advanced",
			"userID", userID, "from", e.RelationshipPhase, "to", derived)
		e.RelationshipPhase = derived
		update.RelationshipPhase = &derived
	}

	if err := s.store.UpdateEngagement(userID, update); err != nil {
		slog.Error("Service.RecordInteraction: engagement update failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to update engagement: %w", err)
	}

	rec := models.InteractionRecord{
		ID:         util.GenerateInteractionID(),
		UserID:     userID,
		Type:       t,
		RecordedAt: now,
	}
	if err := s.store.AddInteraction(rec); err != nil {
		// The audit trail is best-effort; counters are already persisted.
		slog.Error("Service.RecordInteraction: audit insert failed", "error", err, "userID", userID)
	}

	return e, nil
}

// Interactions returns the audit trail for a user, oldest first.
func (s *Service) Interactions(ctx context.Context, userID string) ([]models.InteractionRecord, error) {
	return s.store.GetInteractions(userID)
}

// CanPromptUpgrade applies the upgrade-prompt policy. All conditions must
// hold: free tier, not an emotionally vulnerable or night-time moment,
// enough accumulated messages, and no prompt within the cooldown window.
func (s *Service) CanPromptUpgrade(e *models.UserEngagement, isEmotionalContext, isNightTime bool) bool {
	if e == nil {
		return false
	}
	if e.SubscriptionTier != models.TierCore {
		return false
	}
	// Never upsell during vulnerable moments.
	if isEmotionalContext || isNightTime {
		return false
	}
	if e.TotalMessages < MinMessagesForUpgrade {
		return false
	}
	if e.UpgradePromptedAt != nil && s.now().Sub(*e.UpgradePromptedAt) < UpgradeCooldown {
		return false
	}
	return true
}

// MarkUpgradePrompted records that an upgrade prompt was shown now.
func (s *Service) MarkUpgradePrompted(ctx context.Context, userID string) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	now := s.now()
	err := s.store.UpdateEngagement(userID, models.EngagementUpdate{UpgradePromptedAt: &now})
	if err != nil {
		slog.Error("Service.MarkUpgradePrompted: update failed", "error", err, "userID", userID)
		return fmt.Errorf("failed to mark upgrade prompted: %w", err)
	}
	return nil
}

// PhaseGuide returns the tone-guidance snippet for the user's current phase.
func (s *Service) PhaseGuide(ctx context.Context, userID string) (string, error) {
	e, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return phase.BuildPhaseGuide(e.RelationshipPhase), nil
}

// sameCalendarDay reports whether two instants fall on the same date in loc.
func sameCalendarDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
