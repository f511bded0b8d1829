package engagement

import (
	"context"
	"testing"
	"time"

	"github.com/aurra-labs/AuraCore/internal/models"
	"github.com/aurra-labs/AuraCore/internal/store"
)

// fixedClock returns a mutable clock function for deterministic tests.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time { return c.t }

func newTestService() (*Service, *store.InMemoryStore, *fixedClock) {
	st := store.NewInMemoryStore()
	clock := &fixedClock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	svc := NewService(st, WithLocation(time.UTC), WithClock(clock.Now))
	return svc, st, clock
}

func TestGet_UpsertOnRead(t *testing.T) {
	svc, st, _ := newTestService()
	ctx := context.Background()

	e, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if e.RelationshipPhase != models.PhaseIntroduction {
		t.Errorf("expected introduction phase, got %q", e.RelationshipPhase)
	}
	if e.SubscriptionTier != models.TierCore {
		t.Errorf("expected core tier, got %q", e.SubscriptionTier)
	}

	// The row is now persisted; a second read returns the same row.
	stored, _ := st.GetEngagement("u1")
	if stored == nil {
		t.Fatal("expected row persisted on first read")
	}
}

func TestGet_EmptyUserID(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.Get(context.Background(), ""); err != models.ErrEmptyUserID {
		t.Errorf("expected ErrEmptyUserID, got %v", err)
	}
}

func TestRecordInteraction_CounterMapping(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		typ   models.InteractionType
		check func(e *models.UserEngagement) int
	}{
		{models.InteractionMessage, func(e *models.UserEngagement) int { return e.TotalMessages }},
		{models.InteractionMood, func(e *models.UserEngagement) int { return e.MoodShares }},
		{models.InteractionSkill, func(e *models.UserEngagement) int { return e.SkillSessions }},
		{models.InteractionRoutine, func(e *models.UserEngagement) int { return e.RoutinesCreated }},
		{models.InteractionEmotional, func(e *models.UserEngagement) int { return e.EmotionalConversations }},
	}
	for _, c := range cases {
		e, err := svc.RecordInteraction(ctx, "u1", c.typ)
		if err != nil {
			t.Fatalf("record %q failed: %v", c.typ, err)
		}
		if got := c.check(e); got != 1 {
			t.Errorf("interaction %q: expected counter 1, got %d", c.typ, got)
		}
	}
}

func TestRecordInteraction_InvalidType(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.RecordInteraction(context.Background(), "u1", "nap"); err != models.ErrInvalidInteraction {
		t.Errorf("expected ErrInvalidInteraction, got %v", err)
	}
}

func TestRecordInteraction_SameDayDoesNotBumpDaysActive(t *testing.T) {
	svc, _, clock := newTestService()
	ctx := context.Background()

	e1, err := svc.RecordInteraction(ctx, "u1", models.InteractionMessage)
	if err != nil {
		t.Fatalf("first record failed: %v", err)
	}
	days := e1.TotalDaysActive

	clock.t = clock.t.Add(2 * time.Hour)
	e2, err := svc.RecordInteraction(ctx, "u1", models.InteractionMessage)
	if err != nil {
		t.Fatalf("second record failed: %v", err)
	}
	if e2.TotalDaysActive != days {
		t.Errorf("expected days active unchanged (%d), got %d", days, e2.TotalDaysActive)
	}
	if e2.TotalMessages != 2 {
		t.Errorf("expected 2 messages, got %d", e2.TotalMessages)
	}
}

func TestRecordInteraction_NewDayBumpsDaysActive(t *testing.T) {
	svc, _, clock := newTestService()
	ctx := context.Background()

	e1, _ := svc.RecordInteraction(ctx, "u1", models.InteractionMessage)
	days := e1.TotalDaysActive

	clock.t = clock.t.AddDate(0, 0, 1)
	e2, err := svc.RecordInteraction(ctx, "u1", models.InteractionMessage)
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if e2.TotalDaysActive != days+1 {
		t.Errorf("expected days active %d, got %d", days+1, e2.TotalDaysActive)
	}
}

func TestRecordInteraction_DuplicateCallsDoubleCount(t *testing.T) {
	// No idempotency keys: two calls for the same logical event both count.
	svc, _, _ := newTestService()
	ctx := context.Background()
	svc.RecordInteraction(ctx, "u1", models.InteractionMood)
	e, _ := svc.RecordInteraction(ctx, "u1", models.InteractionMood)
	if e.MoodShares != 2 {
		t.Errorf("expected mood shares 2, got %d", e.MoodShares)
	}
}

func TestRecordInteraction_PhaseAdvances(t *testing.T) {
	svc, st, clock := newTestService()
	ctx := context.Background()

	// Seed a user on the edge of familiarity: 19 messages, 5 days in.
	first := clock.t.AddDate(0, 0, -5)
	seed := models.NewUserEngagement("u1", first)
	seed.TotalMessages = 19
	seed.LastInteractionAt = clock.t.Add(-time.Hour)
	if err := st.CreateEngagement(seed); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	e, err := svc.RecordInteraction(ctx, "u1", models.InteractionMessage)
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if e.RelationshipPhase != models.PhaseFamiliarity {
		t.Errorf("expected familiarity after 20th message, got %q", e.RelationshipPhase)
	}

	stored, _ := st.GetEngagement("u1")
	if stored.RelationshipPhase != models.PhaseFamiliarity {
		t.Errorf("expected phase persisted, got %q", stored.RelationshipPhase)
	}
}

func TestRecordInteraction_WritesAuditRow(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	svc.RecordInteraction(ctx, "u1", models.InteractionSkill)

	recs, err := svc.Interactions(ctx, "u1")
	if err != nil {
		t.Fatalf("interactions failed: %v", err)
	}
	if len(recs) != 1 || recs[0].Type != models.InteractionSkill {
		t.Errorf("expected one skill audit row, got %v", recs)
	}
}

func TestCanPromptUpgrade_Policy(t *testing.T) {
	svc, _, clock := newTestService()
	threeDaysAgo := clock.t.AddDate(0, 0, -3)
	eightDaysAgo := clock.t.AddDate(0, 0, -8)

	base := func() *models.UserEngagement {
		return &models.UserEngagement{
			TotalMessages:    40,
			SubscriptionTier: models.TierCore,
		}
	}

	e := base()
	if !svc.CanPromptUpgrade(e, false, false) {
		t.Error("expected eligible with 40 messages, core tier, never prompted")
	}

	e = base()
	e.SubscriptionTier = models.TierPremium
	if svc.CanPromptUpgrade(e, false, false) {
		t.Error("expected ineligible for paid tier")
	}

	e = base()
	if svc.CanPromptUpgrade(e, true, false) {
		t.Error("expected ineligible during emotional context")
	}
	if svc.CanPromptUpgrade(e, false, true) {
		t.Error("expected ineligible at night")
	}

	e = base()
	e.TotalMessages = 29
	if svc.CanPromptUpgrade(e, false, false) {
		t.Error("expected ineligible below 30 messages")
	}

	e = base()
	e.UpgradePromptedAt = &threeDaysAgo
	if svc.CanPromptUpgrade(e, false, false) {
		t.Error("expected ineligible 3 days after last prompt")
	}

	e = base()
	e.UpgradePromptedAt = &eightDaysAgo
	if !svc.CanPromptUpgrade(e, false, false) {
		t.Error("expected eligible 8 days after last prompt")
	}

	if svc.CanPromptUpgrade(nil, false, false) {
		t.Error("expected ineligible for nil engagement")
	}
}

func TestMarkUpgradePrompted(t *testing.T) {
	svc, st, clock := newTestService()
	ctx := context.Background()
	svc.Get(ctx, "u1")

	if err := svc.MarkUpgradePrompted(ctx, "u1"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	e, _ := st.GetEngagement("u1")
	if e.UpgradePromptedAt == nil || !e.UpgradePromptedAt.Equal(clock.t) {
		t.Errorf("expected upgrade_prompted_at %v, got %v", clock.t, e.UpgradePromptedAt)
	}
}

func TestPhaseGuide_ReflectsPhase(t *testing.T) {
	svc, st, clock := newTestService()
	ctx := context.Background()

	seed := models.NewUserEngagement("u1", clock.t.AddDate(0, 0, -40))
	seed.TotalMessages = 120
	seed.MoodShares = 8
	seed.EmotionalConversations = 12
	seed.RelationshipPhase = models.PhaseCompanion
	st.CreateEngagement(seed)

	guide, err := svc.PhaseGuide(ctx, "u1")
	if err != nil {
		t.Fatalf("guide failed: %v", err)
	}
	if guide == "" {
		t.Error("expected non-empty guide for companion phase")
	}
}
