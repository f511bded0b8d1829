package phase

import (
	"strings"
	"testing"
	"time"

	"github.com/aurra-labs/AuraCore/internal/models"
)

func engagementAfter(days int, messages, moods, emotional int) (models.UserEngagement, time.Time) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	return models.UserEngagement{
		FirstInteractionAt:     now.AddDate(0, 0, -days),
		TotalMessages:          messages,
		MoodShares:             moods,
		EmotionalConversations: emotional,
	}, now
}

func TestCalculate_ThresholdBoundaries(t *testing.T) {
	cases := []struct {
		name               string
		days, msgs, moods  int
		emotional          int
		want               models.RelationshipPhase
	}{
		{"fresh user", 0, 1, 0, 0, models.PhaseIntroduction},
		{"days without messages", 10, 5, 0, 0, models.PhaseIntroduction},
		{"familiarity floor", 4, 20, 0, 0, models.PhaseFamiliarity},
		{"just under familiarity days", 3, 200, 50, 50, models.PhaseIntroduction},
		{"trusted example", 15, 60, 5, 0, models.PhaseTrusted},
		{"trusted fails on messages", 15, 45, 5, 0, models.PhaseFamiliarity},
		{"trusted fails on moods", 15, 60, 2, 0, models.PhaseFamiliarity},
		{"companion floor", 30, 100, 3, 10, models.PhaseCompanion},
		{"companion fails on emotional", 40, 150, 5, 9, models.PhaseTrusted},
	}
	for _, c := range cases {
		e, now := engagementAfter(c.days, c.msgs, c.moods, c.emotional)
		if got := Calculate(e, now); got != c.want {
			t.Errorf("%s: expected %q, got %q", c.name, c.want, got)
		}
	}
}

func TestCalculate_MultiStageJump(t *testing.T) {
	// A user inactive for 40 days who then backlogs 100 messages and 10
	// emotional conversations jumps straight to companion: the phase is a
	// pure recomputation, not an incremental transition.
	e, now := engagementAfter(40, 100, 5, 10)
	if got := Calculate(e, now); got != models.PhaseCompanion {
		t.Errorf("expected companion on recompute, got %q", got)
	}
}

func TestCalculate_ZeroFirstInteraction(t *testing.T) {
	e := models.UserEngagement{TotalMessages: 500, MoodShares: 50, EmotionalConversations: 50}
	if got := Calculate(e, time.Now()); got != models.PhaseIntroduction {
		t.Errorf("expected introduction for zero first-interaction, got %q", got)
	}
}

func TestBuildPhaseGuide_AllPhasesNonEmpty(t *testing.T) {
	phases := []models.RelationshipPhase{
		models.PhaseIntroduction, models.PhaseFamiliarity, models.PhaseTrusted, models.PhaseCompanion,
	}
	for _, p := range phases {
		guide := BuildPhaseGuide(p)
		if guide == "" {
			t.Errorf("phase %q: expected non-empty guide", p)
			continue
		}
		if !strings.Contains(guide, "<RELATIONSHIP GUIDE>") || !strings.Contains(guide, "</RELATIONSHIP GUIDE>") {
			t.Errorf("phase %q: guide missing wrapper tags", p)
		}
	}
}

func TestBuildPhaseGuide_UnknownPhaseEmpty(t *testing.T) {
	if got := BuildPhaseGuide("soulmate"); got != "" {
		t.Errorf("expected empty guide for unknown phase, got %q", got)
	}
}
