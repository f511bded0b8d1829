package models

import "testing"

func TestIsValidAutonomyMode(t *testing.T) {
	valid := []AutonomyMode{ModeDoAsTold, ModeSuggestApprove, ModePredictConfirm, ModeFullAuto, ModeAdaptive}
	for _, m := range valid {
		if !IsValidAutonomyMode(m) {
			t.Errorf("expected %q to be valid", m)
		}
	}
	if IsValidAutonomyMode("autopilot") {
		t.Error("expected unknown mode to be invalid")
	}
	if IsValidAutonomyMode("") {
		t.Error("expected empty mode to be invalid")
	}
}

func TestClampBurnout(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{-5, 0},
		{0, 0},
		{50, 50},
		{100, 100},
		{140, 100},
	}
	for _, c := range cases {
		if got := ClampBurnout(c.in); got != c.want {
			t.Errorf("ClampBurnout(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestClampUrgency(t *testing.T) {
	if got := ClampUrgency(0); got != DefaultUrgency {
		t.Errorf("expected zero urgency to map to default %d, got %d", DefaultUrgency, got)
	}
	if got := ClampUrgency(-3); got != MinUrgency {
		t.Errorf("expected negative urgency clamped to %d, got %d", MinUrgency, got)
	}
	if got := ClampUrgency(15); got != MaxUrgency {
		t.Errorf("expected oversized urgency clamped to %d, got %d", MaxUrgency, got)
	}
	if got := ClampUrgency(7); got != 7 {
		t.Errorf("expected in-range urgency unchanged, got %d", got)
	}
}

func TestContextUpdate_ApplyClampsBurnout(t *testing.T) {
	ctx := DefaultAgentContext()
	score := 180
	stress := LevelHigh
	patch := ContextUpdate{BurnoutScore: &score, Stress: &stress}
	patch.Apply(&ctx)
	if ctx.BurnoutScore != MaxBurnoutScore {
		t.Errorf("expected burnout clamped to %d, got %d", MaxBurnoutScore, ctx.BurnoutScore)
	}
	if ctx.Stress != LevelHigh {
		t.Errorf("expected stress high, got %q", ctx.Stress)
	}
	// Untouched fields keep their values.
	if ctx.Energy != LevelNeutral {
		t.Errorf("expected energy unchanged, got %q", ctx.Energy)
	}
}

func TestContextUpdate_ValidateRejectsBadLevel(t *testing.T) {
	bad := Level("extreme")
	patch := ContextUpdate{Mood: &bad}
	if err := patch.Validate(); err == nil {
		t.Error("expected validation error for undeclared level")
	}
	good := LevelLow
	patch = ContextUpdate{Mood: &good}
	if err := patch.Validate(); err != nil {
		t.Errorf("expected no error for valid level, got %v", err)
	}
}

func TestMaxTriggerPriority(t *testing.T) {
	def := AgentDefinition{
		Triggers: []Trigger{
			{Type: TriggerKeyword, Condition: "stress", Priority: 4},
			{Type: TriggerContext, Condition: "burnout_high", Priority: 9},
		},
	}
	if got := def.MaxTriggerPriority(); got != 9 {
		t.Errorf("expected max trigger priority 9, got %d", got)
	}
	empty := AgentDefinition{}
	if got := empty.MaxTriggerPriority(); got != DefaultUrgency {
		t.Errorf("expected default urgency for empty triggers, got %d", got)
	}
}

func TestInteractionRequest_Validate(t *testing.T) {
	req := InteractionRequest{UserID: "u1", Type: InteractionMood}
	if err := req.Validate(); err != nil {
		t.Errorf("expected valid request, got %v", err)
	}
	req = InteractionRequest{Type: InteractionMood}
	if err := req.Validate(); err != ErrEmptyUserID {
		t.Errorf("expected ErrEmptyUserID, got %v", err)
	}
	req = InteractionRequest{UserID: "u1", Type: "nap"}
	if err := req.Validate(); err != ErrInvalidInteraction {
		t.Errorf("expected ErrInvalidInteraction, got %v", err)
	}
}

func TestEngagementUpdate_IsEmpty(t *testing.T) {
	var u EngagementUpdate
	if !u.IsEmpty() {
		t.Error("expected zero update to be empty")
	}
	n := 3
	u.MoodShares = &n
	if u.IsEmpty() {
		t.Error("expected update with mood shares to be non-empty")
	}
}
