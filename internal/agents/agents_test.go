package agents

import (
	"strings"
	"testing"

	"github.com/aurra-labs/AuraCore/internal/models"
)

func TestNewCatalog_AllAgentsPresent(t *testing.T) {
	c := NewCatalog()
	defs := c.Definitions()
	if len(defs) != len(models.AllAgentIDs) {
		t.Fatalf("expected %d agents, got %d", len(models.AllAgentIDs), len(defs))
	}
	for i, id := range models.AllAgentIDs {
		if defs[i].ID != id {
			t.Errorf("declaration order mismatch at %d: expected %q, got %q", i, id, defs[i].ID)
		}
		if _, ok := c.ByID(id); !ok {
			t.Errorf("agent %q missing from index", id)
		}
	}
}

func TestIdentifyRelevantAgents_EmptyMessageFallsToDefault(t *testing.T) {
	c := NewCatalog()
	ids := c.IdentifyRelevantAgents("")
	if len(ids) != 1 || ids[0] != DefaultAgentID {
		t.Errorf("expected exactly the default agent, got %v", ids)
	}
}

func TestIdentifyRelevantAgents_NoMatchFallsToDefault(t *testing.T) {
	c := NewCatalog()
	ids := c.IdentifyRelevantAgents("zzz qqq xyzzy")
	if len(ids) != 1 || ids[0] != DefaultAgentID {
		t.Errorf("expected exactly the default agent, got %v", ids)
	}
}

func TestIdentifyRelevantAgents_CaseInsensitiveSubstring(t *testing.T) {
	c := NewCatalog()
	ids := c.IdentifyRelevantAgents("I am SO STRESSED about my deadline")
	want := []models.AgentID{models.AgentHealth, models.AgentFocus}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("expected %v, got %v", want, ids)
			break
		}
	}
}

func TestIdentifyRelevantAgents_MatchesInsideWords(t *testing.T) {
	// "task" must match inside "multitasking": substring semantics are
	// part of the routing contract, not an accident.
	c := NewCatalog()
	ids := c.IdentifyRelevantAgents("multitasking again")
	found := false
	for _, id := range ids {
		if id == models.AgentFocus {
			found = true
		}
	}
	if !found {
		t.Errorf("expected focus agent for embedded keyword, got %v", ids)
	}
}

func TestIdentifyRelevantAgents_TruncatesToThree(t *testing.T) {
	c := NewCatalog()
	msg := "my mood is low, remind me to focus on my workout routine and budget"
	ids := c.IdentifyRelevantAgents(msg)
	if len(ids) != models.MaxRoutedAgents {
		t.Fatalf("expected %d agents, got %d: %v", models.MaxRoutedAgents, len(ids), ids)
	}
	// Truncation is positional: first three matching agents in declaration order.
	want := []models.AgentID{models.AgentHealth, models.AgentMemory, models.AgentFocus}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("expected %v, got %v", want, ids)
			break
		}
	}
}

func TestIdentifyRelevantAgents_Totality(t *testing.T) {
	c := NewCatalog()
	inputs := []string{"", " ", "hello", strings.Repeat("x", 10000), "💧💧💧", "task task task"}
	for _, in := range inputs {
		ids := c.IdentifyRelevantAgents(in)
		if len(ids) < 1 || len(ids) > models.MaxRoutedAgents {
			t.Errorf("input %q: expected 1..%d agents, got %d", in, models.MaxRoutedAgents, len(ids))
		}
	}
}

func TestResolveConflicts_FixedOrder(t *testing.T) {
	in := []models.AgentResponse{
		{AgentID: models.AgentStrategy},
		{AgentID: models.AgentHealth},
		{AgentID: models.AgentVision},
	}
	out := ResolveConflicts(in)
	// Vision (rank 7) outranks strategy (rank 8) in the fixed table.
	want := []models.AgentID{models.AgentHealth, models.AgentVision, models.AgentStrategy}
	for i := range want {
		if out[i].AgentID != want[i] {
			t.Fatalf("expected order %v, got [%v %v %v]", want, out[0].AgentID, out[1].AgentID, out[2].AgentID)
		}
	}
}

func TestResolveConflicts_UnknownSortsLast(t *testing.T) {
	in := []models.AgentResponse{
		{AgentID: "mystery"},
		{AgentID: models.AgentCulture},
	}
	out := ResolveConflicts(in)
	if out[0].AgentID != models.AgentCulture || out[1].AgentID != "mystery" {
		t.Errorf("expected unknown agent last, got %v then %v", out[0].AgentID, out[1].AgentID)
	}
}

func TestResolveConflicts_PassThrough(t *testing.T) {
	if got := ResolveConflicts(nil); len(got) != 0 {
		t.Errorf("expected empty passthrough, got %v", got)
	}
	single := []models.AgentResponse{{AgentID: models.AgentFitness}}
	out := ResolveConflicts(single)
	if len(out) != 1 || out[0].AgentID != models.AgentFitness {
		t.Errorf("expected single-element passthrough, got %v", out)
	}
}

func TestResolveConflicts_DoesNotMutateInput(t *testing.T) {
	in := []models.AgentResponse{
		{AgentID: models.AgentStrategy},
		{AgentID: models.AgentHealth},
	}
	ResolveConflicts(in)
	if in[0].AgentID != models.AgentStrategy {
		t.Error("expected input slice to be left unsorted")
	}
}
