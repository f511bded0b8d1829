// Package orchestrator coordinates the AuraCore agent pipeline.
//
// It routes an incoming user message to the relevant agents, determines an
// autonomy mode per agent, synthesizes display responses, resolves conflicts
// between them, and maintains the per-session state: ambient context, global
// mode, pending approvable actions, and a bounded ring of recent responses.
package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aurra-labs/AuraCore/internal/agents"
	"github.com/aurra-labs/AuraCore/internal/autonomy"
	"github.com/aurra-labs/AuraCore/internal/engagement"
	"github.com/aurra-labs/AuraCore/internal/models"
	"github.com/aurra-labs/AuraCore/internal/synth"
	"github.com/aurra-labs/AuraCore/internal/util"
)

// actionNotFoundMessage is the contract message for executing an unknown action id.
const actionNotFoundMessage = "Action not found"

// routineScheduler schedules recurring jobs for approved routine actions.
type routineScheduler interface {
	AddDailyJob(clock string, task func()) error
}

// Orchestrator is the session-scoped coordinator. All mutable session state is
// guarded by a single mutex; collaborators are injected at construction.
type Orchestrator struct {
	catalog  *agents.Catalog
	selector *autonomy.Selector
	synth    *synth.Synthesizer
	engage   *engagement.Service
	sched    routineScheduler
	now      func() time.Time

	mu         sync.Mutex
	globalMode models.AutonomyMode
	agentCtx   models.AgentContext
	active     []models.AgentID
	pending    []models.PendingAction
	recent     []models.AgentResponse
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithScheduler wires a job scheduler used when schedule_routine actions are approved.
func WithScheduler(s routineScheduler) Option {
	return func(o *Orchestrator) { o.sched = s }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New creates an Orchestrator with adaptive global mode and neutral ambient context.
func New(catalog *agents.Catalog, selector *autonomy.Selector, syn *synth.Synthesizer, engage *engagement.Service, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		catalog:    catalog,
		selector:   selector,
		synth:      syn,
		engage:     engage,
		now:        time.Now,
		globalMode: models.ModeAdaptive,
		agentCtx:   models.DefaultAgentContext(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RouteMessage runs the full pipeline for an incoming user message and returns
// the conflict-resolved agent responses. Engagement recording failures are
// logged and do not fail the route.
func (o *Orchestrator) RouteMessage(ctx context.Context, userID, text string) ([]models.AgentResponse, error) {
	if userID == "" {
		return nil, models.ErrEmptyUserID
	}

	o.mu.Lock()
	mode := o.globalMode
	actx := o.agentCtx
	o.mu.Unlock()

	ids := o.catalog.IdentifyRelevantAgents(text)
	responses := make([]models.AgentResponse, 0, len(ids))
	for _, id := range ids {
		def, ok := o.catalog.ByID(id)
		if !ok {
			continue
		}
		agentMode := o.selector.DetermineMode(def.Domain, def.MaxTriggerPriority(), actx, mode)
		responses = append(responses, o.synth.Synthesize(ctx, userID, id, agentMode))
	}
	responses = agents.ResolveConflicts(responses)

	o.mu.Lock()
	o.active = ids
	for _, resp := range responses {
		o.recent = append(o.recent, resp)
		o.queueActionsLocked(resp)
	}
	if overflow := len(o.recent) - models.RecentResponseLimit; overflow > 0 {
		o.recent = o.recent[overflow:]
	}
	o.mu.Unlock()

	if o.engage != nil {
		if _, err := o.engage.RecordInteraction(ctx, userID, models.InteractionMessage); err != nil {
			slog.Error("Orchestrator.RouteMessage: failed to record interaction", "userID", userID, "error", err)
		}
	}

	slog.Info("Orchestrator.RouteMessage: routed message", "userID", userID, "agents", len(responses))
	return responses, nil
}

// queueActionsLocked appends the response's suggested actions to the pending
// queue. Caller must hold o.mu.
func (o *Orchestrator) queueActionsLocked(resp models.AgentResponse) {
	for _, a := range resp.Actions {
		o.pending = append(o.pending, models.PendingAction{
			ID:        util.GenerateActionID(),
			AgentID:   resp.AgentID,
			Label:     a.Label,
			Action:    a.Action,
			Data:      a.Data,
			CreatedAt: o.now(),
		})
	}
}

// ExecuteAction removes the identified action from the pending queue and
// performs it. Unknown ids report failure in the result, never as an error.
// Actions whose side effect fails are re-queued for a later retry.
func (o *Orchestrator) ExecuteAction(id string) models.ActionResult {
	o.mu.Lock()
	idx := -1
	for i, p := range o.pending {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		o.mu.Unlock()
		slog.Warn("Orchestrator.ExecuteAction: unknown action id", "actionID", id)
		return models.ActionResult{Success: false, Message: actionNotFoundMessage}
	}
	action := o.pending[idx]
	o.pending = append(o.pending[:idx], o.pending[idx+1:]...)
	o.mu.Unlock()

	if action.Action == "schedule_routine" && o.sched != nil {
		clock := action.Data["time"]
		if err := o.sched.AddDailyJob(clock, func() {
			slog.Info("Orchestrator: scheduled routine fired", "agentID", action.AgentID, "label", action.Label)
		}); err != nil {
			// Put the action back so the user can retry the approval.
			o.mu.Lock()
			o.pending = append(o.pending, action)
			o.mu.Unlock()
			slog.Error("Orchestrator.ExecuteAction: failed to schedule routine", "actionID", id, "error", err)
			return models.ActionResult{Success: false, Message: "Failed to schedule routine: " + err.Error()}
		}
	}

	slog.Info("Orchestrator.ExecuteAction: executed action", "actionID", id, "action", action.Action)
	return models.ActionResult{Success: true, Message: "Executed: " + action.Label}
}

// SetGlobalMode sets the session-wide autonomy override.
func (o *Orchestrator) SetGlobalMode(mode models.AutonomyMode) error {
	if !models.IsValidAutonomyMode(mode) {
		return models.ErrInvalidAutonomyMode
	}
	o.mu.Lock()
	o.globalMode = mode
	o.mu.Unlock()
	slog.Info("Orchestrator.SetGlobalMode: global mode updated", "mode", mode)
	return nil
}

// UpdateContext merges the partial update into the ambient context. Numeric
// fields are clamped to their documented ranges.
func (o *Orchestrator) UpdateContext(update models.ContextUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}
	o.mu.Lock()
	update.Apply(&o.agentCtx)
	o.mu.Unlock()
	return nil
}

// GetState returns a defensive copy of the session state. Mutating the
// snapshot has no effect on the orchestrator.
func (o *Orchestrator) GetState() models.OrchestratorSnapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	snap := models.OrchestratorSnapshot{
		GlobalMode:      o.globalMode,
		Context:         o.agentCtx,
		ActiveAgents:    append([]models.AgentID(nil), o.active...),
		PendingActions:  make([]models.PendingAction, len(o.pending)),
		RecentResponses: make([]models.AgentResponse, len(o.recent)),
	}
	for i, p := range o.pending {
		snap.PendingActions[i] = copyPendingAction(p)
	}
	for i, r := range o.recent {
		snap.RecentResponses[i] = copyAgentResponse(r)
	}
	return snap
}

func copyPendingAction(p models.PendingAction) models.PendingAction {
	out := p
	out.Data = copyStringMap(p.Data)
	return out
}

func copyAgentResponse(r models.AgentResponse) models.AgentResponse {
	out := r
	if r.Actions != nil {
		out.Actions = make([]models.SuggestedAction, len(r.Actions))
		for i, a := range r.Actions {
			out.Actions[i] = a
			out.Actions[i].Data = copyStringMap(a.Data)
		}
	}
	if r.Stats != nil {
		out.Stats = append([]models.ResponseStat(nil), r.Stats...)
	}
	return out
}

func copyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
