// Package api provides HTTP handlers for AuraCore endpoints.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aurra-labs/AuraCore/internal/models"
)

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("AuraCore is healthy", nil))
}

func (s *Server) routeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.routeHandler: processing route request", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.routeHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req models.RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.routeHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	responses, err := s.orch.RouteMessage(r.Context(), req.UserID, req.Message)
	if err != nil {
		if errors.Is(err, models.ErrEmptyUserID) {
			writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
			return
		}
		slog.Error("Server.routeHandler: routing failed", "error", err, "userID", req.UserID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to route message"))
		return
	}
	slog.Info("Server.routeHandler: message routed", "userID", req.UserID, "responses", len(responses))
	writeJSONResponse(w, http.StatusOK, models.Success(responses))
}

func (s *Server) contextHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.contextHandler: processing context update", "method", r.Method)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var update models.ContextUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		slog.Warn("Server.contextHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := s.orch.UpdateContext(update); err != nil {
		slog.Warn("Server.contextHandler: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Context updated", nil))
}

func (s *Server) modeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.modeHandler: processing mode request", "method", r.Method)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req models.ModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.modeHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := s.orch.SetGlobalMode(req.Mode); err != nil {
		slog.Warn("Server.modeHandler: invalid mode", "mode", req.Mode)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Global mode updated", nil))
}

func (s *Server) executeActionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.executeActionHandler: processing execute request", "method", r.Method)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req models.ExecuteActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.executeActionHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	// Unknown action ids are a structured failure result, not an HTTP error.
	result := s.orch.ExecuteAction(req.ActionID)
	writeJSONResponse(w, http.StatusOK, models.Success(result))
}

func (s *Server) stateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(s.orch.GetState()))
}

func (s *Server) engagementHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing required parameter: user_id"))
		return
	}
	e, err := s.engage.Get(r.Context(), userID)
	if err != nil {
		slog.Error("Server.engagementHandler: failed to load engagement", "error", err, "userID", userID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to load engagement"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(e))
}

func (s *Server) interactionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.interactionHandler: processing interaction", "method", r.Method)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req models.InteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.interactionHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server.interactionHandler: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}
	e, err := s.engage.RecordInteraction(r.Context(), req.UserID, req.Type)
	if err != nil {
		slog.Error("Server.interactionHandler: failed to record interaction", "error", err, "userID", req.UserID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to record interaction"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Recorded(e))
}

func (s *Server) interactionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing required parameter: user_id"))
		return
	}
	records, err := s.engage.Interactions(r.Context(), userID)
	if err != nil {
		slog.Error("Server.interactionsHandler: failed to load interactions", "error", err, "userID", userID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to load interactions"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(records))
}

func (s *Server) upgradePromptedHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.upgradePromptedHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if req.UserID == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing required field: user_id"))
		return
	}
	if err := s.engage.MarkUpgradePrompted(r.Context(), req.UserID); err != nil {
		slog.Error("Server.upgradePromptedHandler: failed to mark prompt", "error", err, "userID", req.UserID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to record upgrade prompt"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Recorded(nil))
}

func (s *Server) phaseGuideHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing required parameter: user_id"))
		return
	}
	guide, err := s.engage.PhaseGuide(r.Context(), userID)
	if err != nil {
		slog.Error("Server.phaseGuideHandler: failed to build phase guide", "error", err, "userID", userID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to build phase guide"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]string{"guide": guide}))
}

func (s *Server) upgradeEligibilityHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	userID := q.Get("user_id")
	if userID == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing required parameter: user_id"))
		return
	}
	emotional, _ := strconv.ParseBool(q.Get("emotional"))
	night, _ := strconv.ParseBool(q.Get("night"))

	e, err := s.engage.Get(r.Context(), userID)
	if err != nil {
		slog.Error("Server.upgradeEligibilityHandler: failed to load engagement", "error", err, "userID", userID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to load engagement"))
		return
	}
	eligibility := models.UpgradeEligibility{
		Eligible: s.engage.CanPromptUpgrade(e, emotional, night),
		Phase:    e.RelationshipPhase,
	}
	writeJSONResponse(w, http.StatusOK, models.Success(eligibility))
}
