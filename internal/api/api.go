// Package api provides HTTP handlers and the main API server logic for AuraCore.
//
// It exposes RESTful endpoints for routing user messages through the agent
// orchestrator, managing session context and autonomy mode, executing pending
// actions, and querying relationship engagement state. The API integrates with
// the orchestrator and engagement modules.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aurra-labs/AuraCore/internal/engagement"
	"github.com/aurra-labs/AuraCore/internal/orchestrator"
)

// defaultAddr is the listen address used when none is configured.
const defaultAddr = ":8080"

// shutdownTimeout bounds how long Run waits for in-flight requests on shutdown.
const shutdownTimeout = 10 * time.Second

// Opts holds configuration options for the API server.
type Opts struct {
	Addr string
}

// Option configures Opts.
type Option func(*Opts)

// WithAddr sets the listen address for the API server.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// Server hosts the AuraCore HTTP API.
type Server struct {
	addr   string
	orch   *orchestrator.Orchestrator
	engage *engagement.Service
}

// NewServer creates an API server around the given collaborators.
func NewServer(orch *orchestrator.Orchestrator, engage *engagement.Service, opts ...Option) *Server {
	cfg := Opts{Addr: defaultAddr}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{addr: cfg.Addr, orch: orch, engage: engage}
}

// Handler returns the routed HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/route", s.routeHandler)
	mux.HandleFunc("/context", s.contextHandler)
	mux.HandleFunc("/mode", s.modeHandler)
	mux.HandleFunc("/actions/execute", s.executeActionHandler)
	mux.HandleFunc("/state", s.stateHandler)
	mux.HandleFunc("/engagement", s.engagementHandler)
	mux.HandleFunc("/engagement/interaction", s.interactionHandler)
	mux.HandleFunc("/engagement/interactions", s.interactionsHandler)
	mux.HandleFunc("/engagement/upgrade-eligibility", s.upgradeEligibilityHandler)
	mux.HandleFunc("/engagement/phase-guide", s.phaseGuideHandler)
	mux.HandleFunc("/engagement/upgrade-prompted", s.upgradePromptedHandler)
	return mux
}

// Run starts the HTTP server and blocks until the context is canceled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server.Run: AuraCore API listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server.Run: graceful shutdown failed", "error", err)
			return err
		}
		slog.Info("Server.Run: server stopped")
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server.Run: listener failed", "error", err)
			return err
		}
		return nil
	}
}
