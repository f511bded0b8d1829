// Package store provides storage backends for AuraCore engagement data.
//
// It includes SQLite and PostgreSQL stores with embedded migrations, plus an
// in-memory store used by tests and ephemeral sessions.
package store

import (
	"strings"

	"github.com/aurra-labs/AuraCore/internal/models"
)

// Opts holds configuration for store construction.
type Opts struct {
	// DSN is the database connection string (file path for SQLite).
	DSN string
}

// Option configures store construction.
type Option func(*Opts)

// WithDSN sets the database DSN.
func WithDSN(dsn string) Option {
	return func(o *Opts) {
		o.DSN = dsn
	}
}

// DetectDSNType classifies a DSN as "postgres" or "sqlite". PostgreSQL DSNs
// use URL or key=value form; anything else is treated as a SQLite file path.
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return "postgres"
	}
	return "sqlite"
}

// Store is the persistence contract for engagement rows and the
// per-interaction audit trail.
//
// GetEngagement returns (nil, nil) when no row exists for the user; callers
// handle upsert-on-read. UpdateEngagement applies only the non-nil fields of
// the update, so each interaction writes exactly what changed.
type Store interface {
	GetEngagement(userID string) (*models.UserEngagement, error)
	CreateEngagement(e models.UserEngagement) error
	UpdateEngagement(userID string, u models.EngagementUpdate) error
	ListEngagements() ([]models.UserEngagement, error)

	AddInteraction(rec models.InteractionRecord) error
	GetInteractions(userID string) ([]models.InteractionRecord, error)

	Close() error
}
