// Package store provides storage backends for AuraCore.
//
// This file implements a PostgreSQL-backed store for engagement rows.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/aurra-labs/AuraCore/internal/models"
	_ "github.com/lib/pq"
)

// Database connection pool configuration constants
const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections in the pool
	DefaultMaxIdleConns = 25
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store based on provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("PostgresStore.NewPostgresStore: creating Postgres store", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}

	// Configure connection pool for better performance
	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")
	return &PostgresStore{db: db}, nil
}

// GetEngagement fetches one engagement row, or (nil, nil) when absent.
func (s *PostgresStore) GetEngagement(userID string) (*models.UserEngagement, error) {
	query := `SELECT ` + engagementColumns + ` FROM engagements WHERE user_id = $1`
	e, err := scanEngagement(s.db.QueryRow(query, userID))
	if err == sql.ErrNoRows {
		slog.Debug("PostgresStore GetEngagement not found", "userID", userID)
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore GetEngagement failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to query engagement for %s: %w", userID, err)
	}
	return &e, nil
}

// CreateEngagement inserts a new engagement row.
func (s *PostgresStore) CreateEngagement(e models.UserEngagement) error {
	query := `INSERT INTO engagements (` + engagementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := s.db.Exec(query,
		e.UserID, e.FirstInteractionAt, e.LastInteractionAt,
		e.TotalMessages, e.TotalDaysActive, e.MoodShares, e.SkillSessions,
		e.RoutinesCreated, e.EmotionalConversations, string(e.RelationshipPhase),
		string(e.SubscriptionTier), upgradePromptedValue(&e), e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		slog.Error("PostgresStore CreateEngagement failed", "error", err, "userID", e.UserID)
		return fmt.Errorf("failed to insert engagement for %s: %w", e.UserID, err)
	}
	slog.Debug("PostgresStore CreateEngagement succeeded", "userID", e.UserID)
	return nil
}

// UpdateEngagement applies a partial update to an engagement row.
func (s *PostgresStore) UpdateEngagement(userID string, u models.EngagementUpdate) error {
	setClause, args, ok := buildEngagementUpdate(u, postgresPlaceholder)
	if !ok {
		slog.Debug("PostgresStore UpdateEngagement skipped empty update", "userID", userID)
		return nil
	}
	args = append(args, time.Now(), userID)
	query := fmt.Sprintf(`UPDATE engagements SET %s, updated_at = $%d WHERE user_id = $%d`,
		setClause, len(args)-1, len(args))
	_, err := s.db.Exec(query, args...)
	if err != nil {
		slog.Error("PostgresStore UpdateEngagement failed", "error", err, "userID", userID)
		return fmt.Errorf("failed to update engagement for %s: %w", userID, err)
	}
	slog.Debug("PostgresStore UpdateEngagement succeeded", "userID", userID)
	return nil
}

// ListEngagements returns all engagement rows.
func (s *PostgresStore) ListEngagements() ([]models.UserEngagement, error) {
	rows, err := s.db.Query(`SELECT ` + engagementColumns + ` FROM engagements`)
	if err != nil {
		slog.Error("PostgresStore ListEngagements query failed", "error", err)
		return nil, fmt.Errorf("failed to query engagements: %w", err)
	}
	defer rows.Close()

	var out []models.UserEngagement
	for rows.Next() {
		e, err := scanEngagement(rows)
		if err != nil {
			slog.Error("PostgresStore ListEngagements scan failed", "error", err)
			return nil, fmt.Errorf("failed to scan engagement row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate engagement rows: %w", err)
	}
	return out, nil
}

// AddInteraction appends one interaction audit row.
func (s *PostgresStore) AddInteraction(rec models.InteractionRecord) error {
	_, err := s.db.Exec(`INSERT INTO interactions (id, user_id, type, recorded_at) VALUES ($1, $2, $3, $4)`,
		rec.ID, rec.UserID, string(rec.Type), rec.RecordedAt)
	if err != nil {
		slog.Error("PostgresStore AddInteraction failed", "error", err, "userID", rec.UserID)
		return fmt.Errorf("failed to insert interaction for %s: %w", rec.UserID, err)
	}
	return nil
}

// GetInteractions returns the interaction audit trail for a user, oldest first.
func (s *PostgresStore) GetInteractions(userID string) ([]models.InteractionRecord, error) {
	rows, err := s.db.Query(`SELECT id, user_id, type, recorded_at FROM interactions WHERE user_id = $1 ORDER BY recorded_at`, userID)
	if err != nil {
		slog.Error("PostgresStore GetInteractions query failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to query interactions for %s: %w", userID, err)
	}
	defer rows.Close()

	var out []models.InteractionRecord
	for rows.Next() {
		var rec models.InteractionRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Type, &rec.RecordedAt); err != nil {
			slog.Error("PostgresStore GetInteractions scan failed", "error", err)
			return nil, fmt.Errorf("failed to scan interaction row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interaction rows: %w", err)
	}
	return out, nil
}

// Close closes the Postgres database connection.
func (s *PostgresStore) Close() error {
	slog.Debug("Closing Postgres database connection")
	err := s.db.Close()
	if err != nil {
		slog.Error("Failed to close Postgres database", "error", err)
	}
	return err
}
