// Package store provides storage backends for AuraCore.
//
// This file implements an SQLite-backed store for engagement rows.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	"github.com/aurra-labs/AuraCore/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// Constants for SQLite store configuration
const (
	// DefaultDirPermissions defines the default permissions for database directories
	DefaultDirPermissions = 0755
)

//go:embed migrations_sqlite.sql
var sqliteMigrations string

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN.
// The DSN should be a file path to the SQLite database file.
// If the directory doesn't exist, it will be created.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	// Ensure the directory exists
	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	// Run migrations to ensure tables exist
	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully")

	return &SQLiteStore{db: db}, nil
}

// GetEngagement fetches one engagement row, or (nil, nil) when absent.
func (s *SQLiteStore) GetEngagement(userID string) (*models.UserEngagement, error) {
	query := `SELECT ` + engagementColumns + ` FROM engagements WHERE user_id = ?`
	e, err := scanEngagement(s.db.QueryRow(query, userID))
	if err == sql.ErrNoRows {
		slog.Debug("SQLiteStore GetEngagement not found", "userID", userID)
		return nil, nil
	}
	if err != nil {
		slog.Error("SQLiteStore GetEngagement failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to query engagement for %s: %w", userID, err)
	}
	return &e, nil
}

// CreateEngagement inserts a new engagement row.
func (s *SQLiteStore) CreateEngagement(e models.UserEngagement) error {
	query := `INSERT INTO engagements (` + engagementColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.Exec(query,
		e.UserID, e.FirstInteractionAt, e.LastInteractionAt,
		e.TotalMessages, e.TotalDaysActive, e.MoodShares, e.SkillSessions,
		e.RoutinesCreated, e.EmotionalConversations, string(e.RelationshipPhase),
		string(e.SubscriptionTier), upgradePromptedValue(&e), e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		slog.Error("SQLiteStore CreateEngagement failed", "error", err, "userID", e.UserID)
		return fmt.Errorf("failed to insert engagement for %s: %w", e.UserID, err)
	}
	slog.Debug("SQLiteStore CreateEngagement succeeded", "userID", e.UserID)
	return nil
}

// UpdateEngagement applies a partial update to an engagement row.
func (s *SQLiteStore) UpdateEngagement(userID string, u models.EngagementUpdate) error {
	setClause, args, ok := buildEngagementUpdate(u, sqlitePlaceholder)
	if !ok {
		slog.Debug("SQLiteStore UpdateEngagement skipped empty update", "userID", userID)
		return nil
	}
	args = append(args, time.Now(), userID)
	query := fmt.Sprintf(`UPDATE engagements SET %s, updated_at = ? WHERE user_id = ?`, setClause)
	_, err := s.db.Exec(query, args...)
	if err != nil {
		slog.Error("SQLiteStore UpdateEngagement failed", "error", err, "userID", userID)
		return fmt.Errorf("failed to update engagement for %s: %w", userID, err)
	}
	slog.Debug("SQLiteStore UpdateEngagement succeeded", "userID", userID)
	return nil
}

// ListEngagements returns all engagement rows.
func (s *SQLiteStore) ListEngagements() ([]models.UserEngagement, error) {
	rows, err := s.db.Query(`SELECT ` + engagementColumns + ` FROM engagements`)
	if err != nil {
		slog.Error("SQLiteStore ListEngagements query failed", "error", err)
		return nil, fmt.Errorf("failed to query engagements: %w", err)
	}
	defer rows.Close()

	var out []models.UserEngagement
	for rows.Next() {
		e, err := scanEngagement(rows)
		if err != nil {
			slog.Error("SQLiteStore ListEngagements scan failed", "error", err)
			return nil, fmt.Errorf("failed to scan engagement row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		slog.Error("SQLiteStore ListEngagements rows iteration failed", "error", err)
		return nil, fmt.Errorf("failed to iterate engagement rows: %w", err)
	}
	return out, nil
}

// AddInteraction appends one interaction audit row.
func (s *SQLiteStore) AddInteraction(rec models.InteractionRecord) error {
	_, err := s.db.Exec(`INSERT INTO interactions (id, user_id, type, recorded_at) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.UserID, string(rec.Type), rec.RecordedAt)
	if err != nil {
		slog.Error("SQLiteStore AddInteraction failed", "error", err, "userID", rec.UserID)
		return fmt.Errorf("failed to insert interaction for %s: %w", rec.UserID, err)
	}
	return nil
}

// GetInteractions returns the interaction audit trail for a user, oldest first.
func (s *SQLiteStore) GetInteractions(userID string) ([]models.InteractionRecord, error) {
	rows, err := s.db.Query(`SELECT id, user_id, type, recorded_at FROM interactions WHERE user_id = ? ORDER BY recorded_at`, userID)
	if err != nil {
		slog.Error("SQLiteStore GetInteractions query failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to query interactions for %s: %w", userID, err)
	}
	defer rows.Close()

	var out []models.InteractionRecord
	for rows.Next() {
		var rec models.InteractionRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Type, &rec.RecordedAt); err != nil {
			slog.Error("SQLiteStore GetInteractions scan failed", "error", err)
			return nil, fmt.Errorf("failed to scan interaction row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interaction rows: %w", err)
	}
	return out, nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	slog.Debug("Closing SQLite database connection")
	err := s.db.Close()
	if err != nil {
		slog.Error("Failed to close SQLite database", "error", err)
	}
	return err
}
