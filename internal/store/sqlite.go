// Package store provides storage backends for AquaBalance user records.
//
// This file implements the SQLite-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	"github.com/akaretnikov/aquabalance/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultDirPermissions defines the default permissions for database directories.
const DefaultDirPermissions = 0755

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

	slog.Debug("Running SQLite migrations")
	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully")

	return &SQLiteStore{db: db}, nil
}

// GetUser retrieves the record for a user id, or nil when absent.
func (s *SQLiteStore) GetUser(userID int64) (*models.UserRecord, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE user_id = ?`, userID)
	record, err := scanUserRow(row)
	if err == sql.ErrNoRows {
		slog.Debug("SQLiteStore GetUser not found", "userID", userID)
		return nil, nil
	}
	if err != nil {
		slog.Error("SQLiteStore GetUser failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to query user %d: %w", userID, err)
	}
	return &record, nil
}

// SaveUser inserts or updates the record for its user id.
func (s *SQLiteStore) SaveUser(record models.UserRecord) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			weight = excluded.weight,
			height = excluded.height,
			age = excluded.age,
			activity = excluded.activity,
			city = excluded.city,
			water_goal_ml = excluded.water_goal_ml,
			calorie_goal_kcal = excluded.calorie_goal_kcal,
			logged_water_ml = excluded.logged_water_ml,
			logged_calories = excluded.logged_calories,
			burned_calories = excluded.burned_calories`

	_, err := s.db.Exec(query, userArgs(record)...)
	if err != nil {
		slog.Error("SQLiteStore SaveUser failed", "error", err, "userID", record.UserID)
		return fmt.Errorf("failed to save user %d: %w", record.UserID, err)
	}
	slog.Debug("SQLiteStore SaveUser succeeded", "userID", record.UserID)
	return nil
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
