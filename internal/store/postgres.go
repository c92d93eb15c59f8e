// Package store provides storage backends for AquaBalance user records.
//
// This file implements the PostgreSQL-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/akaretnikov/aquabalance/internal/models"
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
	slog.Debug("NewPostgresStore invoked", "DSN_set", cfg.DSN != "")

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

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	slog.Debug("Running Postgres migrations")
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")

	return &PostgresStore{db: db}, nil
}

// GetUser retrieves the record for a user id, or nil when absent.
func (s *PostgresStore) GetUser(userID int64) (*models.UserRecord, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
	record, err := scanUserRow(row)
	if err == sql.ErrNoRows {
		slog.Debug("PostgresStore GetUser not found", "userID", userID)
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore GetUser failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to query user %d: %w", userID, err)
	}
	return &record, nil
}

// SaveUser inserts or updates the record for its user id.
func (s *PostgresStore) SaveUser(record models.UserRecord) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			weight = EXCLUDED.weight,
			height = EXCLUDED.height,
			age = EXCLUDED.age,
			activity = EXCLUDED.activity,
			city = EXCLUDED.city,
			water_goal_ml = EXCLUDED.water_goal_ml,
			calorie_goal_kcal = EXCLUDED.calorie_goal_kcal,
			logged_water_ml = EXCLUDED.logged_water_ml,
			logged_calories = EXCLUDED.logged_calories,
			burned_calories = EXCLUDED.burned_calories`

	_, err := s.db.Exec(query, userArgs(record)...)
	if err != nil {
		slog.Error("PostgresStore SaveUser failed", "error", err, "userID", record.UserID)
		return fmt.Errorf("failed to save user %d: %w", record.UserID, err)
	}
	slog.Debug("PostgresStore SaveUser succeeded", "userID", record.UserID)
	return nil
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
