// Package store provides storage backends for AquaBalance user records.
//
// It includes an in-memory store for tests and DSN-less runs, plus
// SQLite and PostgreSQL backends for persistent storage.
package store

import (
	"strings"
	"sync"

	"github.com/akaretnikov/aquabalance/internal/models"
)

// Store is the keyed record store the tracker core depends on.
// GetUser returns nil (not an error) when no record exists for the id, so
// the caller decides when to create one.
type Store interface {
	GetUser(userID int64) (*models.UserRecord, error)
	SaveUser(record models.UserRecord) error
	Close() error
}

// Opts holds configuration options for store backends.
type Opts struct {
	DSN string
}

// Option defines a configuration option for store backends.
type Option func(*Opts)

// WithSQLiteDSN sets a SQLite file path as the store DSN.
func WithSQLiteDSN(dsn string) Option {
	return func(o *Opts) {
		o.DSN = dsn
	}
}

// WithPostgresDSN sets a PostgreSQL connection string as the store DSN.
func WithPostgresDSN(dsn string) Option {
	return func(o *Opts) {
		o.DSN = dsn
	}
}

// DetectDSNType reports "postgres" for PostgreSQL-style connection strings
// and "sqlite" for anything else (assumed to be a file path).
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return "postgres"
	}
	return "sqlite"
}

// InMemoryStore is a map-backed store keyed by user id. Distinct keys may be
// read and written concurrently; the mutex only serializes map access.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[int64]models.UserRecord
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{users: make(map[int64]models.UserRecord)}
}

// GetUser returns a copy of the stored record, or nil when absent.
func (s *InMemoryStore) GetUser(userID int64) (*models.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// SaveUser inserts or replaces the record for its user id.
func (s *InMemoryStore) SaveUser(record models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[record.UserID] = record
	return nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
