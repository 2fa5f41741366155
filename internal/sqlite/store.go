// Package sqlite implements the satchel learning-records store on top of a
// single embedded SQLite database file.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/satchel-io/satchel/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Compile-time interface check: Store must implement types.Store.
var _ types.Store = (*Store)(nil)

// Store implements the satchel data store using SQLite as the storage
// engine. A single *sql.DB, which is itself a connection pool, is held for
// the lifetime of the store; every operation is a self-contained call
// against it.
type Store struct {
	mu     sync.RWMutex
	open   bool
	config types.Config
	db     *sql.DB
	log    *slog.Logger
}

// NewStore creates a new store instance. The store is not open; call Open
// with a Config to initialize it. A nil logger means slog.Default().
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{log: logger}
}

// Open initializes the store: opens (creating if absent) the database file,
// applies the schema, and runs startup migrations. Safe to run on every
// startup; the schema uses CREATE TABLE IF NOT EXISTS and the migrations are
// idempotent. Returns ErrAlreadyOpen if the store is already open.
func (s *Store) Open(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return types.ErrAlreadyOpen
	}

	path := config.Path()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("applying schema: %w", err)
	}

	if err := runMigrations(db, s.log); err != nil {
		db.Close()
		return fmt.Errorf("running migrations: %w", err)
	}

	s.db = db
	s.config = config
	s.open = true

	return nil
}

// Close releases the database handle. Close is idempotent; after Close all
// operations return ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil // idempotent
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}

	s.open = false
	return nil
}

// handle returns the database handle, or ErrStoreClosed when the store is
// not open. Every operation acquires its handle through here.
func (s *Store) handle() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}
	return s.db, nil
}

// nowUTC returns the current time in the stored timestamp format.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// parseTime parses a stored timestamp.
func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", value, err)
	}
	return t, nil
}

// parseNullTime parses a nullable stored timestamp into *time.Time.
func parseNullTime(value sql.NullString) (*time.Time, error) {
	if !value.Valid {
		return nil, nil
	}
	t, err := parseTime(value.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
