package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/BBBtp/Tracker/migrations"
)

// Store is the SQLite-backed persistence layer. All access happens from a
// single goroutine per the application's execution model, so the connection
// pool is capped at one.
type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// Init creates the database (and its directory) and migrates it to the
// latest schema.
func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if err := migrations.Up(s.db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Load opens an already-initialized database and verifies its schema version.
func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'tracker init' first")
	}

	if err := s.open(); err != nil {
		return err
	}

	if err := migrations.Status(s.db); err != nil {
		return err
	}

	return nil
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection.
// Returns nil if the database has not been initialized or loaded.
// Callers should use Load() before calling this method.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

// builder is the squirrel statement builder configured for SQLite
// question-mark placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
