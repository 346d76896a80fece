package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Config holds local database configuration.
type Config struct {
	// Path is the SQLite database file. Parent directories are created
	// on open; the file itself is created on first use.
	Path string

	// BusyTimeoutMS is how long a connection waits on a locked database
	// before failing.
	BusyTimeoutMS int
}

// Store owns the embedded SQLite database. Its lifecycle (Open ->
// Initialize -> Close) belongs to the composing application; repositories
// receive the Store by injection and never manage it themselves.
type Store struct {
	DB     *sqlx.DB
	logger *zap.Logger

	initOnce sync.Once
	initErr  error
}

// Open opens (creating if absent) the SQLite database at cfg.Path.
// The schema is not touched until Initialize is called.
func Open(cfg *Config, logger *zap.Logger) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	busyTimeout := cfg.BusyTimeoutMS
	if busyTimeout == 0 {
		busyTimeout = 5000
	}

	// foreign_keys and busy_timeout are per-connection pragmas, so they
	// go through the DSN and apply to every pooled connection.
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)",
		cfg.Path, busyTimeout)

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{DB: db, logger: logger}, nil
}

// Initialize brings the schema up to date. It is idempotent and safe to
// call from concurrent goroutines: setup runs once, later and concurrent
// callers all observe the first run's result. An existing database is
// never recreated or cleared.
func (s *Store) Initialize(ctx context.Context) error {
	s.initOnce.Do(func() {
		s.initErr = RunMigrations(s.DB.DB, s.logger)
	})
	if s.initErr != nil {
		return fmt.Errorf("initialize store: %w", s.initErr)
	}
	return ctx.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.DB.Close()
}
