package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS parameters (
	path       TEXT PRIMARY KEY,
	value      REAL NOT NULL,
	updated_at TEXT NOT NULL
);`

// Store persists simulated controller parameter values in a SQLite file,
// keyed by full hierarchical path.
type Store struct {
	db   *sql.DB
	path string
	log  *zap.Logger
}

// Open creates or opens the state database at path and ensures the schema exists.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("state path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY between them.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping state database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize state schema: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, path: path, log: logger.Named("store")}, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// LoadValues returns every persisted parameter value keyed by path.
func (s *Store) LoadValues(ctx context.Context) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, value FROM parameters`)
	if err != nil {
		return nil, fmt.Errorf("failed to query parameters: %w", err)
	}
	defer rows.Close()

	values := make(map[string]float64)
	for rows.Next() {
		var (
			path  string
			value float64
		)
		if err := rows.Scan(&path, &value); err != nil {
			return nil, fmt.Errorf("failed to scan parameter row: %w", err)
		}
		values[path] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate parameters: %w", err)
	}
	s.log.Debug("Loaded persisted parameters", zap.Int("count", len(values)))
	return values, nil
}

// SaveValue upserts the value stored for path.
func (s *Store) SaveValue(ctx context.Context, path string, value float64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO parameters (path, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		path, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to persist %s: %w", path, err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close state database: %w", err)
	}
	return nil
}
