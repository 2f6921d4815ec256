// Package sqlite persists the operation history. Every completed
// split or merge is recorded so the history command can show where a
// document's parts went and when.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lociq/sdlsplit/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/lociq/sdlsplit/internal/core/domain"
	"github.com/lociq/sdlsplit/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// Store is the SQLite-backed history store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.sdlsplit/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".sdlsplit", "data")
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Record stores one operation.
func (s *Store) Record(ctx context.Context, op domain.Operation) error {
	outputs, err := json.Marshal(op.Outputs)
	if err != nil {
		return fmt.Errorf("marshalling outputs: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO operations (id, kind, split_id, input, outputs, parts, segments, words, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, op.ID, op.Kind, op.SplitID, op.Input, string(outputs), op.Parts, op.Segments, op.Words, op.Status, op.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting operation: %w", err)
	}
	return nil
}

// List returns the most recent operations, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]domain.Operation, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, split_id, input, outputs, parts, segments, words, status, created_at
		FROM operations
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying operations: %w", err)
	}
	defer rows.Close()

	var ops []domain.Operation //nolint:prealloc // size unknown from query
	for rows.Next() {
		var op domain.Operation
		var outputs string
		if err := rows.Scan(&op.ID, &op.Kind, &op.SplitID, &op.Input, &outputs,
			&op.Parts, &op.Segments, &op.Words, &op.Status, &op.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning operation: %w", err)
		}
		if err := json.Unmarshal([]byte(outputs), &op.Outputs); err != nil {
			return nil, fmt.Errorf("unmarshalling outputs: %w", err)
		}
		ops = append(ops, op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating operations: %w", err)
	}
	return ops, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_operations.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
