// Package sqlite is an index.Sink backed by a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/vvka-141/pbcore/internal/index"
	"github.com/vvka-141/pbcore/internal/index/sqlite/migrations"
	"github.com/vvka-141/pbcore/internal/retry"
	"github.com/vvka-141/pbcore/pkg/pbcore"
)

// Store persists field maps in two tables: one row per document and one row
// per (field, position) value.
type Store struct {
	db    *sql.DB
	path  string
	retry *retry.Executor
}

var _ index.Sink = (*Store)(nil)

// Open opens or creates the database at path and applies pending migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:    db,
		path:  path,
		retry: retry.NewExecutor(retry.NewSQLiteClassifier(), retry.NewExponentialBackoff(5)),
	}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= current {
			continue
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

// Put replaces everything stored for rec.ID in one transaction, retrying
// while another writer holds the database lock.
func (s *Store) Put(ctx context.Context, rec index.Record) error {
	return s.retry.Execute(ctx, func(ctx context.Context) error {
		return s.put(ctx, rec)
	})
}

func (s *Store) put(ctx context.Context, rec index.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM fields WHERE document_id = ?", rec.ID); err != nil {
		return fmt.Errorf("clearing fields: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, checksum, indexed_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET checksum = excluded.checksum, indexed_at = excluded.indexed_at
	`, rec.ID, rec.Checksum)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	if rec.Fields != nil {
		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO fields (document_id, field, position, value) VALUES (?, ?, ?, ?)")
		if err != nil {
			return fmt.Errorf("preparing insert: %w", err)
		}
		defer stmt.Close()

		var insertErr error
		rec.Fields.Each(func(field string, values []string) {
			for i, v := range values {
				if insertErr != nil {
					return
				}
				if _, err := stmt.ExecContext(ctx, rec.ID, field, i, v); err != nil {
					insertErr = fmt.Errorf("inserting %s[%d]: %w", field, i, err)
				}
			}
		})
		if insertErr != nil {
			return insertErr
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// Checksum returns the stored checksum for id, or "" when id is unknown.
func (s *Store) Checksum(ctx context.Context, id string) (string, error) {
	var sum string
	err := s.db.QueryRowContext(ctx, "SELECT checksum FROM documents WHERE id = ?", id).Scan(&sum)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying checksum: %w", err)
	}
	return sum, nil
}

// Fields loads the stored field map for id. Field order is the order fields
// were first written, value order is preserved.
func (s *Store) Fields(ctx context.Context, id string) (*pbcore.FieldMap, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT field, value FROM fields
		WHERE document_id = ?
		ORDER BY rowid
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying fields: %w", err)
	}
	defer rows.Close()

	fields := pbcore.NewFieldMap()
	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return nil, fmt.Errorf("scanning field: %w", err)
		}
		fields.Add(field, value)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if fields.Len() == 0 {
		var exists int
		err := s.db.QueryRowContext(ctx, "SELECT 1 FROM documents WHERE id = ?", id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", id, pbcore.ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("querying document: %w", err)
		}
	}
	return fields, nil
}

// Search returns the ids of documents with field equal to value.
func (s *Store) Search(ctx context.Context, field, value string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT document_id FROM fields
		WHERE field = ? AND value = ?
		ORDER BY document_id
	`, field, value)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
