// Package catalog keeps a local SQLite index of almanac dataset files
// that have been inspected, so an operator can answer "which files do I
// have, what kind are they, and when were they recorded" without
// re-reading every file.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

// Entry describes one dataset file to record.
type Entry struct {
	Path          string
	Kind          string
	FormatVersion uint32
	Producer      string
	Segments      int
	Checksum      string // hex blake3 of the file bytes
}

// Row is a recorded entry as read back from the catalog.
type Row struct {
	ID         int64
	Entry      Entry
	RecordedAt string
}

// Store wraps the SQLite catalog database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog database at the given path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("catalog: db path required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.applyPragmas(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := store.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Flush forces a WAL checkpoint to durably persist changes.
func (s *Store) Flush() error {
	if s == nil || s.db == nil {
		return nil
	}
	_, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return err
}

func (s *Store) applyPragmas(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA synchronous=FULL"); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		return err
	}
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	applied_at TEXT NOT NULL
)`); err != nil {
		return err
	}

	var version int
	if err = tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version); err != nil {
		return err
	}
	if version < 1 {
		if err = applyV1(ctx, tx); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, "INSERT INTO schema_migrations(version, applied_at) VALUES(1, ?)", time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func applyV1(ctx context.Context, tx *sql.Tx) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS almanac_files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL,
			kind TEXT NOT NULL,
			format_version INTEGER NOT NULL,
			producer TEXT,
			segments INTEGER NOT NULL,
			checksum TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS almanac_files_kind_idx ON almanac_files(kind)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS almanac_files_checksum_idx ON almanac_files(checksum)`,
	}
	for _, stmt := range ddl {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordFile inserts or refreshes one dataset file. Files are keyed by
// content checksum: re-recording the same bytes updates the path and
// timestamp instead of creating a duplicate row.
func (s *Store) RecordFile(ctx context.Context, e Entry) error {
	if e.Checksum == "" {
		return errors.New("catalog: checksum required")
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO almanac_files(path, kind, format_version, producer, segments, checksum, recorded_at)
VALUES(?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(checksum) DO UPDATE SET
	path = excluded.path,
	recorded_at = excluded.recorded_at`,
		e.Path, e.Kind, e.FormatVersion, e.Producer, e.Segments, e.Checksum,
		time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// ListFiles returns all recorded files, newest first.
func (s *Store) ListFiles(ctx context.Context) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, path, kind, format_version, producer, segments, checksum, recorded_at
FROM almanac_files ORDER BY recorded_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Row
	for rows.Next() {
		var r Row
		var producer sql.NullString
		if err := rows.Scan(&r.ID, &r.Entry.Path, &r.Entry.Kind, &r.Entry.FormatVersion, &producer, &r.Entry.Segments, &r.Entry.Checksum, &r.RecordedAt); err != nil {
			return nil, err
		}
		r.Entry.Producer = producer.String
		out = append(out, r)
	}
	return out, rows.Err()
}
