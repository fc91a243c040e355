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
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/wsamples/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/wsamples/internal/core/domain"
	"github.com/custodia-labs/wsamples/internal/core/ports/driven"
)

// Store is a SQLite database holding the run history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in dataDir.
// If dataDir is empty, defaults to ~/.wsamples/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".wsamples")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

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

// HistoryStore returns the run history view of the store.
func (s *Store) HistoryStore() driven.HistoryStore {
	return &historyStore{db: s.db}
}

func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

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
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_runs.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// Ensure historyStore implements the interface.
var _ driven.HistoryStore = (*historyStore)(nil)

type historyStore struct {
	db *sql.DB
}

func (s *historyStore) Record(ctx context.Context, rec domain.RunRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("%w: run record without id", domain.ErrInvalidInput)
	}

	args := rec.Args
	if args == nil {
		args = domain.Args{}
	}
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encoding args: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, sample, args, status, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Sample, string(argsJSON), string(rec.Status), rec.Error,
		rec.StartedAt.UTC(), rec.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

func (s *historyStore) List(ctx context.Context, sample string, limit int) ([]domain.RunRecord, error) {
	query := `SELECT id, sample, args, status, error, started_at, finished_at FROM runs`
	var params []any
	if sample != "" {
		query += ` WHERE sample = ?`
		params = append(params, sample)
	}
	query += ` ORDER BY started_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		params = append(params, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []domain.RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (s *historyStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs`); err != nil {
		return fmt.Errorf("clearing runs: %w", err)
	}
	return nil
}

func scanRun(rows *sql.Rows) (*domain.RunRecord, error) {
	var (
		rec        domain.RunRecord
		argsJSON   string
		status     string
		startedAt  time.Time
		finishedAt time.Time
	)
	if err := rows.Scan(&rec.ID, &rec.Sample, &argsJSON, &status, &rec.Error, &startedAt, &finishedAt); err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	if argsJSON != "" {
		if err := json.Unmarshal([]byte(argsJSON), &rec.Args); err != nil {
			return nil, fmt.Errorf("decoding args for run %s: %w", rec.ID, err)
		}
	}
	rec.Status = domain.RunStatus(status)
	rec.StartedAt = startedAt
	rec.FinishedAt = finishedAt
	return &rec, nil
}
