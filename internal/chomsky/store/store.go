package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	mdwerror "github.com/msto63/minilang/foundation/core/error"
	mdwlog "github.com/msto63/minilang/foundation/core/log"
	"github.com/msto63/minilang/foundation/lang/ast"
	"github.com/msto63/minilang/foundation/lang/diag"
)

// Run is one persisted analysis of a program
type Run struct {
	ID             string            `json:"id" yaml:"id"`
	Name           string            `json:"name" yaml:"name"`
	Source         string            `json:"source" yaml:"source"`
	SourceHash     string            `json:"source_hash" yaml:"source_hash"`
	OK             bool              `json:"ok" yaml:"ok"`
	SyntaxError    string            `json:"syntax_error,omitempty" yaml:"syntax_error,omitempty"`
	SemanticErrors int               `json:"semantic_errors" yaml:"semantic_errors"`
	Diagnostics    []diag.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
	Symbols        map[string]string `json:"symbols" yaml:"symbols"`
	Trace          string            `json:"trace" yaml:"trace"`
	Tally          ast.Tally         `json:"tally" yaml:"tally"`
	CreatedAt      time.Time         `json:"created_at" yaml:"created_at"`
}

// RunStore defines the interface for run persistence
type RunStore interface {
	Save(ctx context.Context, run *Run) error
	Get(ctx context.Context, id string) (*Run, error)
	List(ctx context.Context, limit int) ([]*Run, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
	Close() error
}

// Config holds configuration for the SQLite store
type Config struct {
	Path   string
	Logger *mdwlog.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{Path: "./data/runs.db"}
}

// SQLiteRunStore implements RunStore using SQLite
type SQLiteRunStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	logger *mdwlog.Logger
}

// Open creates the database file (and its directory) if needed and
// initializes the schema
func Open(cfg Config) (*SQLiteRunStore, error) {
	if cfg.Logger == nil {
		cfg.Logger = mdwlog.GetDefault()
	}
	if cfg.Path == "" {
		cfg.Path = DefaultConfig().Path
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, dbError(err, "failed to create directory")
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, dbError(err, "failed to open database")
	}

	s := &SQLiteRunStore{
		db:     db,
		logger: cfg.Logger.WithField("component", "store"),
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema")
	}

	s.logger.Debug("run store opened", mdwlog.Fields{"path": cfg.Path})
	return s, nil
}

func (s *SQLiteRunStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL,
		source_hash TEXT NOT NULL,
		ok INTEGER NOT NULL DEFAULT 0,
		syntax_error TEXT NOT NULL DEFAULT '',
		semantic_errors INTEGER NOT NULL DEFAULT 0,
		diagnostics TEXT,
		symbols TEXT,
		trace TEXT NOT NULL DEFAULT '',
		tally TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_hash ON runs(source_hash);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Save inserts a run, assigning an ID and creation time when missing
func (s *SQLiteRunStore) Save(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	diagnostics, err := json.Marshal(run.Diagnostics)
	if err != nil {
		return dbError(err, "failed to encode diagnostics")
	}
	symbols, err := json.Marshal(run.Symbols)
	if err != nil {
		return dbError(err, "failed to encode symbols")
	}
	tally, err := json.Marshal(run.Tally)
	if err != nil {
		return dbError(err, "failed to encode tally")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, name, source, source_hash, ok, syntax_error, semantic_errors,
			diagnostics, symbols, trace, tally, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Name, run.Source, run.SourceHash, run.OK, run.SyntaxError, run.SemanticErrors,
		string(diagnostics), string(symbols), run.Trace, string(tally), run.CreatedAt)
	if err != nil {
		return dbError(err, "failed to save run").WithDetail("id", run.ID)
	}

	s.logger.Debug("run saved", mdwlog.Fields{"id": run.ID, "name": run.Name, "ok": run.OK})
	return nil
}

const selectRun = `
	SELECT id, name, source, source_hash, ok, syntax_error, semantic_errors,
		diagnostics, symbols, trace, tally, created_at
	FROM runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var diagnostics, symbols, tally sql.NullString

	if err := row.Scan(&run.ID, &run.Name, &run.Source, &run.SourceHash, &run.OK, &run.SyntaxError,
		&run.SemanticErrors, &diagnostics, &symbols, &run.Trace, &tally, &run.CreatedAt); err != nil {
		return nil, err
	}

	if diagnostics.Valid {
		if err := json.Unmarshal([]byte(diagnostics.String), &run.Diagnostics); err != nil {
			return nil, err
		}
	}
	if symbols.Valid {
		if err := json.Unmarshal([]byte(symbols.String), &run.Symbols); err != nil {
			return nil, err
		}
	}
	if tally.Valid {
		if err := json.Unmarshal([]byte(tally.String), &run.Tally); err != nil {
			return nil, err
		}
	}
	return &run, nil
}

// Get retrieves a run by ID; a missing run yields a NOT_FOUND error
func (s *SQLiteRunStore) Get(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, err := scanRun(s.db.QueryRowContext(ctx, selectRun+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, dbError(err, "failed to get run").WithDetail("id", id)
	}
	return run, nil
}

// List returns the most recent runs, newest first
func (s *SQLiteRunStore) List(ctx context.Context, limit int) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, selectRun+` ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, dbError(err, "failed to list runs")
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan run")
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to list runs")
	}
	return runs, nil
}

// Delete removes a run
func (s *SQLiteRunStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return dbError(err, "failed to delete run").WithDetail("id", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound(id)
	}
	return nil
}

// Count returns the number of stored runs
func (s *SQLiteRunStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, dbError(err, "failed to count runs")
	}
	return n, nil
}

// Ping checks the database connection
func (s *SQLiteRunStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return dbError(err, "database unreachable")
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteRunStore) Close() error {
	return s.db.Close()
}

func dbError(err error, message string) *mdwerror.Error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeDatabaseError).
		WithOperation("store")
}

func notFound(id string) *mdwerror.Error {
	return mdwerror.Newf("run %s not found", id).
		WithCode(mdwerror.CodeNotFound).
		WithOperation("store").
		WithDetail("id", id)
}
