// Package buildstore keeps a history of SoC builds in a local SQLite database.
package buildstore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	// sqlite driver.
	_ "modernc.org/sqlite"

	"go.fpgaboards.dev/boards/logging"
)

// Status of a build.
type Status string

// Build states.
const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

const createBuilds = `CREATE TABLE IF NOT EXISTS builds (
    build_id TEXT PRIMARY KEY,
    board TEXT NOT NULL,
    variant TEXT NOT NULL,
    toolchain TEXT NOT NULL,
    sys_clk_freq REAL NOT NULL,
    output_dir TEXT NOT NULL,
    status TEXT NOT NULL,
    error TEXT NOT NULL DEFAULT '',
    started_at TEXT NOT NULL,
    finished_at TEXT
);`

// ErrNotFound is returned by Get for an unknown build id.
var ErrNotFound = errors.New("build not found")

// Build is one row of the history.
type Build struct {
	ID         string
	Board      string
	Variant    string
	Toolchain  string
	SysClkFreq float64
	OutputDir  string
	Status     Status
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Store is the build history database.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	logger logging.Logger
	now    func() time.Time
}

// Open opens or creates the database at path.
func Open(ctx context.Context, path string, logger logging.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating history directory")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	// one writer at a time; modernc serializes anyway.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, createBuilds); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating builds table")
	}
	logger.Debugw("opened build history", "path", path)
	return &Store{db: db, logger: logger, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a running build and returns it with a fresh id.
func (s *Store) Record(ctx context.Context, b Build) (Build, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.Board == "" {
		return Build{}, errors.New("build has no board")
	}
	b.ID = uuid.NewString()
	b.Status = StatusRunning
	b.Error = ""
	b.StartedAt = s.now().Truncate(time.Second)
	b.FinishedAt = time.Time{}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO builds (build_id, board, variant, toolchain, sys_clk_freq, output_dir, status, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Board, b.Variant, b.Toolchain, b.SysClkFreq, b.OutputDir, string(b.Status), b.StartedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Build{}, errors.Wrap(err, "recording build")
	}
	return b, nil
}

// Finish marks a build done. A nil buildErr means it succeeded.
func (s *Store) Finish(ctx context.Context, id string, buildErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, msg := StatusSucceeded, ""
	if buildErr != nil {
		status, msg = StatusFailed, buildErr.Error()
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE builds SET status = ?, error = ?, finished_at = ? WHERE build_id = ?`,
		string(status), msg, s.now().Truncate(time.Second).Format(time.RFC3339), id,
	)
	if err != nil {
		return errors.Wrapf(err, "finishing build %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Wrap(ErrNotFound, id)
	}
	return nil
}

const selectBuilds = `SELECT build_id, board, variant, toolchain, sys_clk_freq, output_dir, status, error, started_at, finished_at FROM builds`

// Get returns one build.
func (s *Store) Get(ctx context.Context, id string) (Build, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.db.QueryRowContext(ctx, selectBuilds+` WHERE build_id = ?`, id)
	b, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Build{}, errors.Wrap(ErrNotFound, id)
	}
	return b, err
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	Board string
	Limit int
}

// List returns builds, most recent first.
func (s *Store) List(ctx context.Context, f Filter) ([]Build, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	query := selectBuilds
	var args []interface{}
	if f.Board != "" {
		query += ` WHERE board = ?`
		args = append(args, f.Board)
	}
	query += ` ORDER BY started_at DESC, rowid DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "listing builds")
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		builds = append(builds, b)
	}
	return builds, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBuild(row scanner) (Build, error) {
	var (
		b        Build
		status   string
		started  string
		finished sql.NullString
	)
	if err := row.Scan(&b.ID, &b.Board, &b.Variant, &b.Toolchain, &b.SysClkFreq, &b.OutputDir,
		&status, &b.Error, &started, &finished); err != nil {
		return Build{}, err
	}
	b.Status = Status(status)
	var err error
	if b.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
		return Build{}, errors.Wrapf(err, "build %s start time", b.ID)
	}
	if finished.Valid {
		if b.FinishedAt, err = time.Parse(time.RFC3339, finished.String); err != nil {
			return Build{}, errors.Wrapf(err, "build %s finish time", b.ID)
		}
	}
	return b, nil
}
