// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive keeps every completed research run in a SQLite database.
// The store package holds only the latest output; the archive is where
// earlier reviews can be listed and read back.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

var (
	// ErrNotFound means no archived run matches the id.
	ErrNotFound = errors.New("run not found")

	// ErrAmbiguous means an id prefix matches more than one run.
	ErrAmbiguous = errors.New("run id prefix is ambiguous")
)

// defaultListLimit caps List when the caller passes a non-positive limit.
const defaultListLimit = 20

// RunInfo is the listing view of an archived run.
type RunInfo struct {
	ID         string
	Topic      string
	CreatedAt  time.Time
	PaperCount int
}

// Run is an archived run with its full result.
type Run struct {
	RunInfo
	Result types.RunResult
}

// Store manages the run archive database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive database at path, creating its parent
// directory and the schema when missing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			created_at TEXT NOT NULL,
			paper_count INTEGER NOT NULL,
			structured_json TEXT NOT NULL,
			markdown_review TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores result as a new run stamped with at and returns its id.
func (s *Store) Record(ctx context.Context, result types.RunResult, at time.Time) (string, error) {
	structured, err := json.Marshal(result.Structured)
	if err != nil {
		return "", fmt.Errorf("marshaling review: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, topic, created_at, paper_count, structured_json, markdown_review)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, result.Topic, at.UTC().Format(time.RFC3339Nano),
		len(result.Structured.IndividualSummaries), string(structured), result.RenderedMarkdown,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}
	return id, nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]RunInfo, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, created_at, paper_count FROM runs
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var info RunInfo
		var created string
		if err := rows.Scan(&info.ID, &info.Topic, &created, &info.PaperCount); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if info.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parsing created_at of %s: %w", info.ID, err)
		}
		runs = append(runs, info)
	}
	return runs, rows.Err()
}

// Get returns the run whose id equals id or, failing that, the single run
// whose id starts with id.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Run{}, ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, created_at, paper_count, structured_json, markdown_review
		 FROM runs WHERE id = ? OR substr(id, 1, ?) = ?
		 ORDER BY (id = ?) DESC LIMIT 2`,
		id, len(id), id, id)
	if err != nil {
		return Run{}, fmt.Errorf("querying run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		var run Run
		var created, structured string
		if err := rows.Scan(&run.ID, &run.Topic, &created, &run.PaperCount, &structured, &run.Result.RenderedMarkdown); err != nil {
			return Run{}, fmt.Errorf("scanning run: %w", err)
		}
		if run.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return Run{}, fmt.Errorf("parsing created_at of %s: %w", run.ID, err)
		}
		if err := json.Unmarshal([]byte(structured), &run.Result.Structured); err != nil {
			return Run{}, fmt.Errorf("parsing review of %s: %w", run.ID, err)
		}
		run.Result.Topic = run.Topic
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return Run{}, err
	}

	switch {
	case len(matches) == 0:
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case matches[0].ID == id || len(matches) == 1:
		return matches[0], nil
	default:
		return Run{}, fmt.Errorf("%w: %s", ErrAmbiguous, id)
	}
}
