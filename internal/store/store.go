// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps the research history and the last run's output as
// JSON documents in a data directory.
//
// Writes overwrite the whole file in place. A crash mid-write can leave a
// truncated file; LoadHistory then starts from an empty history.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/pkg/types"
)

const (
	historyFile = "memory.json"
	outputFile  = "output.json"
)

// Store reads and writes the history and output documents under one
// directory.
type Store struct {
	dir    string
	logger *zap.Logger
}

// New returns a Store rooted at dir. The directory is created on first save.
func New(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// HistoryPath returns the path of the history document.
func (s *Store) HistoryPath() string { return filepath.Join(s.dir, historyFile) }

// OutputPath returns the path of the last-output document.
func (s *Store) OutputPath() string { return filepath.Join(s.dir, outputFile) }

// LoadHistory reads the history document. A missing file yields an empty
// history. An unreadable or corrupt file also yields an empty history and
// logs a warning.
func (s *Store) LoadHistory() types.History {
	data, err := os.ReadFile(s.HistoryPath())
	if errors.Is(err, fs.ErrNotExist) {
		return types.History{}
	}
	if err != nil {
		s.logger.Warn("could not read history, starting empty",
			zap.String("path", s.HistoryPath()), zap.Error(err))
		return types.History{}
	}

	var h types.History
	if err := json.Unmarshal(data, &h); err != nil {
		s.logger.Warn("history file is corrupt, starting empty",
			zap.String("path", s.HistoryPath()), zap.Error(err))
		return types.History{}
	}
	if h == nil {
		h = types.History{}
	}
	return h
}

// SaveHistory overwrites the history document.
func (s *Store) SaveHistory(h types.History) error {
	if h == nil {
		h = types.History{}
	}
	return s.writeJSON(s.HistoryPath(), h)
}

// SaveOutput overwrites the last-output document with result.
func (s *Store) SaveOutput(result types.RunResult) error {
	return s.writeJSON(s.OutputPath(), result)
}

// LoadOutput reads the last-output document back.
func (s *Store) LoadOutput() (types.RunResult, error) {
	data, err := os.ReadFile(s.OutputPath())
	if err != nil {
		return types.RunResult{}, fmt.Errorf("reading last output: %w", err)
	}
	var result types.RunResult
	if err := json.Unmarshal(data, &result); err != nil {
		return types.RunResult{}, fmt.Errorf("parsing %s: %w", s.OutputPath(), err)
	}
	return result, nil
}

func (s *Store) writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
