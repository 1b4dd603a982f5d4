// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/agent"
	"github.com/pdiddy/research-assistant/internal/archive"
	"github.com/pdiddy/research-assistant/internal/papers"
	"github.com/pdiddy/research-assistant/internal/review"
	"github.com/pdiddy/research-assistant/internal/store"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// buildAgent wires the paper source, review generator, store, and archive
// from cfg. The returned cleanup closes the archive. A missing model API key
// is not fatal: the agent is built without a backend and each run reports
// the failure.
func buildAgent(cfg types.Config, logger *zap.Logger) (*agent.Agent, func(), error) {
	source, err := papers.New(cfg.Papers, logger)
	if err != nil {
		return nil, nil, err
	}

	backend, err := review.NewBackend(cfg.AI, &http.Client{})
	if err != nil {
		if !errors.Is(err, review.ErrBackendUnavailable) {
			return nil, nil, err
		}
		logger.Warn("no language-model backend", zap.Error(err))
		backend = nil
	}
	generator := review.NewGenerator(backend, cfg.AI.MaxRetries, logger)

	opts := agent.Options{
		Source:    source,
		Generator: generator,
		Store:     store.New(cfg.DataDir, logger),
		Logger:    logger,
	}

	cleanup := func() {}
	if arch := openArchive(cfg.Archive, logger); arch != nil {
		opts.Archive = arch
		cleanup = func() { _ = arch.Close() }
	}

	a, err := agent.New(opts)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return a, cleanup, nil
}

// openArchive opens the run archive when enabled. Failure to open is logged
// and the session continues without it.
func openArchive(cfg types.ArchiveConfig, logger *zap.Logger) *archive.Store {
	if !cfg.Enabled || cfg.Path == "" {
		return nil
	}
	arch, err := archive.Open(cfg.Path)
	if err != nil {
		logger.Warn("run archive unavailable", zap.String("path", cfg.Path), zap.Error(err))
		return nil
	}
	return arch
}
