// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package papers retrieves paper records for a research topic. Each provider
// (synthetic demo data, Semantic Scholar, arXiv, OpenAlex, a local YAML file) is a
// Backend; Guard wraps a Backend into the Source the agent depends on.
package papers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "research-assistant/0.1"
)

// Source returns up to limit records for topic. It never fails: an empty
// slice is the "no results" signal.
type Source interface {
	Fetch(ctx context.Context, topic string, limit int) []types.PaperRecord
}

// Backend queries a single paper provider. Each backend implements this
// interface per the Strategy pattern.
type Backend interface {
	Name() string
	Search(ctx context.Context, topic string, limit int) ([]types.PaperRecord, error)
}

// Guard adapts a Backend to the Source contract. Backend errors are logged
// and reported as an empty result; results beyond limit are dropped.
func Guard(b Backend, logger *zap.Logger) Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &guarded{backend: b, logger: logger}
}

type guarded struct {
	backend Backend
	logger  *zap.Logger
}

func (g *guarded) Fetch(ctx context.Context, topic string, limit int) []types.PaperRecord {
	if limit < 1 || topic == "" {
		return nil
	}
	records, err := g.backend.Search(ctx, topic, limit)
	if err != nil {
		g.logger.Warn("paper source failed",
			zap.String("backend", g.backend.Name()),
			zap.String("topic", topic),
			zap.Error(err))
		return nil
	}
	if len(records) > limit {
		records = records[:limit]
	}
	g.logger.Debug("papers retrieved",
		zap.String("backend", g.backend.Name()),
		zap.Int("count", len(records)))
	return records
}

// New builds the Source selected by cfg.Source. An empty kind selects the
// synthetic backend.
func New(cfg types.PaperSourceConfig, logger *zap.Logger) (Source, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client := &http.Client{Timeout: timeout}

	var b Backend
	switch cfg.Source {
	case types.SourceSynthetic, "":
		b = Synthetic{}
	case types.SourceSemanticScholar:
		b = &SemanticScholarBackend{Client: client, APIKey: cfg.SemanticScholarAPIKey, UserAgent: userAgent}
	case types.SourceArxiv:
		b = &ArxivBackend{Client: client, UserAgent: userAgent}
	case types.SourceOpenAlex:
		b = &OpenAlexBackend{Client: client, UserAgent: userAgent, Email: cfg.OpenAlexEmail}
	case types.SourceFile:
		if cfg.File == "" {
			return nil, fmt.Errorf("papers source %q requires papers.file", cfg.Source)
		}
		b = &FileBackend{Path: cfg.File}
	default:
		return nil, fmt.Errorf("unknown papers source %q: use synthetic, semantic_scholar, arxiv, openalex, or file", cfg.Source)
	}
	return Guard(b, logger), nil
}
