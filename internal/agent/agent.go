// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent runs one research request end to end: fetch papers,
// generate the structured review, render it, and persist the result.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/papers"
	"github.com/pdiddy/research-assistant/internal/render"
	"github.com/pdiddy/research-assistant/pkg/types"
)

var (
	// ErrEmptyRetrieval means the paper source returned no records.
	ErrEmptyRetrieval = errors.New("could not retrieve papers")

	// ErrGeneration means the review generator produced no review. The
	// generator's own error is wrapped alongside it.
	ErrGeneration = errors.New("could not generate structured review")

	// ErrInvalidRequest means the topic was blank or the limit below one.
	ErrInvalidRequest = errors.New("invalid research request")
)

// Summarizer produces a structured review from paper records.
// *review.Generator satisfies it.
type Summarizer interface {
	Summarize(ctx context.Context, records []types.PaperRecord, topic string) (types.LiteratureReview, error)
}

// Store is the durable backing of the history and the last output.
// *store.Store satisfies it.
type Store interface {
	LoadHistory() types.History
	SaveHistory(types.History) error
	SaveOutput(types.RunResult) error
}

// Archive records every completed run. *archive.Store satisfies it.
type Archive interface {
	Record(ctx context.Context, result types.RunResult, at time.Time) (string, error)
}

// Options configures an Agent. Source, Generator, and Store are required.
type Options struct {
	Source    papers.Source
	Generator Summarizer
	Store     Store
	Archive   Archive
	Logger    *zap.Logger
	Now       func() time.Time
}

// Agent owns the research history for the lifetime of the process. It
// serves one run at a time.
type Agent struct {
	source    papers.Source
	generator Summarizer
	store     Store
	archive   Archive
	logger    *zap.Logger
	now       func() time.Time
	history   types.History
}

// Report is the outcome of a run that produced a review. PersistErr
// collects save and archive failures; the Result is valid regardless.
type Report struct {
	Result     types.RunResult
	ArchiveID  string
	PersistErr error
}

// New builds an Agent and loads the history once from opts.Store.
func New(opts Options) (*Agent, error) {
	if opts.Source == nil || opts.Generator == nil || opts.Store == nil {
		return nil, errors.New("agent: source, generator, and store are required")
	}
	a := &Agent{
		source:    opts.Source,
		generator: opts.Generator,
		store:     opts.Store,
		archive:   opts.Archive,
		logger:    opts.Logger,
		now:       opts.Now,
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	if a.now == nil {
		a.now = time.Now
	}
	a.history = opts.Store.LoadHistory()
	return a, nil
}

// History returns a copy of the past runs, oldest first.
func (a *Agent) History() types.History {
	out := make(types.History, len(a.history))
	copy(out, a.history)
	return out
}

// Run researches topic using up to limit papers. A returned error means
// no review was produced; persistence problems are reported through
// Report.PersistErr instead.
func (a *Agent) Run(ctx context.Context, topic string, limit int) (*Report, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("%w: topic is empty", ErrInvalidRequest)
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: paper limit %d is below 1", ErrInvalidRequest, limit)
	}

	log := a.logger.With(zap.String("topic", topic))

	records := a.source.Fetch(ctx, topic, limit)
	if len(records) == 0 {
		return nil, ErrEmptyRetrieval
	}
	log.Info("papers fetched", zap.Int("count", len(records)))

	review, err := a.generator.Summarize(ctx, records, topic)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	now := a.now()
	result := types.RunResult{
		Topic:            topic,
		Structured:       review,
		RenderedMarkdown: render.Render(review, now),
	}
	report := &Report{Result: result}

	var persistErrs []error
	if err := a.store.SaveOutput(result); err != nil {
		persistErrs = append(persistErrs, fmt.Errorf("saving output: %w", err))
	}

	a.history = append(a.history, types.NewHistoryEntry(topic, now))
	if err := a.store.SaveHistory(a.History()); err != nil {
		persistErrs = append(persistErrs, fmt.Errorf("saving history: %w", err))
	}

	if a.archive != nil {
		id, err := a.archive.Record(ctx, result, now)
		if err != nil {
			persistErrs = append(persistErrs, fmt.Errorf("archiving run: %w", err))
		}
		report.ArchiveID = id
	}

	if len(persistErrs) > 0 {
		report.PersistErr = errors.Join(persistErrs...)
		log.Warn("run persisted partially", zap.Error(report.PersistErr))
	}
	return report, nil
}
