// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/research-assistant/internal/papers"
	"github.com/pdiddy/research-assistant/internal/review"
	"github.com/pdiddy/research-assistant/internal/store"
	"github.com/pdiddy/research-assistant/pkg/types"
)

const drugTopic = "Explainable AI for Drug Discovery"

var fixedNow = time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

// --- fakes ---

// echoBackend replies with a fixed valid review for one paper.
type echoBackend struct {
	calls int
}

func (e *echoBackend) Name() string { return "echo" }

func (e *echoBackend) Generate(_ context.Context, _ review.Request) (string, error) {
	e.calls++
	r := types.LiteratureReview{
		Topic:    drugTopic,
		Overview: "Explainability methods are reshaping computational drug discovery.",
		IndividualSummaries: []types.PaperSummary{{
			Title:            "Interpretable Molecular Property Prediction",
			Summary:          "Proposes attribution methods for molecular graphs.",
			KeyFindings:      []string{"Attributions match known pharmacophores", "Accuracy is preserved"},
			RelevanceToTopic: "Central to explainable drug discovery.",
			OriginalURL:      "https://www.example.com/demo-paper-1",
		}},
	}
	b, err := json.Marshal(r)
	return string(b), err
}

type memStore struct {
	history    types.History
	output     *types.RunResult
	loads      int
	outputErr  error
	historyErr error
}

func (m *memStore) LoadHistory() types.History {
	m.loads++
	return append(types.History{}, m.history...)
}

func (m *memStore) SaveHistory(h types.History) error {
	if m.historyErr != nil {
		return m.historyErr
	}
	m.history = h
	return nil
}

func (m *memStore) SaveOutput(r types.RunResult) error {
	if m.outputErr != nil {
		return m.outputErr
	}
	m.output = &r
	return nil
}

type emptySource struct{ calls int }

func (e *emptySource) Fetch(context.Context, string, int) []types.PaperRecord {
	e.calls++
	return nil
}

type failingSummarizer struct{ calls int }

func (f *failingSummarizer) Summarize(context.Context, []types.PaperRecord, string) (types.LiteratureReview, error) {
	f.calls++
	return types.LiteratureReview{}, review.ErrNoReview
}

type memArchive struct {
	results []types.RunResult
	err     error
}

func (m *memArchive) Record(_ context.Context, r types.RunResult, _ time.Time) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.results = append(m.results, r)
	return "run-1", nil
}

func newAgent(t *testing.T, opts Options) *Agent {
	t.Helper()
	if opts.Source == nil {
		opts.Source = papers.Guard(papers.Synthetic{}, nil)
	}
	if opts.Generator == nil {
		opts.Generator = review.NewGenerator(&echoBackend{}, 0, nil)
	}
	if opts.Store == nil {
		opts.Store = &memStore{}
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	a, err := New(opts)
	require.NoError(t, err)
	return a
}

// --- tests ---

func TestRunEndToEnd(t *testing.T) {
	source := papers.Guard(papers.Synthetic{}, nil)
	records := source.Fetch(context.Background(), drugTopic, 1)
	require.Len(t, records, 1)
	require.Contains(t, records[0].Abstract, drugTopic)

	backend := &echoBackend{}
	ms := &memStore{}
	arch := &memArchive{}
	a := newAgent(t, Options{
		Source:    source,
		Generator: review.NewGenerator(backend, 0, nil),
		Store:     ms,
		Archive:   arch,
	})

	rep, err := a.Run(context.Background(), drugTopic, 1)
	require.NoError(t, err)
	require.NoError(t, rep.PersistErr)

	assert.Equal(t, 1, backend.calls)
	assert.Equal(t, drugTopic, rep.Result.Topic)
	assert.Equal(t, drugTopic, rep.Result.Structured.Topic)
	assert.True(t, strings.HasPrefix(rep.Result.RenderedMarkdown, "# Literature Review: "+drugTopic))
	assert.Contains(t, rep.Result.RenderedMarkdown, "**Date Generated:** 2026-02-03")

	require.NotNil(t, ms.output)
	assert.Equal(t, rep.Result, *ms.output)
	assert.Equal(t, types.History{{Topic: drugTopic, Timestamp: "2026-02-03 04:05:06"}}, ms.history)

	assert.Equal(t, "run-1", rep.ArchiveID)
	assert.Len(t, arch.results, 1)
}

func TestRunWithFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	fs := store.New(dir, nil)
	a := newAgent(t, Options{Store: fs})

	rep, err := a.Run(context.Background(), drugTopic, 1)
	require.NoError(t, err)
	require.NoError(t, rep.PersistErr)

	got, err := fs.LoadOutput()
	require.NoError(t, err)
	assert.Equal(t, rep.Result, got)
	assert.Len(t, fs.LoadHistory(), 1)

	// A fresh agent over the same directory sees the earlier run.
	b := newAgent(t, Options{Store: store.New(dir, nil)})
	assert.Equal(t, a.History(), b.History())
}

func TestNewLoadsHistoryOnce(t *testing.T) {
	ms := &memStore{history: types.History{{Topic: "old", Timestamp: "2025-01-01 00:00:00"}}}
	a := newAgent(t, Options{Store: ms})

	_, err := a.Run(context.Background(), "first", 1)
	require.NoError(t, err)
	_, err = a.Run(context.Background(), "second", 1)
	require.NoError(t, err)

	assert.Equal(t, 1, ms.loads)
	h := a.History()
	require.Len(t, h, 3)
	assert.Equal(t, []string{"old", "first", "second"}, []string{h[0].Topic, h[1].Topic, h[2].Topic})
}

func TestHistoryReturnsCopy(t *testing.T) {
	a := newAgent(t, Options{Store: &memStore{history: types.History{{Topic: "a"}}}})
	h := a.History()
	h[0].Topic = "mutated"
	assert.Equal(t, "a", a.History()[0].Topic)
}

func TestRunEmptyRetrieval(t *testing.T) {
	src := &emptySource{}
	gen := &failingSummarizer{}
	ms := &memStore{}
	a := newAgent(t, Options{Source: src, Generator: gen, Store: ms})

	rep, err := a.Run(context.Background(), drugTopic, 3)
	assert.Nil(t, rep)
	assert.ErrorIs(t, err, ErrEmptyRetrieval)
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, 0, gen.calls)
	assert.Nil(t, ms.output)
	assert.Empty(t, ms.history)
}

func TestRunGenerationFailure(t *testing.T) {
	ms := &memStore{}
	a := newAgent(t, Options{Generator: &failingSummarizer{}, Store: ms})

	rep, err := a.Run(context.Background(), drugTopic, 1)
	assert.Nil(t, rep)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, err, review.ErrNoReview)
	assert.Nil(t, ms.output)
	assert.Empty(t, ms.history)
	assert.Empty(t, a.History())
}

func TestRunNoBackendConfigured(t *testing.T) {
	a := newAgent(t, Options{Generator: review.NewGenerator(nil, 0, nil)})

	_, err := a.Run(context.Background(), drugTopic, 1)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, err, review.ErrBackendUnavailable)
}

func TestRunPersistenceFailureKeepsResult(t *testing.T) {
	ms := &memStore{outputErr: errors.New("disk full"), historyErr: errors.New("read-only")}
	arch := &memArchive{err: errors.New("locked")}
	core, logs := observer.New(zapcore.WarnLevel)
	a := newAgent(t, Options{Store: ms, Archive: arch, Logger: zap.New(core)})

	rep, err := a.Run(context.Background(), drugTopic, 1)
	require.NoError(t, err)
	require.NotNil(t, rep)

	assert.Equal(t, drugTopic, rep.Result.Structured.Topic)
	require.Error(t, rep.PersistErr)
	assert.Contains(t, rep.PersistErr.Error(), "disk full")
	assert.Contains(t, rep.PersistErr.Error(), "read-only")
	assert.Contains(t, rep.PersistErr.Error(), "locked")
	assert.Empty(t, rep.ArchiveID)

	// The in-memory history still records the run.
	assert.Len(t, a.History(), 1)
	assert.Equal(t, 1, logs.FilterMessage("run persisted partially").Len())
}

func TestRunPersistenceFailureOnDisk(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	a := newAgent(t, Options{Store: store.New(blocker, nil)})
	rep, err := a.Run(context.Background(), drugTopic, 1)
	require.NoError(t, err)
	assert.Error(t, rep.PersistErr)
	assert.NotEmpty(t, rep.Result.RenderedMarkdown)
}

func TestRunInvalidRequest(t *testing.T) {
	src := &emptySource{}
	a := newAgent(t, Options{Source: src})

	_, err := a.Run(context.Background(), "   ", 1)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	_, err = a.Run(context.Background(), drugTopic, 0)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, 0, src.calls)
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}
