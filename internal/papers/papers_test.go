// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package papers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// --- mock backend ---

type stubBackend struct {
	records []types.PaperRecord
	err     error
	calls   int
}

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) Search(_ context.Context, _ string, _ int) ([]types.PaperRecord, error) {
	s.calls++
	return s.records, s.err
}

// --- Synthetic ---

func TestSyntheticEmbedsTopic(t *testing.T) {
	topics := []string{"Explainable AI for Drug Discovery", "x", "Quantum Computing: A Survey!", "図書館"}
	for _, topic := range topics {
		for limit := 1; limit <= 7; limit++ {
			t.Run(fmt.Sprintf("%s/%d", topic, limit), func(t *testing.T) {
				got := Guard(Synthetic{}, nil).Fetch(context.Background(), topic, limit)
				assert.LessOrEqual(t, len(got), limit)
				assert.NotEmpty(t, got)
				for _, r := range got {
					assert.Contains(t, r.Title, topic)
					assert.Contains(t, r.Abstract, topic)
					assert.NotContains(t, r.Abstract, "%!")
					assert.True(t, strings.HasPrefix(r.URL, "https://www.example.com/demo-paper-"))
				}
			})
		}
	}
}

func TestSyntheticDeterministic(t *testing.T) {
	a, _ := Synthetic{}.Search(context.Background(), "graph learning", 5)
	b, _ := Synthetic{}.Search(context.Background(), "graph learning", 5)
	assert.Equal(t, a, b)
	assert.Len(t, a, 5)
}

// --- Guard ---

func TestGuardErrorBecomesEmpty(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	b := &stubBackend{err: errors.New("connection refused")}

	got := Guard(b, zap.New(core)).Fetch(context.Background(), "topic", 3)

	assert.Empty(t, got)
	assert.Equal(t, 1, b.calls)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "paper source failed", logs.All()[0].Message)
}

func TestGuardTruncatesToLimit(t *testing.T) {
	b := &stubBackend{records: []types.PaperRecord{{Title: "a"}, {Title: "b"}, {Title: "c"}}}
	got := Guard(b, nil).Fetch(context.Background(), "topic", 2)
	assert.Equal(t, []types.PaperRecord{{Title: "a"}, {Title: "b"}}, got)
}

func TestGuardRejectsBadInput(t *testing.T) {
	b := &stubBackend{records: []types.PaperRecord{{Title: "a"}}}
	assert.Empty(t, Guard(b, nil).Fetch(context.Background(), "topic", 0))
	assert.Empty(t, Guard(b, nil).Fetch(context.Background(), "", 3))
	assert.Equal(t, 0, b.calls)
}

// --- New ---

func TestNewSelectsBackend(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.PaperSourceConfig
		want    string
		wantErr bool
	}{
		{"default", types.PaperSourceConfig{}, "synthetic", false},
		{"synthetic", types.PaperSourceConfig{Source: types.SourceSynthetic}, "synthetic", false},
		{"semantic scholar", types.PaperSourceConfig{Source: types.SourceSemanticScholar}, "semantic_scholar", false},
		{"arxiv", types.PaperSourceConfig{Source: types.SourceArxiv}, "arxiv", false},
		{"openalex", types.PaperSourceConfig{Source: types.SourceOpenAlex}, "openalex", false},
		{"file", types.PaperSourceConfig{Source: types.SourceFile, File: "papers.yaml"}, "file", false},
		{"file without path", types.PaperSourceConfig{Source: types.SourceFile}, "", true},
		{"unknown", types.PaperSourceConfig{Source: "google"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := New(tt.cfg, zap.NewNop())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			g, ok := src.(*guarded)
			require.True(t, ok)
			assert.Equal(t, tt.want, g.backend.Name())
		})
	}
}

// --- Semantic Scholar ---

func withSemanticServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(h)
	old := semanticAPIBase
	semanticAPIBase = ts.URL
	t.Cleanup(func() {
		semanticAPIBase = old
		ts.Close()
	})
	return ts
}

func TestSemanticSearch(t *testing.T) {
	var captured *http.Request
	ts := withSemanticServer(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"total":3,"offset":0,"data":[
			{"paperId":"abc","title":"Attention Is All You Need","abstract":"We propose the Transformer.","url":"https://www.semanticscholar.org/paper/abc"},
			{"paperId":"def","title":"  ","abstract":"untitled"},
			{"paperId":"ghi","title":"BERT","abstract":null}
		]}`)
	})

	b := &SemanticScholarBackend{Client: ts.Client(), APIKey: "key-1", UserAgent: "test-agent"}
	got, err := b.Search(context.Background(), "transformers", 3)
	require.NoError(t, err)

	q := captured.URL.Query()
	assert.Equal(t, "transformers", q.Get("query"))
	assert.Equal(t, "3", q.Get("limit"))
	assert.Equal(t, semanticFields, q.Get("fields"))
	assert.Equal(t, "key-1", captured.Header.Get("x-api-key"))
	assert.Equal(t, "test-agent", captured.Header.Get("User-Agent"))

	require.Len(t, got, 2)
	assert.Equal(t, "Attention Is All You Need", got[0].Title)
	assert.Equal(t, "https://www.semanticscholar.org/paper/abc", got[0].URL)
	assert.Equal(t, "BERT", got[1].Title)
	assert.Equal(t, semanticPaperBase+"ghi", got[1].URL)
	assert.Empty(t, got[1].Abstract)
}

func TestSemanticSearchNoAPIKeyHeader(t *testing.T) {
	var captured *http.Request
	ts := withSemanticServer(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `{"data":[]}`)
	})

	b := &SemanticScholarBackend{Client: ts.Client()}
	got, err := b.Search(context.Background(), "x", 1)
	require.NoError(t, err)
	assert.Empty(t, got)
	_, present := captured.Header["X-Api-Key"]
	assert.False(t, present)
}

func TestSemanticSearchHTTPError(t *testing.T) {
	ts := withSemanticServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	b := &SemanticScholarBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(), "x", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")

	// Through the guard the same failure is an empty result.
	assert.Empty(t, Guard(b, nil).Fetch(context.Background(), "x", 1))
}

// --- arXiv ---

const arxivFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.07041v1</id>
    <title>Scaling Laws for
      Neural Language Models</title>
    <summary>  We study empirical scaling laws
      for language model performance.  </summary>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2302.00001v2</id>
    <title></title>
    <summary>no title</summary>
  </entry>
</feed>`

func TestArxivSearch(t *testing.T) {
	var captured *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, arxivFeedXML)
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	b := &ArxivBackend{Client: ts.Client()}
	got, err := b.Search(context.Background(), "scaling laws", 4)
	require.NoError(t, err)

	assert.Equal(t, "4", captured.URL.Query().Get("max_results"))
	assert.Contains(t, captured.URL.RawQuery, "all:scaling+AND+all:laws")

	require.Len(t, got, 1)
	assert.Equal(t, "Scaling Laws for Neural Language Models", got[0].Title)
	assert.Equal(t, "We study empirical scaling laws for language model performance.", got[0].Abstract)
	assert.Equal(t, "http://arxiv.org/abs/2301.07041v1", got[0].URL)
}

func TestBuildArxivQuery(t *testing.T) {
	assert.Equal(t, "", buildArxivQuery("   "))
	assert.Equal(t, "all:graphs", buildArxivQuery("graphs"))
	assert.Equal(t, "all:drug+AND+all:discovery%3A", buildArxivQuery("drug discovery:"))
}

// --- File ---

func TestFileBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "papers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`- title: Paper One
  abstract: First abstract.
  url: https://example.org/1
- title: Paper Two
  abstract: Second abstract.
  url: https://example.org/2
`), 0o644))

	b := &FileBackend{Path: path}
	got, err := b.Search(context.Background(), "ignored", 1)
	require.NoError(t, err)
	assert.Equal(t, []types.PaperRecord{{Title: "Paper One", Abstract: "First abstract.", URL: "https://example.org/1"}}, got)

	all, err := b.Search(context.Background(), "ignored", 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFileBackendErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := (&FileBackend{Path: filepath.Join(dir, "missing.yaml")}).Search(context.Background(), "t", 1)
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("{{{bad"), 0o644))
	_, err = (&FileBackend{Path: bad}).Search(context.Background(), "t", 1)
	require.Error(t, err)
}
