// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package papers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

// semanticPaperBase builds a landing page URL when the API returns none.
const semanticPaperBase = "https://www.semanticscholar.org/paper/"

const semanticFields = "title,abstract,url"

// SemanticScholarBackend queries the Semantic Scholar API.
type SemanticScholarBackend struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
}

// Name returns the backend identifier.
func (b *SemanticScholarBackend) Name() string { return string(types.SourceSemanticScholar) }

// Search queries the Semantic Scholar API and returns up to limit records.
// Papers without a title are skipped.
func (b *SemanticScholarBackend) Search(ctx context.Context, topic string, limit int) ([]types.PaperRecord, error) {
	q := strings.TrimSpace(topic)
	if q == "" {
		return nil, fmt.Errorf("empty Semantic Scholar query")
	}

	params := url.Values{
		"query":  {q},
		"limit":  {fmt.Sprintf("%d", limit)},
		"fields": {semanticFields},
	}
	reqURL := semanticAPIBase + "?" + params.Encode()

	var sr semanticResponse
	err := httputil.DoJSON(ctx, b.Client, httputil.Request{
		URL: reqURL,
		Headers: map[string]string{
			"User-Agent": b.UserAgent,
			"x-api-key":  b.APIKey,
		},
	}, &sr)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}

	var records []types.PaperRecord
	for _, paper := range sr.Data {
		title := strings.TrimSpace(paper.Title)
		if title == "" {
			continue
		}
		link := paper.URL
		if link == "" && paper.PaperID != "" {
			link = semanticPaperBase + paper.PaperID
		}
		records = append(records, types.PaperRecord{
			Title:    title,
			Abstract: strings.TrimSpace(paper.Abstract),
			URL:      link,
		})
	}
	return records, nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID  string `json:"paperId"`
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	URL      string `json:"url"`
}
