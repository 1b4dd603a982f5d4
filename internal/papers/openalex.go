// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package papers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// openAlexSearchBase is the OpenAlex Works search endpoint. Declared as a
// var so tests can substitute an httptest server.
var openAlexSearchBase = "https://api.openalex.org/works"

// openAlexMaxPerPage is the largest page OpenAlex serves.
const openAlexMaxPerPage = 200

// OpenAlexBackend queries the OpenAlex API.
type OpenAlexBackend struct {
	Client    *http.Client
	UserAgent string
	// Email is sent as mailto parameter for polite pool access.
	Email string
}

// Name returns the backend identifier.
func (b *OpenAlexBackend) Name() string { return string(types.SourceOpenAlex) }

// Search queries OpenAlex for works matching topic. The record URL is the
// DOI link when present, else the OpenAlex work id.
func (b *OpenAlexBackend) Search(ctx context.Context, topic string, limit int) ([]types.PaperRecord, error) {
	q := strings.TrimSpace(topic)
	if q == "" {
		return nil, fmt.Errorf("empty OpenAlex query")
	}

	params := url.Values{
		"search":   {q},
		"per_page": {fmt.Sprintf("%d", min(max(limit, 1), openAlexMaxPerPage))},
		"page":     {"1"},
	}
	if b.Email != "" {
		params.Set("mailto", b.Email)
	}

	var oar openAlexResponse
	err := httputil.DoJSON(ctx, b.Client, httputil.Request{
		URL:     openAlexSearchBase + "?" + params.Encode(),
		Headers: map[string]string{"User-Agent": b.UserAgent},
	}, &oar)
	if err != nil {
		return nil, fmt.Errorf("OpenAlex API request: %w", err)
	}

	var records []types.PaperRecord
	for _, work := range oar.Results {
		title := strings.TrimSpace(work.Title)
		if title == "" {
			continue
		}
		link := work.DOI
		if link == "" {
			link = work.ID
		}
		records = append(records, types.PaperRecord{
			Title:    title,
			Abstract: reconstructAbstract(work.AbstractInvertedIndex),
			URL:      link,
		})
	}
	return records, nil
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index back to
// plain text. The index maps each word to the positions where it appears.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Results []openAlexWork `json:"results"`
}

type openAlexWork struct {
	ID                    string           `json:"id"`
	Title                 string           `json:"title"`
	DOI                   string           `json:"doi"`
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
}
