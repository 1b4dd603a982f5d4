// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data shared between the stages of a research run:
// paper records from a source, the structured literature review produced by
// the language model, and the combined run result persisted to disk.
package types

// PaperRecord is one paper returned by a paper source. Records are read-only
// once produced and are consumed only by the review generator.
type PaperRecord struct {
	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract or summary text.
	Abstract string `json:"abstract" yaml:"abstract"`

	// URL links to the paper's landing page.
	URL string `json:"url" yaml:"url"`
}
