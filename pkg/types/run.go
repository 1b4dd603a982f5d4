// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HistoryTimeLayout is the fixed timestamp format of history entries.
const HistoryTimeLayout = "2006-01-02 15:04:05"

// RunResult combines the structured review and its Markdown rendering.
// The JSON form is the layout of the persisted last-output file.
type RunResult struct {
	Topic            string           `json:"topic" yaml:"topic"`
	Structured       LiteratureReview `json:"structured_json" yaml:"structured_json"`
	RenderedMarkdown string           `json:"markdown_review" yaml:"markdown_review"`
}

// HistoryEntry records one completed research run. Entries are appended and
// never modified.
type HistoryEntry struct {
	Topic     string `json:"topic" yaml:"topic"`
	Timestamp string `json:"date" yaml:"date"`
}

// NewHistoryEntry stamps topic with t in HistoryTimeLayout.
func NewHistoryEntry(topic string, t time.Time) HistoryEntry {
	return HistoryEntry{Topic: topic, Timestamp: t.Format(HistoryTimeLayout)}
}

// History is the ordered list of past runs, oldest first.
type History []HistoryEntry
