// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns a structured LiteratureReview into the Markdown
// report shown to the user and written by the exporter.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// DateLayout is the format of the generation date in the report header.
const DateLayout = "2006-01-02"

// SummariesHeading opens the per-paper section. Overview cuts the report
// at this line.
const SummariesHeading = "## 2. Paper Summaries"

const rule = "---"

// Render formats review as Markdown stamped with date. Output depends only
// on its arguments.
func Render(review types.LiteratureReview, date time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Literature Review: %s\n\n", review.Topic)
	fmt.Fprintf(&b, "**Date Generated:** %s\n\n", date.Format(DateLayout))
	b.WriteString(rule + "\n\n")

	b.WriteString("## 1. Topic Overview\n\n")
	b.WriteString(review.Overview + "\n\n")

	b.WriteString(SummariesHeading + "\n\n")
	for i, s := range review.IndividualSummaries {
		writeSummary(&b, i+1, s)
	}

	return strings.TrimSpace(b.String())
}

func writeSummary(b *strings.Builder, n int, s types.PaperSummary) {
	fmt.Fprintf(b, "### 2.%d. %s\n", n, s.Title)
	fmt.Fprintf(b, "**Source:** [View Paper](%s)\n\n", s.OriginalURL)
	fmt.Fprintf(b, "**Summary:** %s\n\n", s.Summary)

	b.WriteString("**Key Findings:**\n")
	for _, f := range s.KeyFindings {
		fmt.Fprintf(b, "* %s\n", f)
	}
	b.WriteString("\n")

	fmt.Fprintf(b, "**Relevance:** %s\n\n", s.RelevanceToTopic)
	b.WriteString(rule + "\n\n")
}

// Overview returns the part of a rendered report before the paper
// summaries. A report without the summaries heading is returned whole.
func Overview(markdown string) string {
	head, _, _ := strings.Cut(markdown, SummariesHeading)
	return strings.TrimSpace(head)
}
