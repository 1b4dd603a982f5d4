// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PaperSummary is the model's structured summary of a single paper.
// One summary is produced per input PaperRecord, in input order.
type PaperSummary struct {
	// Title is the original title of the paper.
	Title string `json:"title" yaml:"title" validate:"required"`

	// Summary covers the paper's contributions, methods, and results.
	Summary string `json:"summary" yaml:"summary" validate:"required"`

	// KeyFindings lists the most important findings (3-5 recommended).
	KeyFindings []string `json:"key_findings" yaml:"key_findings" validate:"dive,required"`

	// RelevanceToTopic explains why the paper matters for the topic.
	RelevanceToTopic string `json:"relevance_to_topic" yaml:"relevance_to_topic" validate:"required"`

	// OriginalURL links back to the source record.
	OriginalURL string `json:"original_url" yaml:"original_url"`
}

// LiteratureReview is the structured artifact of a research run.
type LiteratureReview struct {
	// Topic is the research topic exactly as the user entered it.
	Topic string `json:"topic" yaml:"topic" validate:"required"`

	// Overview is an academic introduction synthesizing the reviewed papers.
	Overview string `json:"overview" yaml:"overview" validate:"required"`

	// IndividualSummaries holds one summary per reviewed paper.
	IndividualSummaries []PaperSummary `json:"individual_summaries" yaml:"individual_summaries" validate:"required,min=1,dive"`
}
