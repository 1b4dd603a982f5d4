// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

// nonEmptyString is the schema for fields that must carry text.
func nonEmptyString(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"minLength":   1,
		"description": description,
	}
}

// paperSummarySchema mirrors types.PaperSummary.
var paperSummarySchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":   nonEmptyString("The original title of the academic paper."),
		"summary": nonEmptyString("A concise, academic-quality summary of the paper's key contributions, methods, and results."),
		"key_findings": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "A list of 3-5 of the most important findings or conclusions.",
		},
		"relevance_to_topic": nonEmptyString("A brief explanation of why this paper is relevant to the main research topic."),
		"original_url": map[string]any{
			"type":        "string",
			"description": "The URL of the paper as given in the input.",
		},
	},
	"required": []string{"title", "summary", "key_findings", "relevance_to_topic", "original_url"},
}

// LiteratureReviewSchema mirrors types.LiteratureReview. It is sent with
// every generation request and checked against every reply.
var LiteratureReviewSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"topic":    nonEmptyString("The research topic provided by the user."),
		"overview": nonEmptyString("A brief, academic introduction and synthesis of the topic based on the papers reviewed."),
		"individual_summaries": map[string]any{
			"type":        "array",
			"minItems":    1,
			"items":       paperSummarySchema,
			"description": "A list of structured summaries, one for each paper, in input order.",
		},
	},
	"required": []string{"topic", "overview", "individual_summaries"},
}
