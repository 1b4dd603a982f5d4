// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// systemPromptTmpl sets the reviewer role and tone.
var systemPromptTmpl = template.Must(template.New("system").Parse(`You are an expert Academic Research Assistant. Your task is to process a list of academic papers and generate a consolidated, high-quality, structured literature review. The tone must be formal and academic. The primary topic for the review is: '{{.Topic}}'. Ensure the 'summary' and 'overview' fields are detailed and insightful.`))

// userPromptTmpl carries the paper text. Papers are separated by a rule so
// the model can tell where one abstract ends.
var userPromptTmpl = template.Must(template.New("user").Parse(`Please analyze the following academic papers retrieved for the topic: "{{.Topic}}".

You must generate the complete output following the required JSON schema. Write exactly one entry in "individual_summaries" for each paper, in the order given, and copy each paper's URL into "original_url".

--- PAPERS TO REVIEW (Metadata/Abstracts) ---
{{.Papers}}
`))

// formatPapers concatenates each record's title, abstract, and URL.
func formatPapers(records []types.PaperRecord) string {
	parts := make([]string, len(records))
	for i, r := range records {
		parts[i] = "Title: " + r.Title + "\nAbstract: " + r.Abstract + "\nURL: " + r.URL
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// buildRequest renders both prompts and attaches the review schema.
func buildRequest(records []types.PaperRecord, topic string) (Request, error) {
	data := struct {
		Topic  string
		Papers string
	}{Topic: topic, Papers: formatPapers(records)}

	var sys, user bytes.Buffer
	if err := systemPromptTmpl.Execute(&sys, data); err != nil {
		return Request{}, err
	}
	if err := userPromptTmpl.Execute(&user, data); err != nil {
		return Request{}, err
	}
	return Request{
		System: sys.String(),
		Prompt: user.String(),
		Schema: LiteratureReviewSchema,
	}, nil
}
