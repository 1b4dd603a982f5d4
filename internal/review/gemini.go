// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/research-assistant/internal/httputil"
)

// geminiAPIBase is the Gemini REST base URL. Package-level var for test
// substitution.
var geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta"

// GeminiBackend calls the Gemini generateContent endpoint with a response
// schema so the model replies with JSON.
type GeminiBackend struct {
	APIKey string
	Model  string
	Client *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType   string         `json:"responseMimeType"`
	ResponseJSONSchema map[string]any `json:"responseJsonSchema,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Name returns the backend identifier.
func (g *GeminiBackend) Name() string { return "gemini" }

// Generate sends one generateContent request and returns the reply text.
func (g *GeminiBackend) Generate(ctx context.Context, req Request) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			ResponseMIMEType:   "application/json",
			ResponseJSONSchema: req.Schema,
		},
	}
	if req.System != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", geminiAPIBase, url.PathEscape(g.Model))

	var resp geminiResponse
	err := httputil.DoJSON(ctx, g.Client, httputil.Request{
		Method:  http.MethodPost,
		URL:     endpoint,
		Headers: map[string]string{"x-goog-api-key": g.APIKey},
		Body:    body,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}

	if resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("Gemini blocked the prompt: %s", resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("Gemini API returned no candidates")
	}

	var text strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("Gemini API returned empty content (finish reason %q)", resp.Candidates[0].FinishReason)
	}
	return text.String(), nil
}
