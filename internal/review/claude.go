// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/research-assistant/internal/httputil"
)

// claudeAPIURL is the Claude API endpoint. Package-level var for test substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

// ClaudeBackend calls the Claude Messages API. The Messages API has no
// response-schema parameter, so the schema is appended to the prompt.
type ClaudeBackend struct {
	APIKey string
	Model  string
	Client *http.Client
}

// claudeRequest is the request body for the Claude Messages API.
type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []claudeMessage `json:"messages"`
}

// claudeMessage is a single message in the Claude API conversation.
type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// claudeResponse is the response body from the Claude Messages API.
type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

// claudeContent is a content block in the Claude API response.
type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Name returns the backend identifier.
func (c *ClaudeBackend) Name() string { return "claude" }

// Generate sends one message and returns the first text block.
func (c *ClaudeBackend) Generate(ctx context.Context, req Request) (string, error) {
	prompt, err := withSchema(req.Prompt, req.Schema)
	if err != nil {
		return "", err
	}

	body := claudeRequest{
		Model:     c.Model,
		MaxTokens: 8192,
		System:    req.System,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}

	var cResp claudeResponse
	err = httputil.DoJSON(ctx, c.Client, httputil.Request{
		Method: http.MethodPost,
		URL:    claudeAPIURL,
		Headers: map[string]string{
			"x-api-key":         c.APIKey,
			"anthropic-version": "2023-06-01",
		},
		Body: body,
	}, &cResp)
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}

	for _, block := range cResp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in Claude API response")
}

// withSchema appends the JSON schema and a bare-JSON instruction to prompt.
func withSchema(prompt string, schema map[string]any) (string, error) {
	if schema == nil {
		return prompt, nil
	}
	b, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling schema: %w", err)
	}
	return prompt + "\nRespond with a single JSON object that satisfies this JSON schema. Do not include any text outside the JSON object.\n\n" + string(b) + "\n", nil
}
