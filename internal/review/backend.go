// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Default model identifiers per provider.
const (
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultClaudeModel = "claude-sonnet-4-5"
)

// Request is one structured-output call: a system instruction, the user
// prompt, and the JSON schema the reply must satisfy.
type Request struct {
	System string
	Prompt string
	Schema map[string]any
}

// Backend abstracts the language-model API so tests can supply a mock.
// Generate returns the model's raw reply text; it is untrusted until
// ValidatedGenerate has checked it.
type Backend interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// NewBackend builds the backend selected by cfg.Provider. A missing API key
// returns ErrBackendUnavailable so callers can run without a backend and
// report the failure per run.
func NewBackend(cfg types.AIConfig, client *http.Client) (Backend, error) {
	switch cfg.Provider {
	case types.ProviderGemini, "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: no Gemini API key configured", ErrBackendUnavailable)
		}
		model := cfg.Model
		if model == "" {
			model = DefaultGeminiModel
		}
		return &GeminiBackend{APIKey: cfg.APIKey, Model: model, Client: client}, nil
	case types.ProviderClaude:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: no Anthropic API key configured", ErrBackendUnavailable)
		}
		model := cfg.Model
		if model == "" {
			model = DefaultClaudeModel
		}
		return &ClaudeBackend{APIKey: cfg.APIKey, Model: model, Client: client}, nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q: use gemini or claude", cfg.Provider)
	}
}
