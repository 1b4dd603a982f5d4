// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/research-assistant/internal/logging"
	"github.com/pdiddy/research-assistant/internal/review"
	"github.com/pdiddy/research-assistant/internal/secrets"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// envPrefix namespaces environment overrides, e.g. RESEARCH_ASSISTANT_AI_PROVIDER.
const envPrefix = "RESEARCH_ASSISTANT"

// setDefaults registers every configuration key. Keys without a default are
// registered with a zero value so environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "data")
	v.SetDefault("export_dir", "output")
	v.SetDefault("paper_limit", 1)
	v.SetDefault("log_level", logging.DefaultLevel)

	v.SetDefault("papers.source", string(types.SourceSynthetic))
	v.SetDefault("papers.file", "")
	v.SetDefault("papers.timeout", "30s")
	v.SetDefault("papers.user_agent", "research-assistant/0.1")
	v.SetDefault("papers.semantic_scholar_api_key", "")
	v.SetDefault("papers.openalex_email", "")

	v.SetDefault("ai.provider", string(types.ProviderGemini))
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.max_retries", 0)

	v.SetDefault("archive.enabled", true)
	v.SetDefault("archive.path", "data/runs.db")
}

// bindEnv maps nested keys to RESEARCH_ASSISTANT_* variables.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// decodeConfig unmarshals v into a Config and checks the values the
// session depends on.
func decodeConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if cfg.PaperLimit < 1 {
		return types.Config{}, fmt.Errorf("paper_limit must be at least 1, got %d", cfg.PaperLimit)
	}
	if cfg.AI.MaxRetries < 0 {
		return types.Config{}, fmt.Errorf("ai.max_retries must not be negative, got %d", cfg.AI.MaxRetries)
	}
	if cfg.AI.Model == "" {
		switch cfg.AI.Provider {
		case types.ProviderClaude:
			cfg.AI.Model = review.DefaultClaudeModel
		default:
			cfg.AI.Model = review.DefaultGeminiModel
		}
	}
	return cfg, nil
}

// applySecrets fills API keys that the configuration left empty, first from
// the secrets directory and then from the provider's usual variables.
func applySecrets(cfg *types.Config, s secrets.Set) {
	switch cfg.AI.Provider {
	case types.ProviderClaude:
		cfg.AI.APIKey = s.Resolve(cfg.AI.APIKey, secrets.AnthropicKey, "ANTHROPIC_API_KEY")
	default:
		cfg.AI.APIKey = s.Resolve(cfg.AI.APIKey, secrets.GeminiKey, "GEMINI_API_KEY", "GOOGLE_API_KEY")
	}
	cfg.Papers.SemanticScholarAPIKey = s.Resolve(cfg.Papers.SemanticScholarAPIKey,
		secrets.SemanticScholarKey, "SEMANTIC_SCHOLAR_API_KEY")
	cfg.Papers.OpenAlexEmail = s.Resolve(cfg.Papers.OpenAlexEmail, secrets.OpenAlexEmail)
}
