// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by paper sources that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-assistant/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SourceKind selects the paper source backend.
type SourceKind string

const (
	SourceSynthetic       SourceKind = "synthetic"
	SourceSemanticScholar SourceKind = "semantic_scholar"
	SourceArxiv           SourceKind = "arxiv"
	SourceOpenAlex        SourceKind = "openalex"
	SourceFile            SourceKind = "file"
)

// PaperSourceConfig holds settings for the paper source stage.
type PaperSourceConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Source selects the backend: synthetic, semantic_scholar, arxiv,
	// openalex, or file.
	Source SourceKind `json:"source" yaml:"source" mapstructure:"source"`

	// File is the YAML record list read by the file source.
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty" mapstructure:"semantic_scholar_api_key"`

	// OpenAlexEmail joins the OpenAlex polite pool when set.
	OpenAlexEmail string `json:"openalex_email,omitempty" yaml:"openalex_email,omitempty" mapstructure:"openalex_email"`
}

// Provider identifies the language-model service.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderClaude Provider = "claude"
)

// AIConfig holds settings for the review generator's language-model backend.
type AIConfig struct {
	// Provider selects the backend: gemini or claude.
	Provider Provider `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Model is the model identifier (e.g. "gemini-2.5-flash").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key for the model API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxRetries is the number of extra attempts after a failed call (default 0).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// ArchiveConfig controls the SQLite archive of past runs.
type ArchiveConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config groups every setting of the research assistant.
type Config struct {
	// DataDir holds memory.json and output.json.
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`

	// ExportDir receives exported reviews.
	ExportDir string `json:"export_dir" yaml:"export_dir" mapstructure:"export_dir"`

	// PaperLimit is the number of papers requested per run.
	PaperLimit int `json:"paper_limit" yaml:"paper_limit" mapstructure:"paper_limit"`

	// LogLevel is the zap level for diagnostics on stderr.
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`

	Papers  PaperSourceConfig `json:"papers" yaml:"papers" mapstructure:"papers"`
	AI      AIConfig          `json:"ai" yaml:"ai" mapstructure:"ai"`
	Archive ArchiveConfig     `json:"archive" yaml:"archive" mapstructure:"archive"`
}
