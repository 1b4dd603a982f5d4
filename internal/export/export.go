// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes a run's review to a file named after its topic.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// ErrUnsupportedFormat means the requested format is not markdown, json, or yaml.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format names an export file type.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ParseFormat maps user input to a Format. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (use markdown, json, or yaml)", ErrUnsupportedFormat, s)
	}
}

// Slug derives a file name stem from topic: lower-cased, whitespace turned
// into underscores, and every character other than a letter, digit, or
// underscore dropped.
func Slug(topic string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(strings.ToLower(topic)) {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte('_')
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}

// FileName returns the export file name for topic in format f.
func FileName(topic string, f Format) string {
	switch f {
	case FormatJSON:
		return Slug(topic) + "_structured.json"
	case FormatYAML:
		return Slug(topic) + "_structured.yaml"
	default:
		return Slug(topic) + "_review.md"
	}
}

// Exporter writes export files into Dir.
type Exporter struct {
	Dir string
}

// Export writes result in format and returns the file path. Markdown
// exports the rendered review verbatim; json (indented) and yaml export the
// structured review. An unsupported format writes nothing.
func (e Exporter) Export(result types.RunResult, format string) (string, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}

	var data []byte
	switch f {
	case FormatJSON:
		data, err = json.MarshalIndent(result.Structured, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling review: %w", err)
		}
	case FormatYAML:
		data, err = yaml.Marshal(result.Structured)
		if err != nil {
			return "", fmt.Errorf("marshaling YAML: %w", err)
		}
	default:
		data = []byte(result.RenderedMarkdown)
	}

	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(e.Dir, FileName(result.Topic, f))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
