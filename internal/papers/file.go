// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package papers

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// FileBackend reads records from a YAML list of {title, abstract, url}.
// It lets a researcher review a hand-picked reading list offline.
type FileBackend struct {
	Path string
}

// Name returns the backend identifier.
func (b *FileBackend) Name() string { return string(types.SourceFile) }

// Search returns the first limit records of the file. The topic does not
// filter the list.
func (b *FileBackend) Search(_ context.Context, _ string, limit int) ([]types.PaperRecord, error) {
	data, err := os.ReadFile(b.Path)
	if err != nil {
		return nil, fmt.Errorf("reading paper list: %w", err)
	}
	var records []types.PaperRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing paper list %s: %w", b.Path, err)
	}
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
