package knowledge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driven"
)

// Ensure FileSource implements the interface.
var _ driven.KnowledgeSource = (*FileSource)(nil)

// FileSource reads the document from a local .json, .yaml, .yml or .toml file.
type FileSource struct {
	path   string
	format Format
}

// NewFileSource creates a source for path. The format is fixed by its extension.
func NewFileSource(path string) (*FileSource, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &FileSource{path: path, format: format}, nil
}

// Fetch reads and decodes the file.
func (s *FileSource) Fetch(ctx context.Context) (*domain.KnowledgeDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrKnowledgeUnavailable, err)
	}
	return Decode(data, s.format)
}

// Location returns the absolute file path.
func (s *FileSource) Location() string {
	return s.path
}
