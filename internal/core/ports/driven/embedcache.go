package driven

import (
	"context"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

// EmbeddingCache stores section vectors between index builds.
// This is an optional service - when nil, every section is embedded on every build.
type EmbeddingCache interface {
	// Get returns the vector for key.
	// A miss returns (nil, false, nil).
	Get(ctx context.Context, key domain.EmbeddingKey) ([]float32, bool, error)

	// Put stores the vector for key, replacing any previous value.
	Put(ctx context.Context, key domain.EmbeddingKey, vector []float32) error

	// Close releases resources.
	Close() error
}
