package driving

import (
	"context"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

// IndexService builds and exposes the section corpus and its embeddings.
type IndexService interface {
	// Build embeds every section once.
	// It is a no-op when no embedding service is configured or a build was already attempted.
	Build(ctx context.Context) domain.IndexStatus

	// Ready returns true once every section has been embedded.
	Ready() bool

	// Sections returns the corpus in construction order.
	Sections() []domain.Section

	// Status reports the index state for display.
	Status() domain.IndexStatus
}
