package driving

import (
	"context"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

// KnowledgeService owns the knowledge document for the process lifetime.
type KnowledgeService interface {
	// Load fetches and validates the document.
	// It never fails: an unreadable source yields an empty document and a failed outcome.
	Load(ctx context.Context) domain.LoadResult

	// Document returns the loaded document, or an empty one before Load.
	Document() *domain.KnowledgeDocument

	// Result returns the result of the last Load.
	// Before Load the outcome is degraded with reason "not loaded".
	Result() domain.LoadResult
}
