package driven

import "github.com/custodia-labs/bumpbook/internal/core/domain"

// ProvenanceClassifier decides whether a reply used the retrieved sections.
// The default implementation is a textual heuristic; a classifier backed by
// the model reporting which sections it used can be substituted.
type ProvenanceClassifier interface {
	Classify(reply string, sections []domain.Section) domain.Provenance
}
