package services

import (
	"strings"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driven"
)

// Ensure PrefixClassifier implements the interface.
var _ driven.ProvenanceClassifier = (*PrefixClassifier)(nil)

// PrefixClassifier labels a reply grounded when it contains the opening
// characters of any retrieved section.
//
// This is a heuristic, not a guarantee: a reply can use a section without
// quoting it, or quote it by coincidence.
type PrefixClassifier struct {
	// Length is the number of leading characters compared.
	Length int
}

// NewPrefixClassifier creates a classifier comparing domain.ProvenancePrefixLength characters.
func NewPrefixClassifier() *PrefixClassifier {
	return &PrefixClassifier{Length: domain.ProvenancePrefixLength}
}

// Classify returns grounded or general. It never returns error provenance.
func (c *PrefixClassifier) Classify(reply string, sections []domain.Section) domain.Provenance {
	if len(sections) == 0 {
		return domain.ProvenanceGeneral
	}

	haystack := strings.ToLower(reply)
	for _, section := range sections {
		prefix := strings.ToLower(truncateRunes(section.Content, c.Length))
		if prefix == "" {
			continue
		}
		if strings.Contains(haystack, prefix) {
			return domain.ProvenanceGrounded
		}
	}
	return domain.ProvenanceGeneral
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
