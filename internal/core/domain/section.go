package domain

import (
	"strings"
	"unicode"
)

// Section is one retrievable, self-contained text slice of the knowledge document.
type Section struct {
	// ID is derived from the slice's path in the document.
	ID string

	// Content is a one-paragraph rendering of the slice.
	Content string

	// Embedding is nil until the section has been embedded.
	Embedding []float32
}

// HasEmbedding returns true if the section carries a vector.
func (s Section) HasEmbedding() bool {
	return len(s.Embedding) > 0
}

// SectionID joins path parts into a stable section identifier.
// Each part is lower-cased and runs of whitespace become a single hyphen.
func SectionID(parts ...string) string {
	slugs := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := Slug(p); s != "" {
			slugs = append(slugs, s)
		}
	}
	return strings.Join(slugs, "-")
}

// Slug lower-cases s and replaces whitespace runs with a hyphen.
func Slug(s string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(s), unicode.IsSpace), "-")
}

// RetrievalMethod names the path the retriever took.
type RetrievalMethod string

// Retrieval methods.
const (
	// RetrievalVector ranks sections by cosine similarity.
	RetrievalVector RetrievalMethod = "vector"

	// RetrievalKeyword matches sections by substring in construction order.
	RetrievalKeyword RetrievalMethod = "keyword"
)

// String returns the string representation.
func (m RetrievalMethod) String() string {
	return string(m)
}

// ScoredSection is a section with its similarity to the query.
// Score is zero on the keyword path.
type ScoredSection struct {
	Section Section
	Score   float64
}

// Retrieval is the outcome of one retrieve call.
type Retrieval struct {
	// Query is the text that was searched for.
	Query string

	// Method is the path that produced Results.
	Method RetrievalMethod

	// Results are ordered by decreasing relevance.
	Results []ScoredSection

	// Outcome is degraded when the vector path was wanted but unavailable.
	Outcome Outcome
}

// Sections returns the retrieved sections without scores.
func (r Retrieval) Sections() []Section {
	out := make([]Section, len(r.Results))
	for i, res := range r.Results {
		out[i] = res.Section
	}
	return out
}

// IndexState is the lifecycle of the embedding index.
type IndexState string

// Index states.
const (
	IndexIdle     IndexState = "idle"
	IndexBuilding IndexState = "building"
	IndexReady    IndexState = "ready"
	IndexFailed   IndexState = "failed"
	IndexDisabled IndexState = "disabled"
)

// String returns the string representation.
func (s IndexState) String() string {
	return string(s)
}

// IndexStatus describes the embedding index for display.
type IndexStatus struct {
	State IndexState

	// Sections is the number of sections in the corpus.
	Sections int

	// Embedded is the number of sections carrying a vector.
	// It may be non-zero while the index is not ready.
	Embedded int

	// CacheHits counts vectors reused from the embedding cache.
	CacheHits int

	// Model is the embedding model used, if any.
	Model string

	Outcome Outcome
}

// Ready returns true if the vector path may be used.
func (s IndexStatus) Ready() bool {
	return s.State == IndexReady
}
