package services

import (
	"context"
	"sort"
	"strings"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driven"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driving"
	"github.com/custodia-labs/bumpbook/internal/logger"
)

// Ensure RetrieverService implements the interface.
var _ driving.RetrievalService = (*RetrieverService)(nil)

// SectionIndex is the read side of the embedding index.
type SectionIndex interface {
	Ready() bool
	Sections() []domain.Section
}

// RetrieverService ranks sections by vector similarity when the index is
// ready, and matches them by keyword otherwise.
type RetrieverService struct {
	index     SectionIndex
	embedder  driven.EmbeddingService
	threshold float64
}

// NewRetrieverService creates a retriever over index.
// The embedder parameter is optional (can be nil).
func NewRetrieverService(index SectionIndex, embedder driven.EmbeddingService) *RetrieverService {
	return &RetrieverService{
		index:     index,
		embedder:  embedder,
		threshold: domain.SimilarityThreshold,
	}
}

// Retrieve returns at most topK sections ordered by decreasing relevance.
func (s *RetrieverService) Retrieve(ctx context.Context, query string, topK int) domain.Retrieval {
	logger.Section("Retrieval")
	logger.Debug("Query: %q, topK: %d", query, topK)

	result := domain.Retrieval{
		Query:   query,
		Method:  domain.RetrievalKeyword,
		Results: []domain.ScoredSection{},
		Outcome: domain.Success(),
	}

	if strings.TrimSpace(query) == "" || topK <= 0 {
		logger.Debug("Empty query or topK, returning no results")
		return result
	}

	switch {
	case s.embedder == nil:
		result.Outcome = domain.Degraded("embedding service not configured")
	case !s.index.Ready():
		// Partial vectors from a failed or in-flight build are never used.
		result.Outcome = domain.Degraded("index not ready")
	default:
		queryVec, err := s.embedder.Embed(ctx, strings.TrimSpace(query))
		if err == nil && len(queryVec) > 0 {
			result.Method = domain.RetrievalVector
			result.Results = s.vectorSearch(queryVec, topK)
			logger.Debug("Vector search: %d results above %.2f", len(result.Results), s.threshold)
			return result
		}
		if err != nil {
			logger.Warn("Query embedding failed, using keyword fallback: %v", err)
		}
		result.Outcome = domain.Degraded("query embedding failed")
	}

	result.Results = s.keywordSearch(query, topK)
	logger.Debug("Keyword search (%s): %d results", result.Outcome.Reason, len(result.Results))
	return result
}

// vectorSearch scores every section, drops scores at or below the
// threshold and returns the best topK.
func (s *RetrieverService) vectorSearch(queryVec []float32, topK int) []domain.ScoredSection {
	sections := s.index.Sections()
	scored := make([]domain.ScoredSection, 0, len(sections))
	for _, section := range sections {
		if !section.HasEmbedding() {
			continue
		}
		score := CosineSimilarity(queryVec, section.Embedding)
		// Written this way so NaN scores are dropped too.
		if !(score > s.threshold) {
			continue
		}
		scored = append(scored, domain.ScoredSection{Section: section, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}

// keywordSearch returns the first topK sections containing query, in
// construction order. The query is matched as given, surrounding spaces
// included. It never fails.
func (s *RetrieverService) keywordSearch(query string, topK int) []domain.ScoredSection {
	needle := strings.ToLower(query)
	results := []domain.ScoredSection{}
	for _, section := range s.index.Sections() {
		if len(results) == topK {
			break
		}
		if strings.Contains(strings.ToLower(section.Content), needle) {
			results = append(results, domain.ScoredSection{Section: section})
		}
	}
	return results
}
