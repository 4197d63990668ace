package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driven"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driving"
	"github.com/custodia-labs/bumpbook/internal/logger"
)

// Ensure KnowledgeService implements the interface.
var _ driving.KnowledgeService = (*KnowledgeService)(nil)

// KnowledgeService loads the knowledge document once and holds it.
type KnowledgeService struct {
	source driven.KnowledgeSource

	mu     sync.RWMutex
	doc    *domain.KnowledgeDocument
	result domain.LoadResult
}

// NewKnowledgeService creates a knowledge service.
// The source parameter is optional (can be nil); without it the document is empty.
func NewKnowledgeService(source driven.KnowledgeSource) *KnowledgeService {
	doc := &domain.KnowledgeDocument{}
	return &KnowledgeService{
		source: source,
		doc:    doc,
		result: domain.LoadResult{Document: doc, Outcome: domain.Degraded("not loaded")},
	}
}

// Load fetches and validates the document.
// An unreadable source leaves an empty document; lookups and sections then come back empty.
func (s *KnowledgeService) Load(ctx context.Context) domain.LoadResult {
	logger.Section("Knowledge Load")

	result := s.load(ctx)

	s.mu.Lock()
	s.result = result
	s.mu.Unlock()
	return result
}

func (s *KnowledgeService) load(ctx context.Context) domain.LoadResult {
	if s.source == nil {
		logger.Warn("No knowledge source configured")
		return domain.LoadResult{
			Document: s.Document(),
			Outcome:  domain.Degraded("no knowledge source configured"),
		}
	}

	location := s.source.Location()
	logger.Debug("Fetching knowledge document from %s", location)

	doc, err := s.source.Fetch(ctx)
	if err != nil {
		logger.Warn("Knowledge document unavailable: %v", err)
		return domain.LoadResult{
			Document: s.Document(),
			Source:   location,
			Outcome:  domain.Failed(err.Error()),
		}
	}
	if doc == nil {
		doc = &domain.KnowledgeDocument{}
	}

	problems := doc.Validate()
	for _, p := range problems {
		logger.Warn("Knowledge slice %s", p.Error())
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()

	outcome := domain.Success()
	if len(problems) > 0 {
		outcome = domain.Degraded("some knowledge slices are malformed")
	}
	logger.Info("Loaded knowledge document from %s (%d problems)", location, len(problems))

	return domain.LoadResult{
		Document: doc,
		Source:   location,
		Problems: problems,
		Outcome:  outcome,
	}
}

// Document returns the loaded document, or an empty one before Load.
func (s *KnowledgeService) Document() *domain.KnowledgeDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Result returns the result of the last Load.
func (s *KnowledgeService) Result() domain.LoadResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}
