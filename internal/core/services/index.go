package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driven"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driving"
	"github.com/custodia-labs/bumpbook/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// Default index build settings.
const (
	DefaultIndexConcurrency       = 8
	DefaultIndexRequestsPerSecond = 10
)

// IndexConfig tunes the embedding fan-out.
type IndexConfig struct {
	// Concurrency caps embedding requests in flight. Zero uses the default.
	Concurrency int

	// RequestsPerSecond paces embedding requests. Zero or less disables pacing.
	RequestsPerSecond float64
}

// IndexService embeds every section once and tracks readiness.
//
// Each build goroutine writes only its own vector slot. Vectors are copied
// onto the sections after the group settles, and readiness is published last.
type IndexService struct {
	embedder driven.EmbeddingService
	cache    driven.EmbeddingCache
	config   IndexConfig

	started atomic.Bool
	ready   atomic.Bool

	mu       sync.RWMutex
	sections []domain.Section
	status   domain.IndexStatus
}

// NewIndexService creates an index over sections.
// The embedder and cache parameters are optional (can be nil).
func NewIndexService(
	sections []domain.Section,
	embedder driven.EmbeddingService,
	cache driven.EmbeddingCache,
	config IndexConfig,
) *IndexService {
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultIndexConcurrency
	}

	owned := make([]domain.Section, len(sections))
	copy(owned, sections)

	s := &IndexService{
		embedder: embedder,
		cache:    cache,
		config:   config,
		sections: owned,
		status: domain.IndexStatus{
			State:    domain.IndexIdle,
			Sections: len(owned),
			Outcome:  domain.Success(),
		},
	}
	if embedder == nil {
		s.status.State = domain.IndexDisabled
		s.status.Outcome = domain.Degraded("embedding service not configured")
	} else {
		s.status.Model = embedder.ModelName()
	}
	return s
}

// Build embeds every section once.
// Only the first call does any work; later calls return the current status.
func (s *IndexService) Build(ctx context.Context) domain.IndexStatus {
	if !s.started.CompareAndSwap(false, true) {
		logger.Debug("Index build already attempted, skipping")
		return s.Status()
	}

	logger.Section("Index Build")

	if s.embedder == nil {
		logger.Info("No embedding service configured, retrieval will use keyword matching")
		return s.Status()
	}

	s.mu.Lock()
	s.status.State = domain.IndexBuilding
	texts := make([]domain.Section, len(s.sections))
	copy(texts, s.sections)
	s.mu.Unlock()

	logger.Debug("Embedding %d sections with %s (concurrency=%d, rps=%.1f)",
		len(texts), s.embedder.ModelName(), s.config.Concurrency, s.config.RequestsPerSecond)

	vectors, hits, err := s.embedAll(ctx, texts)

	s.mu.Lock()
	embedded := 0
	for i, v := range vectors {
		if len(v) > 0 {
			s.sections[i].Embedding = v
			embedded++
		}
	}
	s.status.Embedded = embedded
	s.status.CacheHits = hits
	if err != nil {
		s.status.State = domain.IndexFailed
		s.status.Outcome = domain.Failed(err.Error())
	} else {
		s.status.State = domain.IndexReady
		s.status.Outcome = domain.Success()
	}
	status := s.status
	s.mu.Unlock()

	if err != nil {
		logger.Warn("Index build failed, keyword fallback for this session: %v", err)
		return status
	}

	s.ready.Store(true)
	logger.Info("Index ready: %d sections embedded (%d from cache)", embedded, hits)
	return status
}

// embedAll runs one task per section and fails if any task fails.
func (s *IndexService) embedAll(ctx context.Context, sections []domain.Section) ([][]float32, int, error) {
	vectors := make([][]float32, len(sections))
	var hits atomic.Int64

	var limiter *rate.Limiter
	if s.config.RequestsPerSecond > 0 {
		burst := int(s.config.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(s.config.RequestsPerSecond), burst)
	}

	model := s.embedder.ModelName()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Concurrency)

	for i, section := range sections {
		g.Go(func() error {
			key := domain.NewEmbeddingKey(model, section)

			if v, ok := s.cachedVector(gctx, key); ok {
				vectors[i] = v
				hits.Add(1)
				return nil
			}

			if limiter != nil {
				if err := limiter.Wait(gctx); err != nil {
					return fmt.Errorf("embed section %s: %w", section.ID, err)
				}
			}

			v, err := s.embedder.Embed(gctx, section.Content)
			if err != nil {
				logger.Warn("Embedding section %s failed: %v", section.ID, err)
				return fmt.Errorf("embed section %s: %w", section.ID, err)
			}
			if len(v) == 0 {
				return fmt.Errorf("embed section %s: empty vector: %w", section.ID, domain.ErrEmbeddingUnavailable)
			}
			vectors[i] = v

			if s.cache != nil {
				if err := s.cache.Put(gctx, key, v); err != nil {
					logger.Warn("Caching embedding for %s failed: %v", section.ID, err)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return vectors, int(hits.Load()), err
	}

	if err := sameDimensions(vectors); err != nil {
		return vectors, int(hits.Load()), err
	}
	return vectors, int(hits.Load()), nil
}

func (s *IndexService) cachedVector(ctx context.Context, key domain.EmbeddingKey) ([]float32, bool) {
	if s.cache == nil {
		return nil, false
	}
	v, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("Embedding cache lookup for %s failed: %v", key.SectionID, err)
		return nil, false
	}
	if !ok || len(v) == 0 {
		return nil, false
	}
	return v, true
}

var errDimensionMismatch = errors.New("embedding dimensions differ between sections")

func sameDimensions(vectors [][]float32) error {
	dims := -1
	for _, v := range vectors {
		if dims == -1 {
			dims = len(v)
			continue
		}
		if len(v) != dims {
			return errDimensionMismatch
		}
	}
	return nil
}

// Ready returns true once every section has been embedded.
func (s *IndexService) Ready() bool {
	return s.ready.Load()
}

// Sections returns a copy of the corpus in construction order.
func (s *IndexService) Sections() []domain.Section {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Section, len(s.sections))
	copy(out, s.sections)
	return out
}

// Status reports the index state.
func (s *IndexService) Status() domain.IndexStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}
