// Package ollama provides an embedding service adapter using Ollama.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	ollamaapi "github.com/custodia-labs/bumpbook/internal/adapters/driven/ollama"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultModel      = "nomic-embed-text"
	DefaultTimeout    = 30 * time.Second
	DefaultDimensions = 768
)

const embedEndpoint = "/api/embed"

// Config holds configuration for the Ollama embedding service.
type Config struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Model is the embedding model to use (default: nomic-embed-text).
	Model string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// Dimensions fixes the expected vector size. Zero learns it from the
	// first reply.
	Dimensions int
}

// EmbeddingService generates embeddings using Ollama.
//
// Every vector must have the same length as the first one; a model swapped
// on the server mid-build is reported instead of silently mixing spaces.
type EmbeddingService struct {
	client     *ollamaapi.Client
	model      string
	dimensions atomic.Int64
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// NewEmbeddingService creates a new Ollama embedding service.
func NewEmbeddingService(cfg Config) *EmbeddingService {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	s := &EmbeddingService{
		client: ollamaapi.NewClient(ollamaapi.WithBaseURL(cfg.BaseURL), ollamaapi.WithTimeout(cfg.Timeout)),
		model:  cfg.Model,
	}
	s.dimensions.Store(int64(cfg.Dimensions))
	return s
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	var resp embedResponse
	if err := s.client.Post(ctx, embedEndpoint, embedRequest{Model: s.model, Input: []string{text}}, &resp); err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0]) == 0 {
		return nil, errors.New("ollama embed: no embedding returned")
	}

	v := resp.Embeddings[0]
	got := int64(len(v))
	if s.dimensions.CompareAndSwap(0, got) {
		return v, nil
	}
	if want := s.dimensions.Load(); want != got {
		return nil, fmt.Errorf("ollama embed: got %d dimensions from %s, want %d", got, s.model, want)
	}
	return v, nil
}

// Dimensions returns the embedding vector size, or DefaultDimensions until
// the first reply has been seen.
func (s *EmbeddingService) Dimensions() int {
	if d := s.dimensions.Load(); d > 0 {
		return int(d)
	}
	return DefaultDimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping checks the server is up and the model has been pulled.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, s.model)
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}
