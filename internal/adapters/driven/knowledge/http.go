package knowledge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driven"
)

// Ensure HTTPSource implements the interface.
var _ driven.KnowledgeSource = (*HTTPSource)(nil)

// Fetch limits.
const (
	DefaultHTTPTimeout = 30 * time.Second
	MaxDocumentBytes   = 16 << 20
)

// HTTPSource downloads the document once per Fetch.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source for rawURL. A nil client uses a default
// client with DefaultHTTPTimeout.
func NewHTTPSource(rawURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &HTTPSource{url: rawURL, client: client}
}

// Fetch downloads and decodes the document. The format comes from the
// Content-Type header, falling back to the URL path extension.
func (s *HTTPSource) Fetch(ctx context.Context) (*domain.KnowledgeDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml, application/toml;q=0.9, */*;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrKnowledgeUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", domain.ErrKnowledgeUnavailable, s.url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrKnowledgeUnavailable, err)
	}
	if len(data) > MaxDocumentBytes {
		return nil, fmt.Errorf("%w: document exceeds %d bytes", domain.ErrKnowledgeUnavailable, MaxDocumentBytes)
	}

	format, ok := FormatFromContentType(resp.Header.Get("Content-Type"))
	if !ok {
		u, err := url.Parse(s.url)
		if err != nil {
			return nil, fmt.Errorf("parse url: %w", err)
		}
		if format, err = FormatFromPath(u.Path); err != nil {
			return nil, err
		}
	}
	return Decode(data, format)
}

// Location returns the URL.
func (s *HTTPSource) Location() string {
	return s.url
}
