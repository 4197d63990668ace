// Package ollama is a small client for the Ollama REST API, shared by the
// embedding and LLM adapters.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is where a local Ollama server listens.
const DefaultBaseURL = "http://localhost:11434"

const (
	tagsEndpoint   = "/api/tags"
	defaultTimeout = 30 * time.Second
)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at another server. Empty keeps the default.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout sets the per-request timeout. Zero keeps the default.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// Client sends JSON requests to one Ollama server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the local server unless options say otherwise.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is a reply carrying an error, either as a non-200 status or in
// the body's error field.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status != http.StatusOK {
		return fmt.Sprintf("ollama: status %d: %s", e.Status, e.Message)
	}
	return "ollama: " + e.Message
}

// errorBody is embedded in every reply type so in-band errors are seen.
type errorBody struct {
	Error string `json:"error,omitempty"`
}

// Post sends in as JSON to path and decodes the reply into out.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var inBand errorBody
	_ = json.Unmarshal(raw, &inBand)

	if resp.StatusCode != http.StatusOK {
		msg := inBand.Error
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if inBand.Error != "" {
		return &APIError{Status: resp.StatusCode, Message: inBand.Error}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type tagsResponse struct {
	Models []struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	} `json:"models"`
}

// HasModel reports whether model has been pulled. A name without a tag
// matches its ":latest" variant.
func (c *Client) HasModel(ctx context.Context, model string) (bool, error) {
	var tags tagsResponse
	if err := c.get(ctx, tagsEndpoint, &tags); err != nil {
		return false, err
	}

	want := model
	if !strings.Contains(want, ":") {
		want += ":latest"
	}
	for _, m := range tags.Models {
		for _, name := range []string{m.Name, m.Model} {
			if name == model || name == want {
				return true, nil
			}
		}
	}
	return false, nil
}

// Ping checks the server answers and has model pulled. It runs no inference.
func (c *Client) Ping(ctx context.Context, model string) error {
	ok, err := c.HasModel(ctx, model)
	if err != nil {
		return fmt.Errorf("ollama: ping failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("ollama: model %q is not available, run 'ollama pull %s'", model, model)
	}
	return nil
}
