package mcp

import (
	"github.com/custodia-labs/bumpbook/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval finds the sections relevant to a query.
	Retrieval driving.RetrievalService

	// Chat answers questions. Optional.
	Chat driving.ChatService

	// Lookup reads the knowledge document directly. Optional.
	Lookup driving.LookupService

	// Index exposes the section corpus. Optional.
	Index driving.IndexService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
