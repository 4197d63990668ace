// Package mcp provides an MCP (Model Context Protocol) server adapter for bumpbook.
// It lets AI assistants retrieve knowledge sections and query medication and symptom safety.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")

// ErrMissingChatService is returned by the ask tool when no chat service is wired.
var ErrMissingChatService = errors.New("mcp: chat service not configured")

// ErrMissingLookupService is returned by lookup tools when no lookup service is wired.
var ErrMissingLookupService = errors.New("mcp: lookup service not configured")
