// Package tui provides an interactive terminal user interface for bumpbook.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/bumpbook/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Lookup answers the structured medication, symptom, timeline and nutrition questions.
	Lookup driving.LookupService

	// Chat answers free-form questions. Optional; without it the chat tab reports an error.
	Chat driving.ChatService

	// Index reports and builds the embedding index. Optional.
	Index driving.IndexService

	// Preferences provides the due date for the timeline. Optional.
	Preferences driving.PreferencesService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Lookup == nil {
		return ErrMissingLookupService
	}
	return nil
}
