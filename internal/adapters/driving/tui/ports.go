// Package tui provides an interactive terminal user interface for
// plainterms. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/plainterms/plainterms-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Bundle lists and loads ingested bundles.
	Bundle driving.BundleService

	// Ask answers questions with verified citations. Optional: when nil
	// the TUI explains that no LLM is configured instead of asking.
	Ask driving.AskService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Bundle == nil {
		return ErrMissingBundleService
	}
	return nil
}
