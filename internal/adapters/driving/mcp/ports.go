package mcp

import (
	"github.com/plainterms/plainterms-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Bundle ingests and manages document bundles.
	Bundle driving.BundleService

	// Retrieval ranks bundle segments against queries.
	Retrieval driving.RetrievalService

	// Verification checks answers against bundle segments.
	Verification driving.VerificationService

	// Ask answers questions with generation and verification. Optional:
	// nil when no LLM is configured, which disables the ask tool only.
	Ask driving.AskService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Bundle == nil {
		return ErrMissingBundleService
	}
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	if p.Verification == nil {
		return ErrMissingVerificationService
	}
	return nil
}
