// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants ingest legal documents, retrieve relevant
// segments and verify generated answers against them.
package mcp

import "errors"

// Errors returned when required ports are not provided.
var (
	ErrMissingBundleService       = errors.New("mcp: bundle service is required")
	ErrMissingRetrievalService    = errors.New("mcp: retrieval service is required")
	ErrMissingVerificationService = errors.New("mcp: verification service is required")
)
