package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input, such as an
	// empty document. Never retried; no partial bundle is produced.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Answer generation and simplification are disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Retrieval is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrCapabilityUnavailable indicates an external capability kept
	// failing after the retry budget was exhausted. Distinct from input
	// errors: the request was well-formed but upstream never answered.
	ErrCapabilityUnavailable = errors.New("external capability unavailable")

	// ErrChecksumMismatch indicates a reloaded bundle's source checksum no
	// longer matches its recorded value.
	ErrChecksumMismatch = errors.New("source checksum mismatch")
)
