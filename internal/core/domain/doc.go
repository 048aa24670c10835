// Package domain defines the core business entities for Plainterms.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Bundle: The provenance container for one ingested document
//   - Segment: A contiguous, offset-addressable unit of source text
//   - ScoredSegment: A segment paired with a retrieval score
//   - VerificationReport: The outcome of grounding verification
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
