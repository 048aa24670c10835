// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the external embedding and text-generation
// capabilities, bundle persistence, and the embedding cache.
//
// Implementations live in internal/adapters/driven.
package driven
