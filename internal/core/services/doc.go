// Package services implements the core use cases: ingesting documents
// into bundles, embedding-backed retrieval, grounding verification, and
// the ask orchestration that ties them to the external LLM.
//
// Services implement the driving port interfaces and depend only on
// domain types, driven ports, and the pure algorithm packages
// (segmenter, grounding, retry).
package services
