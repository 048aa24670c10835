package driven

import "context"

// EmbeddingCache stores computed embeddings keyed by (bundle, segment),
// injected into the retriever so retrieval logic stays free of storage
// side effects. The fingerprint is a short hash of the segment text used
// as a cache-invalidation aid, never for correctness.
type EmbeddingCache interface {
	// Get returns the cached vector and fingerprint for a segment.
	// A nil vector with nil error means a cache miss.
	Get(ctx context.Context, bundleID, segmentID string) ([]float32, string, error)

	// Put stores a vector and fingerprint for a segment, replacing any
	// previous entry.
	Put(ctx context.Context, bundleID, segmentID string, vector []float32, fingerprint string) error

	// DeleteBundle drops every cached entry for a bundle.
	DeleteBundle(ctx context.Context, bundleID string) error
}
