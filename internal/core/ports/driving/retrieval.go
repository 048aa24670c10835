package driving

import (
	"context"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
)

// RetrievalService answers "which segments of this bundle best match this
// query" using cached vector embeddings.
type RetrievalService interface {
	// EnsureEmbeddings computes and attaches embeddings for every segment
	// lacking one. Idempotent: repeated calls never re-request embeddings
	// already present on the in-memory bundle. Partial success is the
	// normal case, not an error path.
	EnsureEmbeddings(ctx context.Context, bundle *domain.Bundle) error

	// TopK returns up to k segments ranked by cosine similarity to the
	// query, score descending, ties broken by document order.
	TopK(ctx context.Context, bundle *domain.Bundle, query string, k int) ([]domain.ScoredSegment, error)
}
