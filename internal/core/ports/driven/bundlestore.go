package driven

import (
	"context"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
)

// BundleStore persists bundles with their segments and embeddings.
// Implementations must round-trip a bundle without losing any segment
// field or embedding; serialisation format is the adapter's concern.
type BundleStore interface {
	// Save stores or replaces a bundle.
	Save(ctx context.Context, bundle *domain.Bundle) error

	// Get retrieves a bundle by ID, segments in document order.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Bundle, error)

	// List returns all bundles, segments included, ordered by creation time.
	List(ctx context.Context) ([]domain.Bundle, error)

	// Delete removes a bundle and its segments.
	Delete(ctx context.Context, id string) error
}
