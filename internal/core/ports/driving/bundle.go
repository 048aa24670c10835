package driving

import (
	"context"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
)

// BundleService ingests documents into bundles and manages their lifecycle.
type BundleService interface {
	// Ingest segments a raw document and persists the resulting bundle.
	// Empty or whitespace-only documents return domain.ErrInvalidInput.
	Ingest(ctx context.Context, document string) (*domain.Bundle, error)

	// Get retrieves a bundle by ID.
	Get(ctx context.Context, id string) (*domain.Bundle, error)

	// List returns all bundles.
	List(ctx context.Context) ([]domain.Bundle, error)

	// Delete removes a bundle and its cached embeddings.
	Delete(ctx context.Context, id string) error
}
