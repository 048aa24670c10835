// Package memory provides in-memory implementations of the storage ports,
// used in tests and as a fallback when no data directory is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
	"github.com/plainterms/plainterms-cli/internal/core/ports/driven"
)

// Ensure BundleStore implements the interface.
var _ driven.BundleStore = (*BundleStore)(nil)

// BundleStore is an in-memory implementation of driven.BundleStore.
// Bundles are deep-copied on save and load so callers never share
// segment slices with the store.
type BundleStore struct {
	mu      sync.RWMutex
	bundles map[string]domain.Bundle
}

// NewBundleStore creates a new in-memory bundle store.
func NewBundleStore() *BundleStore {
	return &BundleStore{
		bundles: make(map[string]domain.Bundle),
	}
}

// Save stores or replaces a bundle.
func (s *BundleStore) Save(_ context.Context, bundle *domain.Bundle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bundles[bundle.ID] = copyBundle(bundle)
	return nil
}

// Get retrieves a bundle by ID.
func (s *BundleStore) Get(_ context.Context, id string) (*domain.Bundle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bundle, ok := s.bundles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := copyBundle(&bundle)
	return &out, nil
}

// List returns all bundles ordered by creation time, then ID.
func (s *BundleStore) List(_ context.Context) ([]domain.Bundle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Bundle, 0, len(s.bundles))
	for id := range s.bundles {
		b := s.bundles[id]
		result = append(result, copyBundle(&b))
	}
	sort.Slice(result, func(a, b int) bool {
		if !result[a].IndexMetadata.CreatedAt.Equal(result[b].IndexMetadata.CreatedAt) {
			return result[a].IndexMetadata.CreatedAt.Before(result[b].IndexMetadata.CreatedAt)
		}
		return result[a].ID < result[b].ID
	})
	return result, nil
}

// Delete removes a bundle.
func (s *BundleStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bundles, id)
	return nil
}

// copyBundle deep-copies segments and their embeddings.
func copyBundle(b *domain.Bundle) domain.Bundle {
	out := *b
	out.Segments = make([]domain.Segment, len(b.Segments))
	for i := range b.Segments {
		out.Segments[i] = b.Segments[i]
		if b.Segments[i].Embedding != nil {
			out.Segments[i].Embedding = append([]float32(nil), b.Segments[i].Embedding...)
		}
	}
	return out
}
