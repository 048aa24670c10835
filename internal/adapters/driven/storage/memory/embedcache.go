package memory

import (
	"context"
	"sync"

	"github.com/plainterms/plainterms-cli/internal/core/ports/driven"
)

// Ensure EmbeddingCache implements the interface.
var _ driven.EmbeddingCache = (*EmbeddingCache)(nil)

// cacheEntry is one stored vector with its fingerprint.
type cacheEntry struct {
	vector      []float32
	fingerprint string
}

// EmbeddingCache is an in-memory implementation of driven.EmbeddingCache.
type EmbeddingCache struct {
	mu      sync.RWMutex
	entries map[string]map[string]cacheEntry // bundleID -> segmentID -> entry
}

// NewEmbeddingCache creates a new in-memory embedding cache.
func NewEmbeddingCache() *EmbeddingCache {
	return &EmbeddingCache{
		entries: make(map[string]map[string]cacheEntry),
	}
}

// Get returns the cached vector and fingerprint for a segment.
// A nil vector with nil error means a cache miss.
func (c *EmbeddingCache) Get(_ context.Context, bundleID, segmentID string) ([]float32, string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[bundleID][segmentID]
	if !ok {
		return nil, "", nil
	}
	return append([]float32(nil), entry.vector...), entry.fingerprint, nil
}

// Put stores a vector and fingerprint for a segment.
func (c *EmbeddingCache) Put(_ context.Context, bundleID, segmentID string, vector []float32, fingerprint string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[bundleID] == nil {
		c.entries[bundleID] = make(map[string]cacheEntry)
	}
	c.entries[bundleID][segmentID] = cacheEntry{
		vector:      append([]float32(nil), vector...),
		fingerprint: fingerprint,
	}
	return nil
}

// DeleteBundle drops every cached entry for a bundle.
func (c *EmbeddingCache) DeleteBundle(_ context.Context, bundleID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, bundleID)
	return nil
}
