package services

import (
	"context"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/minio/highwayhash"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
	"github.com/plainterms/plainterms-cli/internal/core/ports/driven"
	"github.com/plainterms/plainterms-cli/internal/core/ports/driving"
	"github.com/plainterms/plainterms-cli/internal/logger"
	"github.com/plainterms/plainterms-cli/internal/retry"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// DefaultBatchSize bounds how many segment texts go into one embedding
// request.
const DefaultBatchSize = 16

// DefaultMaxInFlight bounds concurrent embedding batches, respecting
// upstream rate limits.
const DefaultMaxInFlight = 4

// RetrievalService ranks a bundle's segments against a query using cached
// embeddings, computing missing ones on demand.
type RetrievalService struct {
	embedder    driven.EmbeddingService
	cache       driven.EmbeddingCache
	policy      retry.Policy
	batchSize   int
	maxInFlight int

	// attachMu serialises embedding write-back: the bundle's segment list
	// is a single-writer critical section per call.
	attachMu sync.Mutex
}

// RetrievalOption configures the retrieval service.
type RetrievalOption func(*RetrievalService)

// WithBatchSize sets the embedding request batch size.
func WithBatchSize(n int) RetrievalOption {
	return func(s *RetrievalService) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithMaxInFlight sets the concurrent batch limit.
func WithMaxInFlight(n int) RetrievalOption {
	return func(s *RetrievalService) {
		if n > 0 {
			s.maxInFlight = n
		}
	}
}

// WithRetryPolicy sets the backoff policy for embedding calls.
func WithRetryPolicy(p retry.Policy) RetrievalOption {
	return func(s *RetrievalService) {
		s.policy = p
	}
}

// NewRetrievalService creates a retrieval service. The embedder is
// required for TopK; the cache is optional.
func NewRetrievalService(embedder driven.EmbeddingService, cache driven.EmbeddingCache, opts ...RetrievalOption) *RetrievalService {
	s := &RetrievalService{
		embedder:    embedder,
		cache:       cache,
		policy:      retry.DefaultPolicy(),
		batchSize:   DefaultBatchSize,
		maxInFlight: DefaultMaxInFlight,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureEmbeddings attaches an embedding to every segment lacking one.
// Cached vectors are reused when their fingerprint still matches the
// segment text; the rest are requested in batches with bounded
// concurrency. A segment whose batch keeps failing is left without an
// embedding and retried lazily on a future call; only total failure
// surfaces as an error.
func (s *RetrievalService) EnsureEmbeddings(ctx context.Context, bundle *domain.Bundle) error {
	if s.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}

	model := s.embedder.ModelName()
	if bundle.IndexMetadata.EmbeddingModel != "" && bundle.IndexMetadata.EmbeddingModel != model {
		logger.Warn("Bundle %s indexed with %q, current model %q: recomputing embeddings",
			bundle.ID, bundle.IndexMetadata.EmbeddingModel, model)
		for i := range bundle.Segments {
			bundle.Segments[i].Embedding = nil
			bundle.Segments[i].Fingerprint = ""
		}
	}

	missing := s.fillFromCache(ctx, bundle)
	if len(missing) == 0 {
		bundle.IndexMetadata.EmbeddingModel = model
		return nil
	}

	logger.Debug("Embedding %d/%d segments of %s", len(missing), len(bundle.Segments), bundle.ID)

	var (
		wg       sync.WaitGroup
		sem      = make(chan struct{}, s.maxInFlight)
		failures int
		failMu   sync.Mutex
	)

	for start := 0; start < len(missing); start += s.batchSize {
		end := start + s.batchSize
		if end > len(missing) {
			end = len(missing)
		}
		batch := missing[start:end]

		wg.Add(1)
		sem <- struct{}{}
		go func(batch []int) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := s.embedBatch(ctx, bundle, batch); err != nil {
				logger.Warn("Embedding batch failed for %s: %v", bundle.ID, err)
				failMu.Lock()
				failures += len(batch)
				failMu.Unlock()
			}
		}(batch)
	}
	wg.Wait()

	if failures == len(missing) {
		return fmt.Errorf("%w: embedding failed for all %d segments", domain.ErrCapabilityUnavailable, failures)
	}
	bundle.IndexMetadata.EmbeddingModel = model
	return nil
}

// fillFromCache attaches valid cached vectors and returns the indices of
// segments still lacking an embedding.
func (s *RetrievalService) fillFromCache(ctx context.Context, bundle *domain.Bundle) []int {
	var missing []int
	for i := range bundle.Segments {
		seg := &bundle.Segments[i]
		if seg.Embedding != nil {
			continue
		}
		if s.cache != nil {
			vector, fp, err := s.cache.Get(ctx, bundle.ID, seg.ID)
			if err == nil && vector != nil && fp == Fingerprint(seg.Text) {
				seg.Embedding = vector
				seg.Fingerprint = fp
				continue
			}
		}
		missing = append(missing, i)
	}
	return missing
}

// embedBatch requests vectors for the given segment indices and attaches
// them under the single-writer lock. No lock is held across the external
// call.
func (s *RetrievalService) embedBatch(ctx context.Context, bundle *domain.Bundle, indices []int) error {
	texts := make([]string, len(indices))
	for i, idx := range indices {
		texts[i] = bundle.Segments[idx].Text
	}

	var vectors [][]float32
	err := s.policy.Do(ctx, func(ctx context.Context) error {
		var embedErr error
		vectors, embedErr = s.embedder.EmbedBatch(ctx, texts)
		return embedErr
	})
	if err != nil {
		return err
	}
	if len(vectors) != len(indices) {
		return fmt.Errorf("embedding count mismatch: got %d, want %d", len(vectors), len(indices))
	}

	s.attachMu.Lock()
	defer s.attachMu.Unlock()
	for i, idx := range indices {
		seg := &bundle.Segments[idx]
		seg.Embedding = vectors[i]
		seg.Fingerprint = Fingerprint(seg.Text)
		if s.cache != nil {
			if cacheErr := s.cache.Put(ctx, bundle.ID, seg.ID, seg.Embedding, seg.Fingerprint); cacheErr != nil {
				logger.Warn("Caching embedding for %s: %v", seg.ID, cacheErr)
			}
		}
	}
	return nil
}

// TopK returns up to k segments ranked by cosine similarity to the query.
// Segments without an embedding score 0 and sort last; retrieval degrades
// gracefully instead of failing the whole request.
func (s *RetrievalService) TopK(ctx context.Context, bundle *domain.Bundle, query string, k int) ([]domain.ScoredSegment, error) {
	if k <= 0 {
		return nil, nil
	}
	if err := s.EnsureEmbeddings(ctx, bundle); err != nil {
		return nil, err
	}

	var queryVec []float32
	err := s.policy.Do(ctx, func(ctx context.Context) error {
		var embedErr error
		queryVec, embedErr = s.embedder.Embed(ctx, query)
		return embedErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: query embedding failed: %v", domain.ErrCapabilityUnavailable, err)
	}

	scored := make([]domain.ScoredSegment, len(bundle.Segments))
	for i := range bundle.Segments {
		scored[i] = domain.ScoredSegment{
			Segment: bundle.Segments[i],
			Score:   CosineSimilarity(queryVec, bundle.Segments[i].Embedding),
		}
	}

	// Stable: ties keep document order, earlier segment wins.
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// CosineSimilarity computes dot(a,b) / (||a|| * ||b||) with float64
// accumulation. Defined as exactly 0 when either vector is empty, has
// zero magnitude, or the dimensions disagree: never divide by zero,
// never propagate NaN.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		va := float64(a[i])
		vb := float64(b[i])
		dot += va * vb
		na += va * va
		nb += vb * vb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// fingerprintKey is a fixed HighwayHash key: fingerprints only need to be
// stable and fast, not secret.
var fingerprintKey = [32]byte{
	'p', 'l', 'a', 'i', 'n', 't', 'e', 'r', 'm', 's', '-', 'e', 'm', 'b', 'e', 'd',
	'-', 'c', 'a', 'c', 'h', 'e', '-', 'k', 'e', 'y', '-', 'v', '1', '0', '0', '0',
}

// Fingerprint returns a short stable hash of the segment text, used only
// as a cache-invalidation aid.
func Fingerprint(text string) string {
	sum := highwayhash.Sum64([]byte(text), fingerprintKey[:])
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(sum >> (8 * i))
	}
	return hex.EncodeToString(buf[:])
}
