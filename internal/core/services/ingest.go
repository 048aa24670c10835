package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
	"github.com/plainterms/plainterms-cli/internal/core/ports/driven"
	"github.com/plainterms/plainterms-cli/internal/core/ports/driving"
	"github.com/plainterms/plainterms-cli/internal/logger"
	"github.com/plainterms/plainterms-cli/internal/segmenter"
)

// Ensure IngestService implements the interface.
var _ driving.BundleService = (*IngestService)(nil)

// IngestService turns raw documents into persisted bundles.
type IngestService struct {
	store    driven.BundleStore
	cache    driven.EmbeddingCache
	chunking domain.ChunkingSettings
}

// NewIngestService creates an ingest service. The cache is optional and
// only used to drop stale entries when a bundle is deleted.
func NewIngestService(store driven.BundleStore, cache driven.EmbeddingCache, chunking domain.ChunkingSettings) *IngestService {
	if chunking.TargetTokens <= 0 {
		chunking.TargetTokens = segmenter.DefaultTargetTokens
	}
	if chunking.OverlapTokens < 0 {
		chunking.OverlapTokens = segmenter.DefaultOverlapTokens
	}
	return &IngestService{
		store:    store,
		cache:    cache,
		chunking: chunking,
	}
}

// Ingest segments a document into a new bundle and persists it. Each
// ingestion produces a fresh bundle identity, even for identical source
// text: distinct bundles must have independent citation provenance.
func (s *IngestService) Ingest(ctx context.Context, document string) (*domain.Bundle, error) {
	if strings.TrimSpace(document) == "" {
		return nil, fmt.Errorf("%w: document is empty or whitespace-only", domain.ErrInvalidInput)
	}

	logger.Section("Ingest")

	seg := segmenter.New(
		segmenter.WithTargetTokens(s.chunking.TargetTokens),
		segmenter.WithOverlapTokens(s.chunking.OverlapTokens),
	)
	drafts := seg.Segment(document)

	bundleID := NewBundleID()
	bundle := &domain.Bundle{
		ID:             bundleID,
		SourceChecksum: Checksum(document),
		Segments:       make([]domain.Segment, 0, len(drafts)),
		IndexMetadata: domain.IndexMetadata{
			ChunkStrategy: segmenter.StrategyName,
			TargetTokens:  s.chunking.TargetTokens,
			OverlapTokens: s.chunking.OverlapTokens,
			CreatedAt:     time.Now().UTC(),
		},
	}

	for i, d := range drafts {
		bundle.Segments = append(bundle.Segments, domain.Segment{
			ID:           domain.SegmentID(bundleID, i+1),
			Text:         d.Text,
			StartOffset:  d.StartOffset,
			EndOffset:    d.EndOffset,
			ApproxTokens: domain.EstimateTokens(d.Text),
		})
	}

	logger.Debug("Bundle %s: %d segments from %d characters", bundleID, len(bundle.Segments), len(document))

	if s.store != nil {
		if err := s.store.Save(ctx, bundle); err != nil {
			return nil, fmt.Errorf("saving bundle: %w", err)
		}
	}
	return bundle, nil
}

// Get retrieves a bundle by ID.
func (s *IngestService) Get(ctx context.Context, id string) (*domain.Bundle, error) {
	if s.store == nil {
		return nil, domain.ErrNotFound
	}
	return s.store.Get(ctx, id)
}

// List returns all bundles.
func (s *IngestService) List(ctx context.Context) ([]domain.Bundle, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.List(ctx)
}

// Delete removes a bundle and its cached embeddings.
func (s *IngestService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrNotFound
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.DeleteBundle(ctx, id); err != nil {
			logger.Warn("Dropping embedding cache for %s: %v", id, err)
		}
	}
	return nil
}

// NewBundleID returns a fresh opaque bundle identifier. The alphanumeric
// body keeps derived segment identifiers inside the citation grammar.
func NewBundleID() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "bundle-" + raw[:12]
}

// Checksum returns the SHA-256 hex digest of the document text.
func Checksum(document string) string {
	sum := sha256.Sum256([]byte(document))
	return hex.EncodeToString(sum[:])
}
