package domain

import (
	"fmt"
	"strings"
	"time"
)

// Bundle is the unit of provenance for one ingested document.
// Segments are appended during ingestion in document order and never
// reordered; after construction the only permitted mutation is attaching
// an embedding to a segment.
type Bundle struct {
	// ID is the opaque bundle identifier, stable for the bundle's lifetime.
	// It always carries the "bundle-" prefix so segment identifiers are
	// globally dereferenceable.
	ID string

	// SourceChecksum is the SHA-256 hex digest of the original document text.
	// Used to detect whether a bundle's source was tampered with or re-derived.
	SourceChecksum string

	// Segments is the ordered sequence of segments. Insertion order equals
	// document order; order is semantically meaningful for overlap windows
	// and next-segment lookups.
	Segments []Segment

	// IndexMetadata records which chunking strategy and embedding model
	// produced the segments, so stale caches are never silently reused
	// across strategy changes.
	IndexMetadata IndexMetadata
}

// IndexMetadata describes how a bundle's segments and embeddings were derived.
type IndexMetadata struct {
	// ChunkStrategy names the segmentation algorithm version.
	ChunkStrategy string

	// EmbeddingModel is the model that produced the cached embeddings.
	// Empty until embeddings have been computed at least once.
	EmbeddingModel string

	// TargetTokens is the segment token budget used at ingestion.
	TargetTokens int

	// OverlapTokens is the overlap budget used at ingestion.
	OverlapTokens int

	// CreatedAt is when the bundle was ingested.
	CreatedAt time.Time
}

// Segment is one retrievable, citable unit of text. Every segment belongs
// to exactly one bundle; identical source text re-ingested produces new,
// distinct segment identities.
type Segment struct {
	// ID is deterministic: "<bundle_id>-chunk-NNN" with a 1-based,
	// zero-padded ordinal for stable sorting.
	ID string

	// Text is an exact substring of the source document, modulo single
	// spaces introduced when sentences are joined during assembly.
	Text string

	// StartOffset and EndOffset are character offsets into the original
	// document: 0 <= StartOffset <= EndOffset <= len(document).
	StartOffset int
	EndOffset   int

	// ApproxTokens is a cheap estimate (len/4 rounded up, minimum 1) used
	// only for sizing decisions.
	ApproxTokens int

	// Embedding is nil until the retriever computes it. Mutation ownership
	// belongs solely to the retriever.
	Embedding []float32

	// Fingerprint is a short hash of Text, attached alongside the embedding
	// as a cache-invalidation aid. Not used for correctness.
	Fingerprint string
}

// ScoredSegment pairs a segment with a retrieval score. Transient, never
// persisted.
type ScoredSegment struct {
	// Segment is the matched segment.
	Segment Segment

	// Score is the cosine similarity in [-1, 1], exactly 0 when either
	// vector has zero magnitude or the segment has no embedding.
	Score float64
}

// segmentIDFormat pads ordinals to three digits; bundles with more than 999
// segments keep sorting correctly because fmt widens the field.
const segmentIDFormat = "%s-chunk-%03d"

// SegmentID derives the deterministic identifier for the segment at the
// given 1-based ordinal within a bundle.
func SegmentID(bundleID string, ordinal int) string {
	return fmt.Sprintf(segmentIDFormat, bundleID, ordinal)
}

// EstimateTokens returns the approximate token count for text:
// characters divided by four, rounded up, with a floor of one.
func EstimateTokens(text string) int {
	n := (len(text) + 3) / 4
	if n < 1 {
		n = 1
	}
	return n
}

// FindSegment returns the segment with the given ID, or nil if the bundle
// does not contain it.
func (b *Bundle) FindSegment(id string) *Segment {
	for i := range b.Segments {
		if b.Segments[i].ID == id {
			return &b.Segments[i]
		}
	}
	return nil
}

// HasSegment reports whether the bundle contains a segment with the given ID.
func (b *Bundle) HasSegment(id string) bool {
	return b.FindSegment(id) != nil
}

// OwnsSegmentID reports whether a segment identifier is scoped to this
// bundle, regardless of whether the segment exists.
func (b *Bundle) OwnsSegmentID(id string) bool {
	return strings.HasPrefix(id, b.ID+"-chunk-")
}

// Validate checks structural invariants: non-empty ID, unique segment IDs
// scoped to the bundle, and ordered offsets.
func (b *Bundle) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("%w: bundle ID is empty", ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(b.Segments))
	for i := range b.Segments {
		seg := &b.Segments[i]
		if !b.OwnsSegmentID(seg.ID) {
			return fmt.Errorf("%w: segment %q not scoped to bundle %q", ErrInvalidInput, seg.ID, b.ID)
		}
		if _, dup := seen[seg.ID]; dup {
			return fmt.Errorf("%w: duplicate segment ID %q", ErrInvalidInput, seg.ID)
		}
		seen[seg.ID] = struct{}{}
		if seg.StartOffset < 0 || seg.EndOffset < seg.StartOffset {
			return fmt.Errorf("%w: segment %q has invalid offsets [%d, %d)", ErrInvalidInput, seg.ID, seg.StartOffset, seg.EndOffset)
		}
	}
	return nil
}
