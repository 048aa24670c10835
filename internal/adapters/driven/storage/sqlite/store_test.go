package sqlite

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleBundle(id string, created time.Time) *domain.Bundle {
	return &domain.Bundle{
		ID:             id,
		SourceChecksum: "c3ab8ff137",
		Segments: []domain.Segment{
			{
				ID:           id + "-chunk-001",
				Text:         "The term is two years.",
				StartOffset:  0,
				EndOffset:    22,
				ApproxTokens: 6,
				Embedding:    []float32{0.125, -1.5, 3.0625, float32(math.Pi)},
				Fingerprint:  "ab12cd34ef56ab78",
			},
			{
				ID:           id + "-chunk-002",
				Text:         "Renewal requires notice.",
				StartOffset:  23,
				EndOffset:    47,
				ApproxTokens: 6,
			},
		},
		IndexMetadata: domain.IndexMetadata{
			ChunkStrategy:  "sentence-window/v1",
			EmbeddingModel: "nomic-embed-text",
			TargetTokens:   500,
			OverlapTokens:  50,
			CreatedAt:      created,
		},
	}
}

func TestBundleStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	bundles := store.BundleStore()
	ctx := context.Background()
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	bundle := sampleBundle("bundle-sql000000001", created)

	if err := bundles.Save(ctx, bundle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := bundles.Get(ctx, bundle.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.SourceChecksum != bundle.SourceChecksum {
		t.Error("checksum not round-tripped")
	}
	if got.IndexMetadata.ChunkStrategy != "sentence-window/v1" ||
		got.IndexMetadata.EmbeddingModel != "nomic-embed-text" ||
		got.IndexMetadata.TargetTokens != 500 ||
		got.IndexMetadata.OverlapTokens != 50 {
		t.Errorf("metadata not round-tripped: %+v", got.IndexMetadata)
	}
	if len(got.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(got.Segments))
	}

	seg := got.Segments[0]
	want := bundle.Segments[0]
	if seg.ID != want.ID || seg.Text != want.Text ||
		seg.StartOffset != want.StartOffset || seg.EndOffset != want.EndOffset ||
		seg.ApproxTokens != want.ApproxTokens || seg.Fingerprint != want.Fingerprint {
		t.Errorf("segment fields not round-tripped: %+v", seg)
	}
	if len(seg.Embedding) != len(want.Embedding) {
		t.Fatalf("embedding length %d, want %d", len(seg.Embedding), len(want.Embedding))
	}
	for i := range want.Embedding {
		// Bit-exact: the blob encoding must not lose precision.
		if seg.Embedding[i] != want.Embedding[i] {
			t.Errorf("embedding[%d] = %v, want %v", i, seg.Embedding[i], want.Embedding[i])
		}
	}
	if got.Segments[1].Embedding != nil {
		t.Error("segment without embedding came back with one")
	}
}

func TestBundleStore_SaveReplaces(t *testing.T) {
	store := newTestStore(t)
	bundles := store.BundleStore()
	ctx := context.Background()
	bundle := sampleBundle("bundle-sql000000001", time.Now().UTC())

	if err := bundles.Save(ctx, bundle); err != nil {
		t.Fatal(err)
	}

	bundle.Segments = bundle.Segments[:1]
	bundle.Segments[0].Text = "Amended text."
	if err := bundles.Save(ctx, bundle); err != nil {
		t.Fatal(err)
	}

	got, err := bundles.Get(ctx, bundle.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Segments) != 1 || got.Segments[0].Text != "Amended text." {
		t.Errorf("save did not replace the segment set: %+v", got.Segments)
	}
}

func TestBundleStore_GetMissing(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.BundleStore().Get(context.Background(), "bundle-missing00001"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBundleStore_ListOrdered(t *testing.T) {
	store := newTestStore(t)
	bundles := store.BundleStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := bundles.Save(ctx, sampleBundle("bundle-sql000000002", base.Add(time.Hour))); err != nil {
		t.Fatal(err)
	}
	if err := bundles.Save(ctx, sampleBundle("bundle-sql000000001", base)); err != nil {
		t.Fatal(err)
	}

	list, err := bundles.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 bundles, got %d", len(list))
	}
	if list[0].ID != "bundle-sql000000001" || list[1].ID != "bundle-sql000000002" {
		t.Errorf("bundles not ordered by creation time: %s, %s", list[0].ID, list[1].ID)
	}
	if len(list[0].Segments) == 0 {
		t.Error("listed bundles missing their segments")
	}
}

func TestBundleStore_DeleteCascades(t *testing.T) {
	store := newTestStore(t)
	bundles := store.BundleStore()
	ctx := context.Background()
	bundle := sampleBundle("bundle-sql000000001", time.Now().UTC())

	if err := bundles.Save(ctx, bundle); err != nil {
		t.Fatal(err)
	}
	if err := bundles.Delete(ctx, bundle.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := bundles.Get(ctx, bundle.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	var count int
	row := store.db.QueryRow("SELECT COUNT(*) FROM segments WHERE bundle_id = ?", bundle.ID)
	if err := row.Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("%d orphaned segments survived bundle deletion", count)
	}
}

func TestEmbeddingCache_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	cache := store.EmbeddingCache()
	ctx := context.Background()

	vec, fp, err := cache.Get(ctx, "bundle-a", "bundle-a-chunk-001")
	if err != nil || vec != nil || fp != "" {
		t.Fatalf("expected miss, got (%v, %q, %v)", vec, fp, err)
	}

	if err := cache.Put(ctx, "bundle-a", "bundle-a-chunk-001", []float32{1.5, -2.25}, "fp1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vec, fp, err = cache.Get(ctx, "bundle-a", "bundle-a-chunk-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fp != "fp1" || len(vec) != 2 || vec[0] != 1.5 || vec[1] != -2.25 {
		t.Errorf("unexpected entry: (%v, %q)", vec, fp)
	}

	// Overwrite on conflict.
	if err := cache.Put(ctx, "bundle-a", "bundle-a-chunk-001", []float32{9}, "fp2"); err != nil {
		t.Fatal(err)
	}
	vec, fp, err = cache.Get(ctx, "bundle-a", "bundle-a-chunk-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fp != "fp2" || len(vec) != 1 || vec[0] != 9 {
		t.Errorf("put did not overwrite: (%v, %q)", vec, fp)
	}
}

func TestEmbeddingCache_DeleteBundle(t *testing.T) {
	store := newTestStore(t)
	cache := store.EmbeddingCache()
	ctx := context.Background()

	if err := cache.Put(ctx, "bundle-a", "bundle-a-chunk-001", []float32{1}, "fp"); err != nil {
		t.Fatal(err)
	}
	if err := cache.Put(ctx, "bundle-b", "bundle-b-chunk-001", []float32{2}, "fp"); err != nil {
		t.Fatal(err)
	}

	if err := cache.DeleteBundle(ctx, "bundle-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vec, _, _ := cache.Get(ctx, "bundle-a", "bundle-a-chunk-001"); vec != nil {
		t.Error("expected miss after DeleteBundle")
	}
	if vec, _, _ := cache.Get(ctx, "bundle-b", "bundle-b-chunk-001"); vec == nil {
		t.Error("DeleteBundle removed another bundle's entries")
	}
}

func TestStore_ReopenPreservesData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	bundle := sampleBundle("bundle-sql000000001", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	store, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.BundleStore().Save(ctx, bundle); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewStore(dir)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.BundleStore().Get(ctx, bundle.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Segments) != 2 {
		t.Errorf("expected 2 segments after reopen, got %d", len(got.Segments))
	}
}
