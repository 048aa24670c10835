// Package sqlite provides SQLite-backed implementations of the storage
// ports. Bundles, their segments and the embedding cache live in one
// database file so a bundle and its vectors move together.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/plainterms/plainterms-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/plainterms/plainterms-cli/internal/core/domain"
	"github.com/plainterms/plainterms-cli/internal/core/ports/driven"
)

// Store is a SQLite-backed storage that provides the bundle store and
// embedding cache interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.plainterms/data/bundles.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".plainterms", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "bundles.db")

	// WAL mode for better concurrency between ingest and ask.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// BundleStore returns a BundleStore interface backed by this store.
func (s *Store) BundleStore() driven.BundleStore {
	return &bundleStore{store: s}
}

// EmbeddingCache returns an EmbeddingCache interface backed by this store.
func (s *Store) EmbeddingCache() driven.EmbeddingCache {
	return &embeddingCache{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_init.up.sql" -> 1).
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Bundle Store ====================

// bundleStore implements driven.BundleStore.
type bundleStore struct {
	store *Store
}

var _ driven.BundleStore = (*bundleStore)(nil)

// Save stores or replaces a bundle and its segments atomically.
func (s *bundleStore) Save(ctx context.Context, bundle *domain.Bundle) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bundles (id, source_checksum, chunk_strategy, embedding_model, target_tokens, overlap_tokens, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_checksum = excluded.source_checksum,
			chunk_strategy = excluded.chunk_strategy,
			embedding_model = excluded.embedding_model,
			target_tokens = excluded.target_tokens,
			overlap_tokens = excluded.overlap_tokens,
			created_at = excluded.created_at
	`, bundle.ID, bundle.SourceChecksum,
		bundle.IndexMetadata.ChunkStrategy, bundle.IndexMetadata.EmbeddingModel,
		bundle.IndexMetadata.TargetTokens, bundle.IndexMetadata.OverlapTokens,
		bundle.IndexMetadata.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving bundle: %w", err)
	}

	// Replace the segment set wholesale; segments have no identity
	// outside their bundle.
	if _, err := tx.ExecContext(ctx, "DELETE FROM segments WHERE bundle_id = ?", bundle.ID); err != nil {
		return fmt.Errorf("clearing segments: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO segments (id, bundle_id, ordinal, text, start_offset, end_offset, approx_tokens, embedding, fingerprint)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing segment insert: %w", err)
	}
	defer stmt.Close()

	for i, seg := range bundle.Segments {
		embeddingBlob := float32SliceToBytes(seg.Embedding)
		if _, err := stmt.ExecContext(ctx, seg.ID, bundle.ID, i, seg.Text,
			seg.StartOffset, seg.EndOffset, seg.ApproxTokens, embeddingBlob, seg.Fingerprint); err != nil {
			return fmt.Errorf("saving segment %s: %w", seg.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing bundle: %w", err)
	}
	return nil
}

// Get retrieves a bundle and its segments by ID.
func (s *bundleStore) Get(ctx context.Context, id string) (*domain.Bundle, error) {
	bundle := &domain.Bundle{ID: id}
	row := s.store.db.QueryRowContext(ctx, `
		SELECT source_checksum, chunk_strategy, embedding_model, target_tokens, overlap_tokens, created_at
		FROM bundles WHERE id = ?
	`, id)
	err := row.Scan(&bundle.SourceChecksum,
		&bundle.IndexMetadata.ChunkStrategy, &bundle.IndexMetadata.EmbeddingModel,
		&bundle.IndexMetadata.TargetTokens, &bundle.IndexMetadata.OverlapTokens,
		&bundle.IndexMetadata.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning bundle: %w", err)
	}

	segments, err := s.loadSegments(ctx, id)
	if err != nil {
		return nil, err
	}
	bundle.Segments = segments
	return bundle, nil
}

// List returns all bundles ordered by creation time, then ID.
func (s *bundleStore) List(ctx context.Context) ([]domain.Bundle, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, source_checksum, chunk_strategy, embedding_model, target_tokens, overlap_tokens, created_at
		FROM bundles ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying bundles: %w", err)
	}
	defer rows.Close()

	var bundles []domain.Bundle
	for rows.Next() {
		var b domain.Bundle
		if err := rows.Scan(&b.ID, &b.SourceChecksum,
			&b.IndexMetadata.ChunkStrategy, &b.IndexMetadata.EmbeddingModel,
			&b.IndexMetadata.TargetTokens, &b.IndexMetadata.OverlapTokens,
			&b.IndexMetadata.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning bundle: %w", err)
		}
		bundles = append(bundles, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bundles: %w", err)
	}

	for i := range bundles {
		segments, err := s.loadSegments(ctx, bundles[i].ID)
		if err != nil {
			return nil, err
		}
		bundles[i].Segments = segments
	}
	return bundles, nil
}

// Delete removes a bundle; its segments go with it via the foreign key.
func (s *bundleStore) Delete(ctx context.Context, id string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM bundles WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting bundle: %w", err)
	}
	return nil
}

// loadSegments reads a bundle's segments in document order.
func (s *bundleStore) loadSegments(ctx context.Context, bundleID string) ([]domain.Segment, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, text, start_offset, end_offset, approx_tokens, embedding, fingerprint
		FROM segments WHERE bundle_id = ? ORDER BY ordinal
	`, bundleID)
	if err != nil {
		return nil, fmt.Errorf("querying segments: %w", err)
	}
	defer rows.Close()

	var segments []domain.Segment
	for rows.Next() {
		var seg domain.Segment
		var embeddingBlob []byte
		if err := rows.Scan(&seg.ID, &seg.Text, &seg.StartOffset, &seg.EndOffset,
			&seg.ApproxTokens, &embeddingBlob, &seg.Fingerprint); err != nil {
			return nil, fmt.Errorf("scanning segment: %w", err)
		}
		seg.Embedding = bytesToFloat32Slice(embeddingBlob)
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating segments: %w", err)
	}
	return segments, nil
}

// ==================== Embedding Cache ====================

// embeddingCache implements driven.EmbeddingCache.
type embeddingCache struct {
	store *Store
}

var _ driven.EmbeddingCache = (*embeddingCache)(nil)

// Get returns the cached vector and fingerprint for a segment.
// A nil vector with nil error means a cache miss.
func (c *embeddingCache) Get(ctx context.Context, bundleID, segmentID string) ([]float32, string, error) {
	var blob []byte
	var fingerprint string
	row := c.store.db.QueryRowContext(ctx, `
		SELECT vector, fingerprint FROM embedding_cache
		WHERE bundle_id = ? AND segment_id = ?
	`, bundleID, segmentID)
	err := row.Scan(&blob, &fingerprint)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("scanning cache entry: %w", err)
	}
	return bytesToFloat32Slice(blob), fingerprint, nil
}

// Put stores a vector and fingerprint for a segment.
func (c *embeddingCache) Put(ctx context.Context, bundleID, segmentID string, vector []float32, fingerprint string) error {
	_, err := c.store.db.ExecContext(ctx, `
		INSERT INTO embedding_cache (bundle_id, segment_id, vector, fingerprint)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(bundle_id, segment_id) DO UPDATE SET
			vector = excluded.vector,
			fingerprint = excluded.fingerprint
	`, bundleID, segmentID, float32SliceToBytes(vector), fingerprint)
	if err != nil {
		return fmt.Errorf("caching embedding: %w", err)
	}
	return nil
}

// DeleteBundle drops every cached entry for a bundle.
func (c *embeddingCache) DeleteBundle(ctx context.Context, bundleID string) error {
	if _, err := c.store.db.ExecContext(ctx, "DELETE FROM embedding_cache WHERE bundle_id = ?", bundleID); err != nil {
		return fmt.Errorf("clearing embedding cache: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a little-endian byte slice
// for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
