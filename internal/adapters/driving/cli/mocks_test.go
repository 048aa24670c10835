package cli

import (
	"context"
	"time"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
	"github.com/plainterms/plainterms-cli/internal/core/ports/driving"
)

// mockBundleService is a mock implementation of driving.BundleService.
type mockBundleService struct {
	bundle  *domain.Bundle
	bundles []domain.Bundle
	err     error
	deleted []string
}

func (m *mockBundleService) Ingest(_ context.Context, _ string) (*domain.Bundle, error) {
	return m.bundle, m.err
}

func (m *mockBundleService) Get(_ context.Context, _ string) (*domain.Bundle, error) {
	return m.bundle, m.err
}

func (m *mockBundleService) List(_ context.Context) ([]domain.Bundle, error) {
	return m.bundles, m.err
}

func (m *mockBundleService) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	scored []domain.ScoredSegment
	err    error
}

func (m *mockRetrievalService) EnsureEmbeddings(_ context.Context, _ *domain.Bundle) error {
	return m.err
}

func (m *mockRetrievalService) TopK(_ context.Context, _ *domain.Bundle, _ string, k int) ([]domain.ScoredSegment, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.scored) > k {
		return m.scored[:k], nil
	}
	return m.scored, nil
}

// mockVerificationService is a mock implementation of driving.VerificationService.
type mockVerificationService struct {
	report *domain.VerificationReport
}

func (m *mockVerificationService) ExtractCitations(_ string) []string {
	return m.report.CitedChunkIDs
}

func (m *mockVerificationService) Verify(_ *domain.Bundle, _ string) *domain.VerificationReport {
	return m.report
}

func (m *mockVerificationService) VerifyAgainstRetrieved(_ *domain.Bundle, _ string, _ []string) *domain.VerificationReport {
	cites := true
	report := *m.report
	report.CitesRetrieved = &cites
	return &report
}

// mockAskService is a mock implementation of driving.AskService.
type mockAskService struct {
	result *driving.AskResult
	err    error
}

func (m *mockAskService) Ask(_ context.Context, _, _ string, _ driving.AskOptions) (*driving.AskResult, error) {
	return m.result, m.err
}

func cliTestBundle() *domain.Bundle {
	return &domain.Bundle{
		ID:             "bundle-cli000000001",
		SourceChecksum: "abcdef1234567890",
		Segments: []domain.Segment{
			{ID: "bundle-cli000000001-chunk-001", Text: "The term is two years.", EndOffset: 22},
			{ID: "bundle-cli000000001-chunk-002", Text: "Renewal requires written notice.", StartOffset: 23, EndOffset: 55},
		},
		IndexMetadata: domain.IndexMetadata{
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

// setupTestServices installs mock services and returns a cleanup that
// restores the previous wiring.
func setupTestServices() func() {
	oldBundle := bundleService
	oldRetrieval := retrievalService
	oldVerification := verificationService
	oldAsk := askService

	bundle := cliTestBundle()
	bundleService = &mockBundleService{
		bundle:  bundle,
		bundles: []domain.Bundle{*bundle},
	}
	retrievalService = &mockRetrievalService{
		scored: []domain.ScoredSegment{
			{Segment: bundle.Segments[0], Score: 0.91},
			{Segment: bundle.Segments[1], Score: 0.42},
		},
	}
	verificationService = &mockVerificationService{
		report: &domain.VerificationReport{
			OK:            true,
			CitedChunkIDs: []string{"bundle-cli000000001-chunk-001"},
			NumSegments:   2,
			NumCited:      1,
			Coverage:      0.5,
		},
	}
	askService = &mockAskService{
		result: &driving.AskResult{
			Answer: "The term is two years. [bundle-cli000000001-chunk-001]",
			Report: &domain.VerificationReport{OK: true, NumSegments: 2, NumCited: 1, Coverage: 0.5},
			Retrieved: []domain.ScoredSegment{
				{Segment: bundle.Segments[0], Score: 0.91},
			},
		},
	}

	return func() {
		bundleService = oldBundle
		retrievalService = oldRetrieval
		verificationService = oldVerification
		askService = oldAsk
	}
}
