package mcp

import (
	"context"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
	"github.com/plainterms/plainterms-cli/internal/core/ports/driving"
)

// mockBundleService is a mock implementation of driving.BundleService.
type mockBundleService struct {
	bundle  *domain.Bundle
	bundles []domain.Bundle
	err     error
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

func (m *mockBundleService) Delete(_ context.Context, _ string) error {
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
