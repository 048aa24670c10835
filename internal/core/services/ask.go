package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
	"github.com/plainterms/plainterms-cli/internal/core/ports/driven"
	"github.com/plainterms/plainterms-cli/internal/core/ports/driving"
	"github.com/plainterms/plainterms-cli/internal/logger"
	"github.com/plainterms/plainterms-cli/internal/retry"
)

// Ensure AskService implements the interface.
var _ driving.AskService = (*AskService)(nil)

// Defaults for one ask round.
const (
	DefaultTopK            = 5
	DefaultMaxOutputTokens = 1024
)

// AskService orchestrates retrieve -> generate -> verify for one bundle.
// The verifier only ever consumes the generated string; generation itself
// stays behind the LLMService boundary.
type AskService struct {
	store        driven.BundleStore
	llm          driven.LLMService
	retrieval    driving.RetrievalService
	verification driving.VerificationService
	policy       retry.Policy
}

// NewAskService creates an ask service. The LLM is required; store may be
// nil when callers pass bundles that live only in memory.
func NewAskService(
	store driven.BundleStore,
	llm driven.LLMService,
	retrieval driving.RetrievalService,
	verification driving.VerificationService,
) *AskService {
	return &AskService{
		store:        store,
		llm:          llm,
		retrieval:    retrieval,
		verification: verification,
		policy:       retry.DefaultPolicy(),
	}
}

// Ask answers a question about the bundle using retrieved segments as
// context, then verifies the answer against them. The report is advisory:
// an answer that fails verification is returned alongside its report, not
// discarded.
func (s *AskService) Ask(ctx context.Context, bundleID, question string, opts driving.AskOptions) (*driving.AskResult, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	if !opts.Simplify && strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = DefaultMaxOutputTokens
	}

	bundle, err := s.store.Get(ctx, bundleID)
	if err != nil {
		return nil, fmt.Errorf("loading bundle %s: %w", bundleID, err)
	}

	query := question
	if opts.Simplify && strings.TrimSpace(query) == "" {
		// Rank by the document's own opening so simplification still
		// picks the most central segments.
		if len(bundle.Segments) > 0 {
			query = bundle.Segments[0].Text
		}
	}

	retrieved, err := s.retrieval.TopK(ctx, bundle, query, opts.TopK)
	if err != nil {
		return nil, fmt.Errorf("retrieving segments: %w", err)
	}

	system := answerSystemPrompt
	if opts.Simplify {
		system = simplifySystemPrompt
	}
	user := buildUserPrompt(retrieved, question, opts.Simplify)

	logger.Section("Generation")
	var answer string
	err = s.policy.Do(ctx, func(ctx context.Context) error {
		var genErr error
		answer, genErr = s.llm.Generate(ctx, system, user, opts.MaxOutputTokens)
		return genErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: generation failed: %v", domain.ErrCapabilityUnavailable, err)
	}

	retrievedIDs := make([]string, len(retrieved))
	for i := range retrieved {
		retrievedIDs[i] = retrieved[i].Segment.ID
	}
	report := s.verification.VerifyAgainstRetrieved(bundle, answer, retrievedIDs)

	// Persist lazily computed embeddings; losing them only costs a
	// recompute, so failure is not fatal to the answer.
	if err := s.store.Save(ctx, bundle); err != nil {
		logger.Warn("Persisting bundle %s after ask: %v", bundle.ID, err)
	}

	return &driving.AskResult{
		Answer:    answer,
		Report:    report,
		Retrieved: retrieved,
	}, nil
}
