package services

import (
	"github.com/plainterms/plainterms-cli/internal/core/domain"
	"github.com/plainterms/plainterms-cli/internal/core/ports/driving"
	"github.com/plainterms/plainterms-cli/internal/grounding"
	"github.com/plainterms/plainterms-cli/internal/logger"
	"github.com/plainterms/plainterms-cli/internal/segmenter"
)

// Ensure VerificationService implements the interface.
var _ driving.VerificationService = (*VerificationService)(nil)

// VerificationService detects unsupported claims in generated answers.
// Pure computation over bundle and answer text: it never mutates the
// bundle and never calls the generation capability.
type VerificationService struct{}

// NewVerificationService creates a verification service.
func NewVerificationService() *VerificationService {
	return &VerificationService{}
}

// ExtractCitations returns the distinct segment identifiers in text, in
// first-seen order.
func (s *VerificationService) ExtractCitations(text string) []string {
	return grounding.ExtractCitations(text)
}

// Verify checks an answer's citations and claim sentences against the
// bundle. Negatives are report fields, never errors: a report with
// OK=false is advisory, not a rejection of the answer.
func (s *VerificationService) Verify(bundle *domain.Bundle, answer string) *domain.VerificationReport {
	logger.Section("Verification")

	cited := grounding.ExtractCitations(answer)
	spans := grounding.QuotedSpans(answer)

	var unknown, missing []string
	for _, id := range cited {
		seg := bundle.FindSegment(id)
		if seg == nil {
			// References a segment that was never part of this document:
			// a stronger fabrication signal than a missing citation.
			unknown = append(unknown, id)
			continue
		}
		if !grounding.SupportsSegment(answer, spans, seg.Text) {
			missing = append(missing, id)
		}
	}

	var flags []domain.HallucinationFlag
	for _, sentence := range segmenter.SplitSentences(answer) {
		if grounding.HasCitation(sentence) {
			continue
		}
		if term, found := grounding.FindTrigger(sentence); found {
			flags = append(flags, domain.HallucinationFlag{Sentence: sentence, Term: term})
		}
	}

	numSegments := len(bundle.Segments)
	numCited := len(cited)
	denominator := numSegments
	if denominator < 1 {
		denominator = 1
	}
	coverage := float64(numCited) / float64(denominator)
	if coverage > 1 {
		coverage = 1
	}

	report := &domain.VerificationReport{
		OK:                      len(unknown) == 0 && len(missing) == 0 && len(flags) == 0,
		CitedChunkIDs:           cited,
		UnknownChunkIDs:         unknown,
		MissingSnippetMatches:   missing,
		PotentialHallucinations: flags,
		NumSegments:             numSegments,
		NumCited:                numCited,
		Coverage:                coverage,
	}

	logger.Debug("Verify: %d cited, %d unknown, %d unmatched, %d flagged",
		numCited, len(unknown), len(missing), len(flags))
	return report
}

// VerifyAgainstRetrieved extends Verify with the retrieved-grounding gate:
// an answer that ignores the retrieved context entirely is never
// considered grounded, even if the base checks pass.
func (s *VerificationService) VerifyAgainstRetrieved(bundle *domain.Bundle, answer string, retrievedIDs []string) *domain.VerificationReport {
	report := s.Verify(bundle, answer)

	retrieved := make(map[string]struct{}, len(retrievedIDs))
	for _, id := range retrievedIDs {
		retrieved[id] = struct{}{}
	}

	cites := false
	for _, id := range report.CitedChunkIDs {
		if _, ok := retrieved[id]; ok {
			cites = true
			break
		}
	}
	if !cites {
		// No explicit citation into the retrieved set: accept textual
		// overlap with a retrieved segment instead.
		spans := grounding.QuotedSpans(answer)
		for _, id := range retrievedIDs {
			seg := bundle.FindSegment(id)
			if seg != nil && grounding.SupportsSegment(answer, spans, seg.Text) {
				cites = true
				break
			}
		}
	}

	report.CitesRetrieved = &cites
	report.OK = report.OK && cites
	return report
}
