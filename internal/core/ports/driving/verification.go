package driving

import (
	"github.com/plainterms/plainterms-cli/internal/core/domain"
)

// VerificationService checks that a generated answer is grounded in a
// bundle's segments. Heuristic negatives are report fields, never errors.
type VerificationService interface {
	// ExtractCitations returns the distinct segment identifiers in text,
	// in first-seen order.
	ExtractCitations(text string) []string

	// Verify checks citations and claim sentences of an answer against
	// the bundle.
	Verify(bundle *domain.Bundle, answer string) *domain.VerificationReport

	// VerifyAgainstRetrieved extends Verify: the answer must also cite or
	// textually overlap the retrieved segments, otherwise it is never
	// considered grounded.
	VerifyAgainstRetrieved(bundle *domain.Bundle, answer string, retrievedIDs []string) *domain.VerificationReport
}
