package driving

import (
	"context"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
)

// AskOptions configures one question/answer round.
type AskOptions struct {
	// TopK is how many segments to retrieve as context (default 5).
	TopK int

	// Simplify requests a plain-language rewrite of the retrieved
	// segments instead of a question answer.
	Simplify bool

	// MaxOutputTokens bounds the generated answer (default 1024).
	MaxOutputTokens int
}

// AskResult is one answered question with its grounding evidence.
type AskResult struct {
	// Answer is the generated text.
	Answer string

	// Report is the verification outcome against the retrieved segments.
	// Advisory: an ungrounded answer is surfaced, never discarded.
	Report *domain.VerificationReport

	// Retrieved are the segments used as context, score descending.
	Retrieved []domain.ScoredSegment
}

// AskService orchestrates retrieve -> generate -> verify for one bundle.
type AskService interface {
	// Ask answers a question about the bundle using retrieved segments as
	// context, then verifies the answer against them.
	Ask(ctx context.Context, bundleID, question string, opts AskOptions) (*AskResult, error)
}
