package services

import (
	"fmt"
	"strings"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
)

// System prompts sent with every generation request. Both demand explicit
// segment citations so the verifier has something to check.
const (
	answerSystemPrompt = `You answer questions about a legal document using only the excerpts provided.
Cite the identifier of every excerpt you rely on, in square brackets, e.g. [bundle-abc-chunk-001].
Quote the exact contract language in double quotes when stating a term.
If the excerpts do not answer the question, say so instead of guessing.`

	simplifySystemPrompt = `You rewrite legal excerpts in plain language a non-lawyer can follow.
Keep every obligation, deadline and amount accurate.
Cite the identifier of each excerpt you restate, in square brackets, e.g. [bundle-abc-chunk-001].
Quote the original language in double quotes where the exact wording matters.`
)

// buildUserPrompt lays out the retrieved excerpts with their identifiers,
// followed by the task.
func buildUserPrompt(retrieved []domain.ScoredSegment, question string, simplify bool) string {
	var b strings.Builder
	b.WriteString("Excerpts:\n\n")
	for _, r := range retrieved {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", r.Segment.ID, r.Segment.Text)
	}
	if simplify {
		b.WriteString("Task: rewrite the excerpts above in plain language.")
		if strings.TrimSpace(question) != "" {
			fmt.Fprintf(&b, " Focus on: %s", question)
		}
	} else {
		fmt.Fprintf(&b, "Question: %s", question)
	}
	return b.String()
}
