package segmenter

import (
	"strings"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
)

// StrategyName identifies this segmentation algorithm in bundle metadata.
// Bump the version suffix whenever boundary or overlap behaviour changes,
// so cached embeddings derived under the old behaviour are not reused.
const StrategyName = "sentence-window/v1"

// DefaultTargetTokens is the default per-segment token budget.
const DefaultTargetTokens = 500

// DefaultOverlapTokens is the default carry-over budget between segments.
const DefaultOverlapTokens = 50

// Draft is a segment before identity assignment: the joined sentence text
// and its character offsets into the original document.
type Draft struct {
	Text        string
	StartOffset int
	EndOffset   int
}

// Segmenter turns a document string into ordered segment drafts.
type Segmenter struct {
	targetTokens  int
	overlapTokens int
}

// Option configures the segmenter.
type Option func(*Segmenter)

// WithTargetTokens sets the per-segment token budget.
func WithTargetTokens(n int) Option {
	return func(s *Segmenter) {
		if n > 0 {
			s.targetTokens = n
		}
	}
}

// WithOverlapTokens sets the carry-over budget. Zero disables overlap.
func WithOverlapTokens(n int) Option {
	return func(s *Segmenter) {
		if n >= 0 {
			s.overlapTokens = n
		}
	}
}

// New creates a segmenter with the given options.
func New(opts ...Option) *Segmenter {
	s := &Segmenter{
		targetTokens:  DefaultTargetTokens,
		overlapTokens: DefaultOverlapTokens,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Overlap must leave room for fresh sentences in every segment
	if s.overlapTokens >= s.targetTokens {
		s.overlapTokens = s.targetTokens / 4
	}

	return s
}

// locatedSentence is a sentence pinned to its offsets in the document.
type locatedSentence struct {
	text   string
	start  int
	end    int
	tokens int
}

// Segment splits a document into ordered drafts. Empty or whitespace-only
// documents produce an empty sequence, not an error: callers decide whether
// that is fatal. Calling Segment twice on the same input yields identical
// output.
func (s *Segmenter) Segment(document string) []Draft {
	if strings.TrimSpace(document) == "" {
		return nil
	}

	var drafts []Draft
	cursor := 0
	for _, para := range SplitParagraphs(document) {
		sentences := SplitSentences(para)
		located := make([]locatedSentence, 0, len(sentences))
		for _, sent := range sentences {
			var ls locatedSentence
			ls, cursor = locate(document, sent, cursor)
			located = append(located, ls)
		}
		// Overlap never crosses a paragraph boundary: each paragraph is
		// assembled independently and force-closes its open segment.
		drafts = append(drafts, s.assemble(located)...)
	}

	return s.mergeSmallTails(drafts)
}

// locate finds sentence text in the document, searching no earlier than
// cursor so repeated identical sentences resolve in document order. If the
// sentence cannot be found the best-known cursor position is used rather
// than failing the whole operation.
func locate(document, sentence string, cursor int) (locatedSentence, int) {
	start := cursor
	if idx := strings.Index(document[cursor:], sentence); idx >= 0 {
		start = cursor + idx
	}
	end := start + len(sentence)
	if end > len(document) {
		end = len(document)
	}
	next := cursor
	if end > next {
		next = end
	}
	return locatedSentence{
		text:   sentence,
		start:  start,
		end:    end,
		tokens: domain.EstimateTokens(sentence),
	}, next
}

// assemble greedily accumulates sentences into segments, closing when the
// running token total reaches the target and seeding the next segment with
// an overlap suffix of the just-closed one.
func (s *Segmenter) assemble(sentences []locatedSentence) []Draft {
	var drafts []Draft
	var window []locatedSentence
	carried := 0 // sentences in window carried over from the last close
	total := 0

	for _, ls := range sentences {
		window = append(window, ls)
		total += ls.tokens
		if total < s.targetTokens {
			continue
		}
		drafts = append(drafts, buildDraft(window))
		if s.overlapTokens > 0 {
			window = overlapSuffix(window, s.overlapTokens)
			carried = len(window)
			total = 0
			for _, w := range window {
				total += w.tokens
			}
		} else {
			window = nil
			carried = 0
			total = 0
		}
	}

	// Force-close at paragraph end, but only if the window holds anything
	// beyond the carried overlap: a carry-only window is already covered
	// by the previous segment.
	if len(window) > carried {
		drafts = append(drafts, buildDraft(window))
	}
	return drafts
}

// overlapSuffix selects the suffix of window whose cumulative tokens come
// closest to budget without exceeding it. The last sentence is always kept,
// even when it alone exceeds the budget; a segment smaller than the budget
// is carried forward whole.
func overlapSuffix(window []locatedSentence, budget int) []locatedSentence {
	i := len(window) - 1
	total := window[i].tokens
	for i > 0 {
		if total+window[i-1].tokens > budget {
			break
		}
		total += window[i-1].tokens
		i--
	}
	return append([]locatedSentence(nil), window[i:]...)
}

func buildDraft(window []locatedSentence) Draft {
	texts := make([]string, len(window))
	for i, w := range window {
		texts[i] = w.text
	}
	return Draft{
		Text:        strings.Join(texts, " "),
		StartOffset: window[0].start,
		EndOffset:   window[len(window)-1].end,
	}
}

// mergeSmallTails folds any segment estimated below max(50, target/5)
// tokens into its predecessor, removing degenerate trailing fragments.
// A lone initial segment stands alone.
func (s *Segmenter) mergeSmallTails(drafts []Draft) []Draft {
	minTokens := s.targetTokens / 5
	if minTokens < 50 {
		minTokens = 50
	}

	var out []Draft
	for _, d := range drafts {
		if len(out) > 0 && domain.EstimateTokens(d.Text) < minTokens {
			prev := &out[len(out)-1]
			prev.Text = prev.Text + " " + d.Text
			if d.EndOffset > prev.EndOffset {
				prev.EndOffset = d.EndOffset
			}
			continue
		}
		out = append(out, d)
	}
	return out
}
