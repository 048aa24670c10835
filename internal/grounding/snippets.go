package grounding

import (
	"regexp"
	"strings"
)

// Matching thresholds. Characters are counted after normalisation where
// noted; the bounds keep trivial matches ("the", "a party") from counting
// as support while tolerating minor rewording of long quotes.
const (
	// minQuotedLen and maxQuotedLen bound what counts as a quoted span.
	minQuotedLen = 5
	maxQuotedLen = 500

	// minNormalisedMatch is the minimum normalised span length for a
	// whole-span normalised match.
	minNormalisedMatch = 30

	// prefixLen is how much of a normalised span the prefix tier uses.
	prefixLen = 40

	// minPrefixLen rejects prefixes too short to be meaningful.
	minPrefixLen = 12

	// segmentLeadLen is how much of a segment's normalised text the
	// fallback tier looks for inside the normalised answer.
	segmentLeadLen = 120
)

// quotedPatterns match spans delimited by straight double, curly double,
// and straight single quotes.
var quotedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"([^"]{5,500})"`),
	regexp.MustCompile(`“([^“”]{5,500})”`),
	regexp.MustCompile(`'([^']{5,500})'`),
}

// QuotedSpans returns the quoted spans in text, in pattern then document
// order, with the quote characters stripped.
func QuotedSpans(text string) []string {
	var spans []string
	for _, p := range quotedPatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			spans = append(spans, m[1])
		}
	}
	return spans
}

// Normalise lowercases text and collapses all whitespace runs to single
// spaces.
func Normalise(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// SupportsSegment reports whether the answer textually supports the cited
// segment. Tiers, in priority order:
//
//  1. a quoted span is an exact substring of the segment text
//  2. a normalised span of at least minNormalisedMatch characters is a
//     substring of the normalised segment text
//  3. the first prefixLen normalised characters of a span (at least
//     minPrefixLen) appear in the normalised segment text
//  4. fallback when no span matched: the segment's normalised lead
//     appears inside the normalised answer
func SupportsSegment(answer string, spans []string, segmentText string) bool {
	normSeg := Normalise(segmentText)

	for _, span := range spans {
		if strings.Contains(segmentText, span) {
			return true
		}
		norm := Normalise(span)
		if len(norm) >= minNormalisedMatch && strings.Contains(normSeg, norm) {
			return true
		}
		prefix := truncateRunes(norm, prefixLen)
		if len(prefix) >= minPrefixLen && strings.Contains(normSeg, prefix) {
			return true
		}
	}

	lead := truncateRunes(normSeg, segmentLeadLen)
	return lead != "" && strings.Contains(Normalise(answer), lead)
}

// truncateRunes cuts s to at most n runes without splitting a multi-byte
// character.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
