package segmenter

import (
	"regexp"
	"strings"
	"unicode"
)

// paragraphBreak matches one blank line, with optional trailing whitespace
// on the first line.
var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n`)

// SplitParagraphs splits text on blank-line boundaries, preserving order.
// Whitespace-only paragraphs are dropped.
func SplitParagraphs(text string) []string {
	parts := paragraphBreak.Split(text, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// SplitSentences splits a paragraph into sentences using a conservative
// rule: a boundary exists after '.', '!' or '?' immediately followed by
// whitespace and then an uppercase letter, digit, quote character, or end
// of text. Ambiguous cases merge into one sentence rather than fracturing
// cross-references. Returned sentences are trimmed of surrounding
// whitespace and remain exact substrings of the input.
func SplitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0

	appendSentence := func(from, to int) {
		s := strings.TrimSpace(string(runes[from:to]))
		if s != "" {
			sentences = append(sentences, s)
		}
	}

	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		j := i + 1
		if j >= len(runes) {
			break
		}
		if !unicode.IsSpace(runes[j]) {
			continue
		}
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j >= len(runes) || startsSentence(runes[j]) {
			appendSentence(start, i+1)
			start = j
			i = j - 1
		}
	}
	if start < len(runes) {
		appendSentence(start, len(runes))
	}
	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func startsSentence(r rune) bool {
	if unicode.IsUpper(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '"', '\'', '“', '”', '‘', '’':
		return true
	}
	return false
}
