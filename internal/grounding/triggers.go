package grounding

import (
	"regexp"
	"strings"
)

// triggerPattern matches legal-domain terms that usually carry a claim.
// A sentence asserting one of these without a citation is suspicious.
var triggerPattern = regexp.MustCompile(`(?i)\b(` +
	`terminat(?:e|es|ed|ion)` +
	`|indemnif(?:y|ies|ied|ication)` +
	`|liab(?:le|ility|ilities)` +
	`|confidential(?:ity)?` +
	`|arbitrat(?:e|ion|or)` +
	`|breach(?:es|ed)?` +
	`|damages` +
	`|warrant(?:y|ies)` +
	`|jurisdiction` +
	`|governing law` +
	`|waive[rs]?` +
	`|penalt(?:y|ies)` +
	`|injunct(?:ion|ive)` +
	`)\b`)

// FindTrigger returns the first legal-domain trigger term in the sentence,
// lowercased, and whether one was found.
func FindTrigger(sentence string) (string, bool) {
	m := triggerPattern.FindString(sentence)
	if m == "" {
		return "", false
	}
	return strings.ToLower(m), true
}
