package grounding

import "regexp"

// citationPattern matches the segment-identifier grammar:
// bundle-<opaque>-chunk-<digits>. The opaque part is alphanumeric so the
// pattern cannot run past the chunk marker.
var citationPattern = regexp.MustCompile(`bundle-[A-Za-z0-9]+-chunk-[0-9]+`)

// ExtractCitations returns the distinct segment identifiers found in text,
// in first-seen order. Duplicate occurrences are returned once.
func ExtractCitations(text string) []string {
	matches := citationPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	var ids []string
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		ids = append(ids, m)
	}
	return ids
}

// HasCitation reports whether text contains at least one segment identifier.
func HasCitation(text string) bool {
	return citationPattern.MatchString(text)
}
