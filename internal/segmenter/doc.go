// Package segmenter splits raw document text into ordered, offset-tracked
// segments sized near a token budget, with controlled sentence overlap
// between consecutive segments inside a paragraph.
//
// The sentence and paragraph splitters are small pure functions so the
// conservative boundary rules can be tested in isolation from segment
// assembly. The verifier reuses SplitSentences so both ends of the
// pipeline agree on what a sentence is.
package segmenter
