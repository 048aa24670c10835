package domain

// VerificationReport is the outcome of grounding verification for one
// generated answer. It is transient output: producing a report never
// mutates the bundle, and a report with OK=false is advisory, not a
// rejection of the answer.
type VerificationReport struct {
	// OK is false if any unknown citation exists, any known citation lacks
	// a supporting match, any potential hallucination was flagged, or (when
	// checked against retrieved segments) the answer ignores the retrieved
	// context entirely.
	OK bool `json:"ok"`

	// CitedChunkIDs are the distinct segment identifiers found in the
	// answer, in first-seen order.
	CitedChunkIDs []string `json:"cited_chunk_ids"`

	// UnknownChunkIDs are cited identifiers that do not exist in the
	// bundle. A stronger fabrication signal than a missing citation.
	UnknownChunkIDs []string `json:"unknown_chunk_ids"`

	// MissingSnippetMatches are known cited identifiers for which no
	// textual support was found in the answer.
	MissingSnippetMatches []string `json:"missing_snippet_matches"`

	// PotentialHallucinations are citation-free sentences asserting
	// legal-sounding claims.
	PotentialHallucinations []HallucinationFlag `json:"potential_hallucinations"`

	// NumSegments is the number of segments in the bundle.
	NumSegments int `json:"num_segments"`

	// NumCited is the number of distinct cited identifiers.
	NumCited int `json:"num_cited"`

	// Coverage is min(1, NumCited / max(1, NumSegments)).
	Coverage float64 `json:"coverage"`

	// CitesRetrieved is set only by verification against retrieved
	// segments: whether the answer's citations (or its quoted text)
	// intersect the retrieved set.
	CitesRetrieved *bool `json:"cites_retrieved,omitempty"`
}

// HallucinationFlag records one sentence flagged as a potential
// hallucination and the legal-domain term that triggered the flag.
type HallucinationFlag struct {
	// Sentence is the flagged sentence.
	Sentence string `json:"sentence"`

	// Term is the trigger term that matched, lowercased.
	Term string `json:"term"`
}
