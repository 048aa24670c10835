// Package grounding contains the pure text heuristics behind answer
// verification: citation extraction, quoted-span matching, and
// legal-domain trigger detection.
//
// Everything here operates on immutable strings with no IO, so the
// conservative matching rules can be unit-tested in isolation from
// bundle handling. This is explicitly a best-effort heuristic layer,
// not a proof system.
package grounding
