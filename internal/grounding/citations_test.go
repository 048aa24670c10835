package grounding

import (
	"reflect"
	"testing"
)

func TestExtractCitations(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "single citation",
			in:   "The term is two years. [bundle-x-chunk-001]",
			want: []string{"bundle-x-chunk-001"},
		},
		{
			name: "duplicates returned once",
			in:   "See bundle-x-chunk-001 and again bundle-x-chunk-001.",
			want: []string{"bundle-x-chunk-001"},
		},
		{
			name: "first-seen order",
			in:   "Per bundle-ab12-chunk-002 then bundle-ab12-chunk-001.",
			want: []string{"bundle-ab12-chunk-002", "bundle-ab12-chunk-001"},
		},
		{
			name: "no citations",
			in:   "Nothing cited here.",
			want: nil,
		},
		{
			name: "malformed ids ignored",
			in:   "bundle--chunk-001 and bundle-x-chunk- are not ids.",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCitations(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractCitations(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractCitations_Idempotent(t *testing.T) {
	text := "bundle-x-chunk-001 bundle-x-chunk-002 bundle-x-chunk-001"
	first := ExtractCitations(text)
	second := ExtractCitations(text + " " + text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("duplicated text changed the citation set: %v vs %v", first, second)
	}
}

func TestHasCitation(t *testing.T) {
	if !HasCitation("cited in bundle-x-chunk-003") {
		t.Error("expected citation to be detected")
	}
	if HasCitation("no identifiers at all") {
		t.Error("expected no citation")
	}
}
