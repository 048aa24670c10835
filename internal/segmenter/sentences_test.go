package segmenter

import (
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "simple boundaries",
			in:   "The term is two years. The fee is due.",
			want: []string{"The term is two years.", "The fee is due."},
		},
		{
			name: "lowercase continuation merges",
			in:   "This applies i.e. whenever notice is given.",
			want: []string{"This applies i.e. whenever notice is given."},
		},
		{
			name: "digit starts a sentence",
			in:   "See Section 2. 30 days later it ends.",
			want: []string{"See Section 2.", "30 days later it ends."},
		},
		{
			name: "quote starts a sentence",
			in:   `He agreed. "Confirmed in writing." So noted.`,
			want: []string{"He agreed.", `"Confirmed in writing." So noted.`},
		},
		{
			name: "exclamation and question",
			in:   "Stop! Why? Because the clause says so.",
			want: []string{"Stop!", "Why?", "Because the clause says so."},
		},
		{
			name: "trailing text without terminator",
			in:   "First point. Second remains open",
			want: []string{"First point.", "Second remains open"},
		},
		{
			name: "terminator not followed by whitespace merges",
			in:   "Clause 4.2 applies to Buyer.",
			want: []string{"Clause 4.2 applies to Buyer."},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
		{
			name: "whitespace only",
			in:   "   \n\t ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "blank line boundary",
			in:   "First paragraph.\n\nSecond paragraph.",
			want: []string{"First paragraph.", "Second paragraph."},
		},
		{
			name: "blank line with trailing spaces",
			in:   "First.\n \t\nSecond.",
			want: []string{"First.", "Second."},
		},
		{
			name: "no break is one paragraph",
			in:   "One line.\nStill same paragraph.",
			want: []string{"One line.\nStill same paragraph."},
		},
		{
			name: "empty paragraphs dropped",
			in:   "\n\nOnly one.\n\n\n\n",
			want: []string{"Only one."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitParagraphs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitParagraphs(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
