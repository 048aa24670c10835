package grounding

import "testing"

func TestFindTrigger(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     string
		found    bool
	}{
		{"terminated", "The contract may be terminated at will.", "terminated", true},
		{"indemnify", "Buyer shall indemnify Seller for all claims.", "indemnify", true},
		{"liability uppercase", "LIABILITY is capped at fees paid.", "liability", true},
		{"confidentiality", "All confidentiality obligations survive.", "confidentiality", true},
		{"arbitration", "Disputes go to binding arbitration.", "arbitration", true},
		{"governing law", "New York is the governing law here.", "governing law", true},
		{"no trigger", "The parties met on Tuesday to talk.", "", false},
		{"substring not matched", "The determination was final.", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FindTrigger(tt.sentence)
			if found != tt.found || got != tt.want {
				t.Errorf("FindTrigger(%q) = (%q, %v), want (%q, %v)",
					tt.sentence, got, found, tt.want, tt.found)
			}
		})
	}
}
