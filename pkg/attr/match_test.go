package attr

import "testing"

func TestCandidates(t *testing.T) {
	attrs := []Attribute{
		{ID: 1, Name: "Grass"},
		{ID: 2, Name: "Water"},
		{ID: 30, Name: "Super Water"},
		{ID: 5, Name: "Fire"},
	}

	tests := []struct {
		name    string
		query   string
		wantIDs []int
	}{
		{"exact match short-circuits", "water", []int{2}},
		{"multiple substring matches", "ater", []int{2, 30}},
		{"unique substring", "super", []int{30}},
		{"no match", "electric", nil},
		{"empty query", "  ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Candidates(attrs, tt.query)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Candidates(%q) returned %d attributes, want %d", tt.query, len(got), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("Candidates(%q)[%d].ID = %d, want %d", tt.query, i, got[i].ID, want)
				}
			}
		})
	}
}

func TestMatch(t *testing.T) {
	attrs := []Attribute{
		{ID: 1, Name: "Grass"},
		{ID: 2, Name: "Water"},
		{ID: 30, Name: "Super Water"},
		{ID: 5, Name: "Fire"},
	}

	tests := []struct {
		name   string
		query  string
		wantID int
		wantOK bool
	}{
		{"exact", "fire", 5, true},
		{"exact beats substring", "water", 2, true},
		{"unique substring", "super", 30, true},
		{"ambiguous substring prefers shortest", "ater", 2, true},
		{"fuzzy within distance", "grasss", 1, true},
		{"fuzzy too far", "electric", 0, false},
		{"empty query", "  ", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Match(attrs, tt.query)
			if ok != tt.wantOK {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.query, ok, tt.wantOK)
			}
			if ok && got.ID != tt.wantID {
				t.Errorf("Match(%q) = %v, want id %d", tt.query, got, tt.wantID)
			}
		})
	}
}
