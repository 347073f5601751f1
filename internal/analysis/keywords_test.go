package analysis

import "testing"

func TestHitRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		keywords []string
		expect   float64
	}{
		{
			name:     "all stems hit case-insensitively",
			text:     "I worked with my TEAM on a Collaborative project",
			keywords: []string{"team", "collaborat"},
			expect:   1.0,
		},
		{
			name:     "partial hit",
			text:     "the team shipped on time",
			keywords: []string{"team", "conflict"},
			expect:   0.5,
		},
		{
			name:     "no keywords",
			text:     "anything",
			keywords: nil,
			expect:   0,
		},
		{
			name:     "blank keywords skipped",
			text:     "the team shipped",
			keywords: []string{"team", "  "},
			expect:   1.0,
		},
		{
			name:     "empty transcript",
			text:     "",
			keywords: []string{"team"},
			expect:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := HitRatio(tt.text, tt.keywords); got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestHitsPreservesKeywordOrder(t *testing.T) {
	t.Parallel()

	hits := Hits("we resolved the conflict as a team", []string{"team", "conflict", "deadline"})
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0] != "team" || hits[1] != "conflict" {
		t.Fatalf("unexpected hit order: %v", hits)
	}
}
