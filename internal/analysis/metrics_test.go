package analysis

import "testing"

func TestWordCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect int
	}{
		{
			name:   "empty string",
			input:  "",
			expect: 0,
		},
		{
			name:   "whitespace only",
			input:  "   \t \n ",
			expect: 0,
		},
		{
			name:   "collapses whitespace runs",
			input:  "a  b   c",
			expect: 3,
		},
		{
			name:   "plain sentence",
			input:  "I worked with my team on a collaborative project for three months and delivered results.",
			expect: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := WordCount(tt.input); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}

func TestSentences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect int
	}{
		{
			name:   "empty string",
			input:  "",
			expect: 0,
		},
		{
			name:   "no terminator is one sentence",
			input:  "this has no boundary at all",
			expect: 1,
		},
		{
			name:   "mixed terminators",
			input:  "First one. Second one! Third one?",
			expect: 3,
		},
		{
			name:   "terminator runs collapse",
			input:  "Really?! Yes... sure.",
			expect: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := len(Sentences(tt.input)); got != tt.expect {
				t.Fatalf("expected %d sentences, got %d", tt.expect, got)
			}
		})
	}
}

func TestAvgWordsPerSentence(t *testing.T) {
	t.Parallel()

	if got := AvgWordsPerSentence(""); got != 0 {
		t.Fatalf("expected 0 for empty text, got %v", got)
	}

	if got := AvgWordsPerSentence("one two three. four five six."); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
}

func TestFillerCountWholeWordsOnly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect int
	}{
		{
			name:   "no fillers",
			input:  "a concise and direct answer",
			expect: 0,
		},
		{
			name:   "counts repeated fillers",
			input:  "um so I was like basically done",
			expect: 4,
		},
		{
			name:   "slow does not match so",
			input:  "the slow response was resolved",
			expect: 0,
		},
		{
			name:   "case insensitive",
			input:  "Um, SO that was it",
			expect: 2,
		},
		{
			name:   "you know counts as one filler",
			input:  "it was, you know, difficult",
			expect: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FillerCount(tt.input); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}
