package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func TestCoachReview(t *testing.T) {
	stub := &stubGenerator{response: `{"score": 82, "feedback": "Solid answer.", "strengths": ["Clear story"], "improvements": ["Add metrics"]}`}
	coach := NewCoach(stub, zap.NewNop(), 0)

	review, err := coach.Review(context.Background(), "Tell me about a project.", "I led the migration to the new billing system.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if review.Score != 82 {
		t.Fatalf("expected score 82, got %d", review.Score)
	}
	if review.Feedback != "Solid answer." {
		t.Fatalf("unexpected feedback: %q", review.Feedback)
	}
	if len(review.Strengths) != 1 || review.Strengths[0] != "Clear story" {
		t.Fatalf("unexpected strengths: %v", review.Strengths)
	}
	if len(review.Improvements) != 1 {
		t.Fatalf("unexpected improvements: %v", review.Improvements)
	}
	if review.Raw == "" {
		t.Fatalf("expected raw response to be kept")
	}

	if !strings.Contains(stub.lastPrompt, "Tell me about a project.") {
		t.Fatalf("expected question in prompt, got %q", stub.lastPrompt)
	}
	if !strings.Contains(stub.lastPrompt, "billing system") {
		t.Fatalf("expected answer in prompt, got %q", stub.lastPrompt)
	}
}

func TestCoachReviewHandlesFencedJSON(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"score\": \"140\", \"feedback\": \"ok\"}\n```"}
	coach := NewCoach(stub, zap.NewNop(), 0)

	review, err := coach.Review(context.Background(), "q", "a meaningful answer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if review.Score != 100 {
		t.Fatalf("expected the score to be clamped to 100, got %d", review.Score)
	}
}

func TestCoachReviewRejectsEmptyAnswer(t *testing.T) {
	coach := NewCoach(&stubGenerator{}, zap.NewNop(), 0)

	if _, err := coach.Review(context.Background(), "q", "  "); err == nil {
		t.Fatalf("expected error for empty answer")
	}
}

func TestCoachReviewPropagatesGeneratorError(t *testing.T) {
	wantErr := errors.New("quota exceeded")
	coach := NewCoach(&stubGenerator{err: wantErr}, zap.NewNop(), 0)

	if _, err := coach.Review(context.Background(), "q", "an answer"); !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped generator error, got %v", err)
	}
}

func TestCoachReviewRejectsMalformedJSON(t *testing.T) {
	coach := NewCoach(&stubGenerator{response: "not json at all"}, zap.NewNop(), 0)

	if _, err := coach.Review(context.Background(), "q", "an answer"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "hello world",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "hello",
			limit:  10,
			expect: "hello",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "hello world",
			limit:  5,
			expect: "hello...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := truncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
