package ai

import "context"

// Review is a model-backed evaluation of one answer.
type Review struct {
	Score        int
	Feedback     string
	Strengths    []string
	Improvements []string
	Raw          string
}

// Coach produces a review for a question/answer pair. Implementations are
// optional collaborators; the heuristic scoring path never depends on one.
type Coach interface {
	Review(ctx context.Context, question, answer string) (*Review, error)
}
