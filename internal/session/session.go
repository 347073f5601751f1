// Package session holds the state of one practice run: the answer records,
// their aggregation, and the wall-clock countdown.
package session

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/prepdeck/prepdeck/internal/catalog"
	"github.com/prepdeck/prepdeck/internal/scoring"
)

// Answer is the record for a single question. It is created empty when the
// question is issued and filled once per scoring pass.
type Answer struct {
	Question     catalog.Question
	RawText      string
	WordCount    int
	Relevance    int
	Clarity      int
	Completeness int
	Feedback     string
	Answered     bool
}

// Session is an ordered sequence of answers, one per question.
type Session struct {
	ID          string
	Level       string
	StartedAt   time.Time
	SubmittedAt time.Time
	Answers     []*Answer
}

// New creates a session with one empty answer slot per question.
func New(level string, questions []catalog.Question) *Session {
	answers := make([]*Answer, 0, len(questions))
	for _, q := range questions {
		answers = append(answers, &Answer{Question: q})
	}

	return &Session{
		ID:        uuid.NewString(),
		Level:     level,
		StartedAt: time.Now(),
		Answers:   answers,
	}
}

// Record stores one scoring pass on the answer at the given index. Out of
// range indexes are ignored.
func (s *Session) Record(i int, raw string, result scoring.Result) {
	if i < 0 || i >= len(s.Answers) {
		return
	}

	a := s.Answers[i]
	a.RawText = raw
	a.WordCount = result.WordCount
	a.Relevance = result.Relevance
	a.Clarity = result.Clarity
	a.Completeness = result.Completeness
	a.Feedback = result.Feedback
	a.Answered = result.Answered
}

// Submit marks the session as finished.
func (s *Session) Submit() {
	s.SubmittedAt = time.Now()
}

// Stats are the session-level aggregates shown on the results view and
// persisted next to the per-question records.
type Stats struct {
	Level             string
	TotalQuestions    int
	AnsweredQuestions int
	TotalWords        int
	AvgRelevance      int
	AvgClarity        int
	AvgCompleteness   int
	TimeSpent         time.Duration
	SubmittedAt       time.Time
}

// Stats aggregates the session. Unanswered entries are excluded from the
// score averages but still count toward TotalQuestions.
func (s *Session) Stats() Stats {
	stats := Stats{
		Level:          s.Level,
		TotalQuestions: len(s.Answers),
		SubmittedAt:    s.SubmittedAt,
	}

	if !s.SubmittedAt.IsZero() {
		stats.TimeSpent = s.SubmittedAt.Sub(s.StartedAt)
	}

	relevance := make([]*int, 0, len(s.Answers))
	clarity := make([]*int, 0, len(s.Answers))
	completeness := make([]*int, 0, len(s.Answers))

	for _, a := range s.Answers {
		stats.TotalWords += a.WordCount
		if !a.Answered {
			relevance = append(relevance, nil)
			clarity = append(clarity, nil)
			completeness = append(completeness, nil)
			continue
		}

		stats.AnsweredQuestions++
		relevance = append(relevance, &a.Relevance)
		clarity = append(clarity, &a.Clarity)
		completeness = append(completeness, &a.Completeness)
	}

	stats.AvgRelevance = Average(relevance)
	stats.AvgClarity = Average(clarity)
	stats.AvgCompleteness = Average(completeness)

	return stats
}

// Average returns the rounded mean of the non-nil scores, or 0 when there is
// nothing to average.
func Average(scores []*int) int {
	sum := 0
	count := 0
	for _, score := range scores {
		if score == nil {
			continue
		}
		sum += *score
		count++
	}

	if count == 0 {
		return 0
	}

	return int(math.Round(float64(sum) / float64(count)))
}
