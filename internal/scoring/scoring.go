// Package scoring derives bounded answer-quality scores from transcript
// statistics. All scores are integers on a 0-100 scale and the same input
// always produces the same output.
package scoring

import (
	"math"
	"strings"

	"github.com/prepdeck/prepdeck/internal/analysis"
)

// Weights holds the tuning constants of the score formulas. They are plain
// configuration, not contracts; the defaults come from the shipped profile.
type Weights struct {
	// TargetSentenceLength is the words-per-sentence sweet spot. Clarity
	// drops by SentencePenalty per word of deviation.
	TargetSentenceLength float64
	SentencePenalty      float64
	// FillerPenalty is subtracted from clarity per filler-word occurrence.
	FillerPenalty float64
	// CompletenessTarget is the word count that earns the full length
	// portion of the completeness score.
	CompletenessTarget float64
	// RelevanceBoost scales the keyword hit ratio so that near-complete
	// coverage still reaches 100.
	RelevanceBoost float64
	// KeywordBonus is the completeness share awarded for keyword coverage.
	KeywordBonus float64
}

// DefaultWeights returns the shipped scoring profile.
func DefaultWeights() Weights {
	return Weights{
		TargetSentenceLength: 13,
		SentencePenalty:      4,
		FillerPenalty:        8,
		CompletenessTarget:   80,
		RelevanceBoost:       120,
		KeywordBonus:         20,
	}
}

// Result is one scoring pass over a single answer.
type Result struct {
	Relevance    int
	Clarity      int
	Completeness int
	WordCount    int
	Feedback     string
	// Answered is false when the transcript was empty or whitespace-only;
	// scores are then at their minimum and Feedback reports the missing
	// answer instead of banded advice.
	Answered bool
}

// Overall is the mean of the three dimension scores, rounded.
func (r Result) Overall() int {
	return int(math.Round(float64(r.Relevance+r.Clarity+r.Completeness) / 3))
}

// Evaluator scores transcripts against expected keyword stems.
type Evaluator struct {
	weights Weights
}

// NewEvaluator creates an Evaluator with the provided weights. Zero-valued
// weights fall back to the defaults so a partially filled config stays sane.
func NewEvaluator(w Weights) *Evaluator {
	defaults := DefaultWeights()
	if w.TargetSentenceLength <= 0 {
		w.TargetSentenceLength = defaults.TargetSentenceLength
	}
	if w.SentencePenalty <= 0 {
		w.SentencePenalty = defaults.SentencePenalty
	}
	if w.FillerPenalty <= 0 {
		w.FillerPenalty = defaults.FillerPenalty
	}
	if w.CompletenessTarget <= 0 {
		w.CompletenessTarget = defaults.CompletenessTarget
	}
	if w.RelevanceBoost <= 0 {
		w.RelevanceBoost = defaults.RelevanceBoost
	}
	if w.KeywordBonus <= 0 {
		w.KeywordBonus = defaults.KeywordBonus
	}

	return &Evaluator{weights: w}
}

// Evaluate scores a transcript against the expected keyword stems. An empty
// transcript yields minimum scores and a no-answer feedback line; it is not
// an error.
func (e *Evaluator) Evaluate(text string, keywords []string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Feedback: noAnswerFeedback}
	}

	wordCount := analysis.WordCount(text)
	avgLen := analysis.AvgWordsPerSentence(text)
	fillers := analysis.FillerCount(text)
	hitRatio := analysis.HitRatio(text, keywords)

	w := e.weights

	relevance := round(math.Min(100, hitRatio*w.RelevanceBoost))

	clarity := round(clamp(0, 100,
		100-math.Abs(avgLen-w.TargetSentenceLength)*w.SentencePenalty-float64(fillers)*w.FillerPenalty))

	lengthShare := math.Min(1, float64(wordCount)/w.CompletenessTarget)
	completeness := round(math.Min(100, lengthShare*(100-w.KeywordBonus)+hitRatio*w.KeywordBonus))

	result := Result{
		Relevance:    relevance,
		Clarity:      clarity,
		Completeness: completeness,
		WordCount:    wordCount,
		Answered:     true,
	}
	result.Feedback = composeFeedback(result)

	return result
}

func round(v float64) int {
	return int(math.Round(v))
}

func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
