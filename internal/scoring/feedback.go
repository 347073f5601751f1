package scoring

import "strings"

// Band thresholds shared by the feedback composer and the review builder.
const (
	highBand = 75
	midBand  = 40
)

const noAnswerFeedback = "No answer was given for this question."

var relevanceFeedback = map[string]string{
	"high": "Your answer hit the key points expected for this question.",
	"mid":  "Your answer touched some of the expected topics; bring in the remaining key points.",
	"low":  "Your answer missed most of the topics this question is probing for.",
}

var clarityFeedback = map[string]string{
	"high": "Your delivery was clear and easy to follow.",
	"mid":  "Your delivery was mostly clear; shorter sentences and fewer filler words would help.",
	"low":  "Your delivery was hard to follow; cut the filler words and break up long sentences.",
}

var completenessFeedback = map[string]string{
	"high": "You covered the question in good depth.",
	"mid":  "Your answer could use more depth; add a concrete example or two.",
	"low":  "Your answer was too brief to cover the question.",
}

func band(score int) string {
	switch {
	case score >= highBand:
		return "high"
	case score >= midBand:
		return "mid"
	default:
		return "low"
	}
}

// composeFeedback joins one canned sentence per dimension, always in
// relevance, clarity, completeness order.
func composeFeedback(r Result) string {
	return strings.Join([]string{
		relevanceFeedback[band(r.Relevance)],
		clarityFeedback[band(r.Clarity)],
		completenessFeedback[band(r.Completeness)],
	}, " ")
}
