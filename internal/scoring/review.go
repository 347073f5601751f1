package scoring

// Review is the richer evaluation shape served by the HTTP API: an overall
// score plus prose feedback, strengths and improvement suggestions.
type Review struct {
	Score        int      `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// TooShortReview is returned for answers under the minimum useful length.
func TooShortReview() Review {
	return Review{
		Score:     0,
		Feedback:  "Answer is too short. Please provide a more detailed response.",
		Strengths: []string{},
		Improvements: []string{
			"Provide more detailed explanations",
			"Add relevant examples",
			"Elaborate on key points",
		},
	}
}

// BuildReview derives strengths and improvements from the overall score and
// the answer's word count.
func BuildReview(score, wordCount int) Review {
	strengths := make([]string, 0, 4)
	switch {
	case score >= 80:
		strengths = append(strengths,
			"Comprehensive and well-structured answer",
			"Demonstrates strong understanding",
			"Clear and articulate communication",
		)
	case score >= 60:
		strengths = append(strengths,
			"Good understanding of the topic",
			"Relevant points covered",
		)
	case score >= 40:
		strengths = append(strengths, "Basic understanding demonstrated")
	}
	if wordCount >= 100 {
		strengths = append(strengths, "Detailed explanation provided")
	}

	improvements := make([]string, 0, 5)
	if score < 80 {
		if wordCount < 50 {
			improvements = append(improvements, "Provide more detailed explanations")
		}
		improvements = append(improvements,
			"Include specific examples to support your points",
			"Elaborate on key concepts",
		)
	}
	if score < 60 {
		improvements = append(improvements,
			"Address all aspects of the question",
			"Organize your thoughts more clearly",
		)
	}
	if score < 40 {
		improvements = append(improvements,
			"Focus on understanding the core question",
			"Provide more relevant information",
		)
	}

	var feedback string
	switch {
	case score >= 80:
		feedback = "Excellent answer! You demonstrated strong knowledge and communication skills."
	case score >= 60:
		feedback = "Good answer with room for improvement. Consider adding more specific examples and details."
	case score >= 40:
		feedback = "Fair answer. Try to provide more comprehensive responses with better structure."
	default:
		feedback = "Needs improvement. Focus on understanding the question and providing more relevant details."
	}

	return Review{
		Score:        score,
		Feedback:     feedback,
		Strengths:    strengths,
		Improvements: improvements,
	}
}
