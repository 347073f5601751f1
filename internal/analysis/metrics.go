package analysis

import (
	"regexp"
	"strings"
)

// fillerPattern matches verbal habit tokens on word boundaries, so "slow"
// never counts as "so". "you know" is matched as a phrase.
var fillerPattern = regexp.MustCompile(`(?i)\b(?:um|uh|like|actually|basically|so|right|you\s+know)\b`)

// WordCount returns the number of whitespace-delimited non-empty tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Sentences splits text on runs of sentence terminators and drops empty
// fragments. Text without any terminator is a single sentence.
func Sentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}

	return sentences
}

// AvgWordsPerSentence returns words per sentence, treating boundary-free text
// as one sentence.
func AvgWordsPerSentence(text string) float64 {
	count := len(Sentences(text))
	if count < 1 {
		count = 1
	}

	return float64(WordCount(text)) / float64(count)
}

// FillerCount returns the number of filler-word occurrences in the text.
func FillerCount(text string) int {
	return len(fillerPattern.FindAllStringIndex(text, -1))
}
