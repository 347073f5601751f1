package analysis

import "strings"

// Hits returns the keywords whose stem appears in the text. Matching is a
// case-insensitive substring check, so "collaborat" hits "collaboration".
// Blank keywords are skipped.
func Hits(text string, keywords []string) []string {
	lowered := strings.ToLower(text)

	hits := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		stem := strings.ToLower(strings.TrimSpace(keyword))
		if stem == "" {
			continue
		}
		if strings.Contains(lowered, stem) {
			hits = append(hits, keyword)
		}
	}

	return hits
}

// HitRatio returns the fraction of keywords found in the text, in [0,1].
// An empty keyword list yields 0.
func HitRatio(text string, keywords []string) float64 {
	total := 0
	for _, keyword := range keywords {
		if strings.TrimSpace(keyword) != "" {
			total++
		}
	}
	if total == 0 {
		return 0
	}

	return float64(len(Hits(text, keywords))) / float64(total)
}
