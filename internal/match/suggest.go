package match

// MinSimilarity is the score a candidate needs to be suggested.
const MinSimilarity = 0.6

// Closest returns the candidate most similar to name, if any reaches
// MinSimilarity. Ties go to the earlier candidate.
func Closest(name string, candidates []string) (string, bool) {
	best, bestScore := "", 0.0
	for _, c := range candidates {
		if score := Similarity(name, c); score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < MinSimilarity {
		return "", false
	}

	return best, true
}

// Hint renders a "did you mean" suffix for messages, or "" without a suggestion.
func Hint(name string, candidates []string) string {
	if s, ok := Closest(name, candidates); ok {
		return ` (did you mean "` + s + `"?)`
	}

	return ""
}
