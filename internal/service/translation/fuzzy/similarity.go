// Package fuzzy scores how close two strings are by normalized edit distance.
package fuzzy

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Distance returns the Levenshtein distance between a and b, counted in runes.
// Insertion, deletion and substitution all cost 1; transpositions are not
// discounted.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity returns (maxLen - Distance(a, b)) / maxLen, in [0, 1].
// Two empty strings are identical (1).
func Similarity(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1
	}
	return float64(maxLen-Distance(a, b)) / float64(maxLen)
}

// Best returns the candidate most similar to s and its score. Ties keep the
// earliest candidate. ok is false when no candidate scores strictly above
// threshold.
func Best(s string, candidates []string, threshold float64) (match string, score float64, ok bool) {
	for _, c := range candidates {
		sim := Similarity(s, c)
		if sim > score && sim > threshold {
			match, score, ok = c, sim, true
		}
	}
	return match, score, ok
}
