package fuzzy

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// LevenshteinDistance calculates the edit distance between two strings
// after normalization: the number of single-rune insertions, deletions or
// substitutions turning one into the other.
func LevenshteinDistance(s1, s2 string) int {
	r1 := []rune(Normalize(s1))
	r2 := []rune(Normalize(s2))

	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	// Two rolling rows instead of the full matrix
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}

// Threshold is the typo tolerance for a query of the given length.
func Threshold(query string) int {
	n := len([]rune(query))
	switch {
	case n <= 3:
		return 0
	case n >= 8:
		return 2
	default:
		return 1
	}
}

// Match reports whether query appears in text, either as a substring or as
// a word within the query's typo threshold.
func Match(query, text string) bool {
	query = Normalize(query)
	text = Normalize(text)
	if query == "" {
		return false
	}
	if strings.Contains(text, query) {
		return true
	}

	threshold := Threshold(query)
	for _, word := range strings.Fields(text) {
		if threshold > 0 && LevenshteinDistance(query, word) <= threshold {
			return true
		}
	}
	return false
}

// TaskScore ranks how well a task's title and description match query.
// Zero means no match. Title hits weigh more than description hits and
// exact hits more than typo-tolerant ones.
func TaskScore(query, title, description string) float64 {
	query = Normalize(query)
	if query == "" {
		return 0
	}
	score := 0.0

	titleNorm := Normalize(title)
	if strings.Contains(titleNorm, query) {
		score += 100.0
		if containsWord(titleNorm, query) {
			score += 50.0
		}
	} else if threshold := Threshold(query); threshold > 0 {
		for _, word := range strings.Fields(titleNorm) {
			if dist := LevenshteinDistance(query, word); dist <= threshold {
				score += 50.0 - float64(dist)*15
			}
		}
	}

	descNorm := Normalize(description)
	if strings.Contains(descNorm, query) {
		score += 40.0
		if containsWord(descNorm, query) {
			score += 20.0
		}
	}

	return score
}

// Normalize lowercases s, strips diacritics and collapses whitespace, so
// "Configuração" and "configuracao" compare equal.
func Normalize(s string) string {
	// Chained transformers keep state, so one is built per call
	foldAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(foldAccents, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

func containsWord(text, query string) bool {
	for _, word := range strings.Fields(text) {
		if word == query {
			return true
		}
	}
	return false
}
