package search

import "unicode/utf8"

// Levenshtein returns the edit distance between a and b (unit-cost insertions,
// deletions and substitutions), computed over runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			curr[j] = 1 + min(prev[j-1], prev[j], curr[j-1])
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// withinDistance reports Levenshtein(a, b) <= maxDist. The length gap is a lower
// bound on the distance, so long titles are rejected without building the table.
func withinDistance(a, b string, maxDist int) bool {
	gap := utf8.RuneCountInString(a) - utf8.RuneCountInString(b)
	if gap > maxDist || -gap > maxDist {
		return false
	}
	return Levenshtein(a, b) <= maxDist
}
