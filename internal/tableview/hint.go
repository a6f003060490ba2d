package tableview

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Anything further than this (normalized edit distance) is not worth
// suggesting.
const hintThreshold = 0.6

// ClosestMatch suggests the nearest field value when the current query
// filters everything out. Returns ok=false for an empty query, a non-empty
// filtered view, or when nothing is close enough.
func (v *View[T]) ClosestMatch() (string, bool) {
	q := strings.ToLower(strings.TrimSpace(v.query))
	if q == "" || len(v.Filtered()) > 0 {
		return "", false
	}
	best := ""
	bestScore := hintThreshold
	for _, it := range v.items {
		for _, f := range v.fields(it) {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			score := normalizedDistance(q, strings.ToLower(f))
			if score < bestScore {
				bestScore = score
				best = f
			}
		}
	}
	return best, best != ""
}

// The distance is computed over runes, so the denominator must count runes
// too or multibyte values score too leniently.
func normalizedDistance(a, b string) float64 {
	maxlen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxlen {
		maxlen = n
	}
	if maxlen == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(maxlen)
}
