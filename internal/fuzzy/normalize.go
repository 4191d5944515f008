package fuzzy

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalize folds compatibility forms (full-width Latin, half-width kana),
// lower-cases, and collapses runs of whitespace.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = width.Fold.String(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// WithNormalization wraps a scorer so both inputs are normalized first.
func WithNormalization(scorer Scorer) Scorer {
	return func(a, b string) float64 {
		return scorer(Normalize(a), Normalize(b))
	}
}
