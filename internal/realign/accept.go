package realign

import "unicode/utf8"

// Default acceptance thresholds.
const (
	DefaultMinScore       = 72.5
	DefaultMinLengthRatio = 0.71
)

// Thresholds bound which fuzzy matches replace the transcribed text.
type Thresholds struct {
	MinScore       float64
	MinLengthRatio float64
}

// DefaultThresholds returns the stock acceptance thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{MinScore: DefaultMinScore, MinLengthRatio: DefaultMinLengthRatio}
}

// Accept reports whether match may replace query. Lengths are measured in
// runes. An empty query is never accepted.
func (t Thresholds) Accept(query, match string, score float64) bool {
	queryLen := utf8.RuneCountInString(query)
	if queryLen == 0 {
		return false
	}
	if score < t.MinScore {
		return false
	}
	return float64(utf8.RuneCountInString(match))/float64(queryLen) >= t.MinLengthRatio
}

// Accept applies the default thresholds.
func Accept(query, match string, score float64) bool {
	return DefaultThresholds().Accept(query, match, score)
}
