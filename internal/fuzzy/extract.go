package fuzzy

// Match is the best candidate found by ExtractOne.
type Match struct {
	Text  string
	Score float64
	Index int
}

// ExtractOne scores query against every choice and returns the best one.
// The first choice wins ties. ok is false when no choice reaches cutoff; the
// best candidate is still returned so callers can report near misses. With
// no choices Index is -1.
func ExtractOne(query string, choices []string, cutoff float64, scorer Scorer) (Match, bool) {
	if scorer == nil {
		scorer = WRatio
	}
	best := Match{Index: -1}
	for i, choice := range choices {
		score := scorer(query, choice)
		if best.Index < 0 || score > best.Score {
			best = Match{Text: choice, Score: score, Index: i}
		}
	}
	if best.Index < 0 {
		return best, false
	}
	return best, best.Score >= cutoff
}
