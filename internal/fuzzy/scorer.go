package fuzzy

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hbollon/go-edlib"
)

// Scorer returns the similarity of two strings in the range 0..100.
type Scorer func(a, b string) float64

const (
	unbaseScale       = 0.95
	partialScale      = 0.9
	longPartialScale  = 0.6
	longRatioBoundary = 8.0
	tokenRatioLimit   = 1.5
)

// ScorerByName resolves a scorer from its configuration name.
func ScorerByName(name string) (Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ratio":
		return Ratio, nil
	case "partial_ratio":
		return PartialRatio, nil
	case "token_sort_ratio":
		return TokenSortRatio, nil
	case "token_set_ratio":
		return TokenSetRatio, nil
	case "wratio", "":
		return WRatio, nil
	default:
		return nil, fmt.Errorf("unknown scorer %q", name)
	}
}

// Ratio is the normalized indel similarity: 200*LCS/(len(a)+len(b)).
// Two empty strings are identical.
func Ratio(a, b string) float64 {
	la, lb := runeLen(a), runeLen(b)
	if la == 0 && lb == 0 {
		return 100
	}
	if la == 0 || lb == 0 {
		return 0
	}
	return 200 * float64(edlib.LCS(a, b)) / float64(la+lb)
}

// PartialRatio returns the best Ratio between the shorter string and any
// equally long window of the longer one. Windows hanging off either end of
// the longer string are considered too.
func PartialRatio(a, b string) float64 {
	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		if len(longer) == 0 {
			return 100
		}
		return 0
	}
	needle := string(shorter)
	n := len(shorter)
	best := 0.0
	consider := func(window []rune) bool {
		if score := Ratio(needle, string(window)); score > best {
			best = score
		}
		return best == 100
	}
	for i := 1; i < n; i++ {
		if consider(longer[:i]) {
			return best
		}
	}
	for start := 0; start+n <= len(longer); start++ {
		if consider(longer[start : start+n]) {
			return best
		}
	}
	for start := len(longer) - n + 1; start < len(longer); start++ {
		if start <= 0 {
			continue
		}
		if consider(longer[start:]) {
			return best
		}
	}
	return best
}

// TokenSortRatio compares the strings after sorting their whitespace
// separated tokens.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortedTokens(a), sortedTokens(b))
}

// TokenSetRatio compares the shared tokens against each side's remainder.
// Returns 100 when one token set contains the other.
func TokenSetRatio(a, b string) float64 {
	setA, setB := tokenSet(a), tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	var sect, onlyA, onlyB []string
	for token := range setA {
		if _, ok := setB[token]; ok {
			sect = append(sect, token)
		} else {
			onlyA = append(onlyA, token)
		}
	}
	for token := range setB {
		if _, ok := setA[token]; !ok {
			onlyB = append(onlyB, token)
		}
	}
	if len(sect) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}
	slices.Sort(sect)
	slices.Sort(onlyA)
	slices.Sort(onlyB)

	joinedSect := strings.Join(sect, " ")
	combinedA := strings.TrimSpace(joinedSect + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(joinedSect + " " + strings.Join(onlyB, " "))

	best := Ratio(combinedA, combinedB)
	if joinedSect != "" {
		best = max(best, Ratio(joinedSect, combinedA), Ratio(joinedSect, combinedB))
	}
	return best
}

// PartialTokenSortRatio is PartialRatio over sorted tokens. Any shared token
// scores 100.
func PartialTokenSortRatio(a, b string) float64 {
	setA, setB := tokenSet(a), tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	for token := range setA {
		if _, ok := setB[token]; ok {
			return 100
		}
	}
	return PartialRatio(sortedTokens(a), sortedTokens(b))
}

// WRatio weighs the other scorers by how different the lengths are. Similar
// lengths favor whole-string and token comparisons; very different lengths
// fall back to scaled partial matching.
func WRatio(a, b string) float64 {
	la, lb := runeLen(a), runeLen(b)
	if la == 0 || lb == 0 {
		return 0
	}
	lenRatio := float64(max(la, lb)) / float64(min(la, lb))
	score := Ratio(a, b)
	if lenRatio < tokenRatioLimit {
		return max(score, TokenSortRatio(a, b)*unbaseScale, TokenSetRatio(a, b)*unbaseScale)
	}
	scale := partialScale
	if lenRatio >= longRatioBoundary {
		scale = longPartialScale
	}
	score = max(score, PartialRatio(a, b)*scale)
	return max(score, PartialTokenSortRatio(a, b)*unbaseScale*scale)
}

func runeLen(s string) int {
	return len([]rune(s))
}

func sortedTokens(s string) string {
	tokens := strings.Fields(s)
	slices.Sort(tokens)
	return strings.Join(tokens, " ")
}

func tokenSet(s string) map[string]struct{} {
	tokens := strings.Fields(s)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}
