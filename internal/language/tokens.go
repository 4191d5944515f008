package language

import (
	"errors"
	"fmt"
	"strings"
)

// Presets name the language sets the dataset tooling has always offered.
var presets = map[string][]string{
	"CJE": {"zh", "ja", "en"},
	"CJ":  {"zh", "ja"},
	"C":   {"zh"},
}

// TokenSet maps supported languages to the bracket tokens that wrap
// transcribed text, e.g. zh -> [ZH].
type TokenSet struct {
	order  []string
	tokens map[string]string
}

// ParseTokenSet builds a TokenSet from a preset name ("CJE", "CJ", "C") or a
// comma separated list of language codes.
func ParseTokenSet(spec string) (TokenSet, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return TokenSet{}, errors.New("empty language set")
	}
	codes, ok := presets[strings.ToUpper(spec)]
	if !ok {
		parts := strings.Split(spec, ",")
		for _, part := range parts {
			if strings.TrimSpace(part) != "" && ToISO2(part) == "" {
				return TokenSet{}, fmt.Errorf("unrecognized language %q in %q", strings.TrimSpace(part), spec)
			}
		}
		codes = NormalizeList(parts)
	}
	if len(codes) == 0 {
		return TokenSet{}, fmt.Errorf("no languages in %q", spec)
	}
	set := TokenSet{
		order:  make([]string, 0, len(codes)),
		tokens: make(map[string]string, len(codes)),
	}
	for _, code := range codes {
		if _, dup := set.tokens[code]; dup {
			continue
		}
		set.order = append(set.order, code)
		set.tokens[code] = "[" + strings.ToUpper(code) + "]"
	}
	return set, nil
}

// Token returns the bracket token for the language, accepting any form
// ToISO2 understands. ok is false for languages outside the set.
func (s TokenSet) Token(lang string) (string, bool) {
	token, ok := s.tokens[ToISO2(lang)]
	return token, ok
}

// Languages returns the short codes in the set, in declaration order.
func (s TokenSet) Languages() []string {
	return append([]string(nil), s.order...)
}

// String renders the set as "zh,ja,en".
func (s TokenSet) String() string {
	return strings.Join(s.order, ",")
}
