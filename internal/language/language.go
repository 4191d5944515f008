package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
)

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "chi" vs "zho")
	display string   // Human-readable name
	words   []string // Full word forms as reported by transcription APIs
}

var languages = []entry{
	{"zh", "zho", "chi", "Chinese", []string{"chinese", "mandarin"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}},
	{"en", "eng", "", "English", []string{"english"}},
	{"ko", "kor", "", "Korean", []string{"korean"}},
	{"yue", "yue", "", "Cantonese", []string{"cantonese"}},
	{"es", "spa", "", "Spanish", []string{"spanish"}},
	{"fr", "fra", "fre", "French", []string{"french"}},
	{"de", "deu", "ger", "German", []string{"german"}},
	{"it", "ita", "", "Italian", []string{"italian"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// ToISO2 converts a language code, word, or BCP 47 tag to its short code
// (ISO 639-1 where one exists). "zh-CN", "chinese" and "zho" all map to "zh".
// Returns empty string for unrecognized input.
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	if tag, err := xlanguage.Parse(code); err == nil {
		base, conf := tag.Base()
		if conf != xlanguage.No {
			short := base.String()
			if e := lookup(short); e != nil {
				return e.code2
			}
			if isLetterCode(short) {
				return short
			}
		}
	}
	if isLetterCode(code) {
		return code
	}
	return ""
}

func isLetterCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(ToISO2(code)); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeList deduplicates and normalizes a list of language codes.
// Unrecognized entries are dropped.
func NormalizeList(languages []string) []string {
	if len(languages) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(languages))
	seen := make(map[string]struct{}, len(languages))
	for _, lang := range languages {
		code := ToISO2(lang)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		normalized = append(normalized, code)
	}
	return normalized
}
