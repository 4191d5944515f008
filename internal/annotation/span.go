package annotation

import (
	"regexp"
	"strings"
)

var spanPattern = regexp.MustCompile(`\[([A-Z]+)\](.*?)\[([A-Z]+)\]`)

// Span is the first language-tagged region of a transcription.
type Span struct {
	OpenTag  string
	Content  string
	CloseTag string
}

// Tag wraps text in the bracket token on both sides.
func Tag(token, text string) string {
	return token + text + token
}

// ExtractSpan finds the first `[TAG]content[TAG]` region in text. Tags are
// returned with their brackets; content is trimmed.
func ExtractSpan(text string) (Span, bool) {
	m := spanPattern.FindStringSubmatch(text)
	if m == nil {
		return Span{}, false
	}
	return Span{
		OpenTag:  "[" + m[1] + "]",
		Content:  strings.TrimSpace(m[2]),
		CloseTag: "[" + m[3] + "]",
	}, true
}

// Wrap renders content between the span's tags, space separated.
func (s Span) Wrap(content string) string {
	return s.OpenTag + " " + content + " " + s.CloseTag
}
