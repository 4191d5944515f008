// Package speech defines the contract between the transcription job and the
// speech recognition engines that serve it.
package speech

import (
	"context"
	"sort"
	"strings"
)

// Recognition is the outcome of running one audio file through an engine.
type Recognition struct {
	// Language is the engine's reported language, normalized to ISO 639-1
	// when the engine reports it in another form.
	Language string
	// Probabilities holds per-language detection scores when the engine
	// exposes them. It may be nil.
	Probabilities map[string]float64
	Text          string
}

// DetectedLanguage returns the most probable language. Ties are broken by
// code order so the choice is stable. Without probabilities it falls back to
// Language.
func (r Recognition) DetectedLanguage() string {
	if len(r.Probabilities) == 0 {
		return r.Language
	}
	codes := make([]string, 0, len(r.Probabilities))
	for code := range r.Probabilities {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	best := codes[0]
	for _, code := range codes[1:] {
		if r.Probabilities[code] > r.Probabilities[best] {
			best = code
		}
	}
	return best
}

// TrimmedText returns the transcript without surrounding whitespace.
func (r Recognition) TrimmedText() string {
	return strings.TrimSpace(r.Text)
}

// Recognizer detects the spoken language of an audio file and decodes it.
type Recognizer interface {
	Recognize(ctx context.Context, audioPath string) (Recognition, error)
	// Name identifies the engine in logs and metrics.
	Name() string
}
