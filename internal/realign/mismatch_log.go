package realign

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Rejection reasons.
const (
	ReasonBelowMinScore = "below_min_score"
	ReasonLengthRatio   = "length_ratio"
	ReasonNoReference   = "no_reference"
)

// Mismatch describes a span that kept its transcribed text.
type Mismatch struct {
	Path    string
	Content string
	Match   string
	Score   float64
	Reason  string
}

// MismatchLog appends review entries in the plain-text layout operators
// already grep:
//
//	error
//	content: <span>
//	match: <best candidate>
//	score: <score>
type MismatchLog struct {
	mu sync.Mutex
	w  io.Writer
}

// NewMismatchLog wraps w. A nil writer discards entries.
func NewMismatchLog(w io.Writer) *MismatchLog {
	if w == nil {
		w = io.Discard
	}
	return &MismatchLog{w: w}
}

// Append writes one entry.
func (l *MismatchLog) Append(m Mismatch) error {
	var b strings.Builder
	b.WriteString("error\n")
	b.WriteString("content: " + m.Content + "\n")
	b.WriteString("match: " + m.Match + "\n")
	b.WriteString("score: " + formatScore(m.Score) + "\n")

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := io.WriteString(l.w, b.String()); err != nil {
		return fmt.Errorf("append mismatch log: %w", err)
	}
	return nil
}

// formatScore keeps a decimal point on whole numbers (72 -> 72.0).
func formatScore(score float64) string {
	s := strconv.FormatFloat(score, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
