package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleTimeFormat is local wall-clock time; the JSON format keeps UTC.
const consoleTimeFormat = "2006-01-02 15:04:05"

// consoleHidden keys are carried in JSON output but add only noise on a terminal.
var consoleHidden = map[string]bool{
	FieldStage:         true,
	FieldCorrelationID: true,
}

// consoleHandler renders one line per record:
//
//	2026-01-02 15:04:05 INFO  transcribe[alice]: clip transcribed file=1.wav language=zh
type consoleHandler struct {
	mu        *sync.Mutex
	writer    io.Writer
	level     *slog.LevelVar
	attrs     []field
	groups    []string
	addSource bool
}

type field struct {
	key   string
	value slog.Value
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, writer: w, level: lvl, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if !h.Enabled(context.Background(), record.Level) {
		return nil
	}

	fields := make([]field, 0, len(h.attrs)+record.NumAttrs())
	fields = append(fields, h.attrs...)
	record.Attrs(func(attr slog.Attr) bool {
		fields = appendField(fields, h.groups, attr)
		return true
	})

	var component, speaker string
	body := fields[:0]
	for _, f := range fields {
		switch {
		case f.key == FieldComponent:
			if component == "" {
				component = f.value.String()
			}
		case f.key == FieldSpeaker:
			speaker = f.value.String()
		case consoleHidden[f.key]:
		default:
			body = append(body, f)
		}
	}

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var buf bytes.Buffer
	buf.Grow(128 + len(body)*24)
	buf.WriteString(ts.Local().Format(consoleTimeFormat))
	fmt.Fprintf(&buf, " %-5s ", levelLabel(record.Level))

	switch {
	case component != "" && speaker != "":
		buf.WriteString(component + "[" + speaker + "]: ")
	case component != "":
		buf.WriteString(component + ": ")
	case speaker != "":
		buf.WriteString("[" + speaker + "]: ")
	}

	msg := strings.TrimSpace(record.Message)
	if msg == "" {
		msg = "(no message)"
	}
	buf.WriteString(msg)

	if h.addSource {
		if src := record.Source(); src != nil {
			fmt.Fprintf(&buf, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}

	for _, f := range body {
		if f.key == "" {
			continue
		}
		value := f.value
		if f.key == FieldFile && value.Kind() == slog.KindString {
			value = slog.StringValue(filepath.Base(value.String()))
		}
		buf.WriteByte(' ')
		buf.WriteString(f.key)
		buf.WriteByte('=')
		buf.WriteString(formatValue(value))
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]field, len(h.attrs), len(h.attrs)+len(attrs))
	copy(clone.attrs, h.attrs)
	for _, attr := range attrs {
		clone.attrs = appendField(clone.attrs, h.groups, attr)
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

// appendField flattens attr into dotted keys under the open groups.
func appendField(dst []field, groups []string, attr slog.Attr) []field {
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	value := attr.Value.Resolve()
	if value.Kind() == slog.KindGroup {
		inner := groups
		if attr.Key != "" {
			inner = append(append([]string(nil), groups...), attr.Key)
		}
		for _, a := range value.Group() {
			dst = appendField(dst, inner, a)
		}
		return dst
	}
	key := attr.Key
	if len(groups) > 0 {
		key = strings.Join(append(append([]string(nil), groups...), key), ".")
	}
	return append(dst, field{key: key, value: value})
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindDuration:
		return v.Duration().Round(time.Millisecond).String()
	case slog.KindTime:
		return v.Time().Local().Format(consoleTimeFormat)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if needsQuotes(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' {
			return true
		}
	}
	return false
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
