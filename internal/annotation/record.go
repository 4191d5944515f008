package annotation

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"voiceprep/internal/fileutil"
)

// Separator splits the columns of an annotation line.
const Separator = "|"

// ErrMalformedLine reports a non-blank line without a separator.
var ErrMalformedLine = errors.New("malformed annotation line")

// Record associates an audio file with its (usually language-tagged) text.
type Record struct {
	Path string
	Text string
}

// String renders the record in line form without a trailing newline.
func (r Record) String() string {
	return r.Path + Separator + r.Text
}

// AlignedRecord is a realigned annotation carrying the speaking character.
type AlignedRecord struct {
	Path      string
	Character string
	Text      string
}

func (r AlignedRecord) String() string {
	return r.Path + Separator + r.Character + Separator + r.Text
}

// ParseLine splits line on its first separator. Text may itself contain the
// separator.
func ParseLine(line string) (Record, error) {
	path, text, ok := strings.Cut(line, Separator)
	if !ok {
		return Record{}, ErrMalformedLine
	}
	return Record{Path: path, Text: text}, nil
}

// Parse reads records from r, skipping blank lines.
func Parse(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var records []Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		record, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ReadFile loads every record in path.
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	records, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// WriteFile atomically replaces path with one line per record.
func WriteFile(path string, records []Record) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		for _, record := range records {
			if _, err := io.WriteString(w, record.String()+"\n"); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteAlignedFile atomically replaces path with one line per aligned record.
func WriteAlignedFile(path string, records []AlignedRecord) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		for _, record := range records {
			if _, err := io.WriteString(w, record.String()+"\n"); err != nil {
				return err
			}
		}
		return nil
	})
}

// PathSet returns the set of audio paths already present in records.
func PathSet(records []Record) map[string]struct{} {
	set := make(map[string]struct{}, len(records))
	for _, record := range records {
		set[record.Path] = struct{}{}
	}
	return set
}
