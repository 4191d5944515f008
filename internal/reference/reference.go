// Package reference loads the canonical script that noisy transcriptions are
// realigned against.
package reference

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Row is one canonical sentence and the character who speaks it.
type Row struct {
	Sentence  string `yaml:"sentence"`
	Character string `yaml:"character"`
}

// Table is an ordered list of reference rows.
type Table struct {
	Rows []Row
}

// Sentences returns the sentence column in row order.
func (t Table) Sentences() []string {
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row.Sentence
	}
	return out
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// Load reads a table from path. Files ending in .yaml or .yml are parsed as
// a YAML list; everything else is parsed as CSV with a header row.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read reference table: %w", err)
	}
	var table Table
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		table, err = ParseYAML(bytes.NewReader(data))
	default:
		table, err = ParseCSV(bytes.NewReader(data))
	}
	if err != nil {
		return Table{}, fmt.Errorf("parse reference table %s: %w", path, err)
	}
	return table, nil
}

// ParseCSV reads a CSV table. The header must name a sentence column;
// character is optional and other columns are ignored.
func ParseCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, errors.New("empty csv")
		}
		return Table{}, err
	}
	sentenceCol, characterCol := -1, -1
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
		switch name {
		case "sentence":
			sentenceCol = i
		case "character":
			characterCol = i
		}
	}
	if sentenceCol < 0 {
		return Table{}, errors.New("missing sentence column")
	}

	var table Table
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, err
		}
		row := Row{Sentence: field(record, sentenceCol), Character: field(record, characterCol)}
		if row.Sentence == "" {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// ParseYAML reads a YAML list of {sentence, character} mappings.
func ParseYAML(r io.Reader) (Table, error) {
	var rows []Row
	if err := yaml.NewDecoder(r).Decode(&rows); err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, nil
		}
		return Table{}, err
	}
	var table Table
	for _, row := range rows {
		row.Sentence = strings.TrimSpace(row.Sentence)
		row.Character = strings.TrimSpace(row.Character)
		if row.Sentence == "" {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
