// Package sheets fetches published spreadsheet exports and splits them into
// header-keyed rows.
package sheets

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row is one data line of an export, keyed by its (trimmed) header cell.
// Cells missing from a short line are absent from the map.
type Row map[string]string

// Get returns the raw cell for key.
func (r Row) Get(key string) string {
	return r[key]
}

// First returns the first candidate key whose cell is present and not blank.
// Candidates are tried in order, so callers list the preferred spelling first.
func (r Row) First(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// FirstOr is First with a fallback for when no candidate is present.
func (r Row) FirstOr(fallback string, keys ...string) string {
	if v, ok := r.First(keys...); ok {
		return v
	}
	return fallback
}

// ParseError reports a document that could not be split into rows.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("parse delimited text: %v", e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrNoHeader is returned for a document without a header line.
var ErrNoHeader = errors.New("missing header row")

// Parse splits comma-delimited text into rows keyed by the first line.
// A leading byte-order mark is dropped, blank lines (including lines made of
// empty cells) are skipped, and ragged lines are tolerated. Broken quoting is
// an error.
func Parse(text string) ([]Row, error) {
	text = strings.TrimPrefix(text, "\ufeff")

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, &ParseError{Err: ErrNoHeader}
	}
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		if blank(record) {
			continue
		}

		row := make(Row, len(header))
		for i, cell := range record {
			if i >= len(header) {
				break
			}
			key := header[i]
			if _, dup := row[key]; dup {
				continue
			}
			row[key] = cell
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
