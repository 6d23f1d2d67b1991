// internal/dataset/preview.go
// Package dataset reads a local CSV file into the same preview shape the
// comparison API returns, and guesses which column holds the target labels.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// ErrNoRows is returned for a file with a header but no data rows.
	ErrNoRows = errors.New("CSV has no rows")
	// ErrTooFewColumns is returned when no delimiter yields two or more columns.
	ErrTooFewColumns = errors.New("CSV has fewer than 2 columns")
)

// delimiters are tried in order; the first that splits the header into two
// or more columns wins.
var delimiters = []rune{',', ';', '\t', '|'}

// sniffRecords bounds how many records are parsed while choosing a delimiter.
const sniffRecords = 20

// ColumnKind says whether every present value in a column parsed as a number.
type ColumnKind string

const (
	// Numeric columns hold only numbers (and missing cells).
	Numeric ColumnKind = "numeric"
	// Categorical columns hold at least one non-numeric value.
	Categorical ColumnKind = "categorical"
)

// Column summarises one column across all rows.
type Column struct {
	Name    string     `json:"name"`
	Kind    ColumnKind `json:"kind"`
	Missing int        `json:"missing"`
	Unique  int        `json:"unique"`
}

// Preview is a small head-check of a dataset. Row cells are nil (missing),
// float64, or string.
type Preview struct {
	Filename     string   `json:"filename"`
	Headers      []string `json:"headers"`
	NRows        int      `json:"nRows"`
	NCols        int      `json:"nCols"`
	MissingCount int      `json:"missingCount"`
	Rows         [][]any  `json:"rows"`
	Columns      []Column `json:"columns,omitempty"`
	Delimiter    string   `json:"delimiter,omitempty"`
}

// ReadPreview loads path and previews its first rows.
func ReadPreview(path string, rows int) (*Preview, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return ParsePreview(filepath.Base(path), data, rows)
}

// ParsePreview previews CSV content. rows bounds the number of body rows kept.
func ParsePreview(name string, data []byte, rows int) (*Preview, error) {
	delim, err := Sniff(data)
	if err != nil {
		return nil, err
	}
	records, err := readAll(data, delim)
	if err != nil {
		return nil, fmt.Errorf("could not read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoRows
	}
	headers := records[0]
	body := records[1:]
	if len(headers) < 2 {
		return nil, ErrTooFewColumns
	}
	if len(body) == 0 {
		return nil, ErrNoRows
	}

	p := &Preview{
		Filename:  name,
		Headers:   headers,
		NRows:     len(body),
		NCols:     len(headers),
		Delimiter: string(delim),
	}
	p.Columns, p.MissingCount = summarise(headers, body)

	if rows < 0 {
		rows = 0
	}
	if rows > len(body) {
		rows = len(body)
	}
	p.Rows = make([][]any, 0, rows)
	for _, record := range body[:rows] {
		row := make([]any, len(headers))
		for j := range headers {
			if j < len(record) {
				row[j] = cellValue(record[j])
			}
		}
		p.Rows = append(p.Rows, row)
	}
	return p, nil
}

// Sniff picks the field delimiter, falling back to a comma.
func Sniff(data []byte) (rune, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return 0, ErrNoRows
	}
	for _, d := range delimiters {
		r := newReader(bytes.NewReader(data), d)
		header, err := r.Read()
		if err != nil || len(header) < 2 {
			continue
		}
		ok := true
		for i := 0; i < sniffRecords; i++ {
			if _, err := r.Read(); err != nil {
				if !errors.Is(err, io.EOF) {
					ok = false
				}
				break
			}
		}
		if ok {
			return d, nil
		}
	}
	// A single-column file still parses with a comma; ParsePreview rejects it.
	return ',', nil
}

func newReader(r io.Reader, delim rune) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = delim != '\t'
	return reader
}

func readAll(data []byte, delim rune) ([][]string, error) {
	records, err := newReader(bytes.NewReader(data), delim).ReadAll()
	if err != nil {
		return nil, err
	}
	out := records[:0]
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// IsMissing reports whether a raw cell counts as a missing value.
func IsMissing(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "na", "nan", "null", "none", "n/a":
		return true
	}
	return false
}

func parseNumber(raw string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func cellValue(raw string) any {
	if IsMissing(raw) {
		return nil
	}
	if n, ok := parseNumber(raw); ok {
		return n
	}
	return strings.TrimSpace(raw)
}

func summarise(headers []string, body [][]string) ([]Column, int) {
	cols := make([]Column, len(headers))
	uniques := make([]map[string]struct{}, len(headers))
	for j, h := range headers {
		cols[j] = Column{Name: h, Kind: Numeric}
		uniques[j] = make(map[string]struct{})
	}
	total := 0
	for _, record := range body {
		for j := range headers {
			if j >= len(record) || IsMissing(record[j]) {
				cols[j].Missing++
				total++
				continue
			}
			value := strings.TrimSpace(record[j])
			uniques[j][value] = struct{}{}
			if _, ok := parseNumber(value); !ok {
				cols[j].Kind = Categorical
			}
		}
	}
	for j := range cols {
		cols[j].Unique = len(uniques[j])
	}
	return cols, total
}

// HeaderRow returns only the header record, using the sniffed delimiter.
func HeaderRow(data []byte) ([]string, error) {
	delim, err := Sniff(data)
	if err != nil {
		return nil, err
	}
	header, err := newReader(bytes.NewReader(data), delim).Read()
	if err != nil {
		return nil, fmt.Errorf("could not read CSV header: %w", err)
	}
	return header, nil
}
