package csvload

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vvka-141/csv2table/pkg/csv2table"
)

// Load reads the file at path. See Read for the parsing rules.
func Load(path, hint string) ([]csv2table.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", csv2table.ErrParse, path, err)
	}
	defer f.Close()

	records, err := Read(f, hint)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Read parses delimited text into records.
//
// The delimiter comes from hint (see ResolveDelimiter) or, if hint is empty,
// from the first line (see DetectDelimiter). A header-only input yields zero
// records and no error.
func Read(r io.Reader, hint string) ([]csv2table.Record, error) {
	delim, ok, err := ResolveDelimiter(hint)
	if err != nil {
		return nil, err
	}

	data, err := decode(r)
	if err != nil {
		return nil, err
	}
	if !ok {
		delim = DetectDelimiter(data)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header row", csv2table.ErrParse)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", csv2table.ErrParse, err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var records []csv2table.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", csv2table.ErrParse, err)
		}
		if len(row) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d",
				csv2table.ErrParse, line, len(row), len(header))
		}
		// A short row still carries every header key; the missing tail binds NULL.
		records = append(records, csv2table.NewRecord(header, row))
	}

	return records, nil
}

func checkHeader(header []string) error {
	seen := make(map[string]int, len(header))
	for i, name := range header {
		if name == "" {
			return fmt.Errorf("%w: header column %d is empty", csv2table.ErrParse, i+1)
		}
		if prev, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate header %q in columns %d and %d",
				csv2table.ErrParse, name, prev+1, i+1)
		}
		seen[name] = i
	}
	return nil
}
