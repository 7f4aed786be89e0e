package repository

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"aita/pkg/schema"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrMissingColumns reports a header without one of the required columns.
var ErrMissingColumns = errors.New("missing required columns")

// LoadError locates a problem inside a requirements file. Line is 1-based;
// the header is line 1 and 0 means the whole file.
type LoadError struct {
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadRequirementsCSV reads requirements from a UTF-8 CSV file with a
// header row. A leading BOM is ignored and header names are trimmed.
// Any invalid row aborts the load.
func LoadRequirementsCSV(path string) ([]schema.Requirement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	reqs, err := ReadRequirements(f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return reqs, nil
}

// ReadRequirements parses requirements from r. Errors are *LoadError
// values without a path.
func ReadRequirements(r io.Reader) ([]schema.Requirement, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &LoadError{Line: 1, Err: fmt.Errorf("%w: empty file", ErrMissingColumns)}
	}
	if err != nil {
		return nil, &LoadError{Line: csvLine(err, 1), Err: err}
	}

	columns := make([]string, len(header))
	present := make(map[string]bool, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
		present[columns[i]] = true
	}

	var missing []string
	for _, field := range schema.RequiredRequirementFields {
		if !present[field] {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &LoadError{Line: 1, Err: fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))}
	}

	reqs := []schema.Requirement{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Line: csvLine(err, 0), Err: err}
		}
		line, _ := reader.FieldPos(0)

		row := make(map[string]string, len(columns))
		for i, name := range columns {
			if i < len(record) {
				row[name] = record[i]
			}
		}

		req, err := schema.NewRequirement(row)
		if err != nil {
			return nil, &LoadError{Line: line, Err: err}
		}
		reqs = append(reqs, req)
	}

	return reqs, nil
}

func csvLine(err error, fallback int) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.Line
	}
	return fallback
}
