package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/japaniel/wordlist/pkg/vocab"
)

// ErrBadHeader is returned when the first line is not the expected header.
var ErrBadHeader = errors.New("csv: unexpected header")

// RowError records why a single data row was skipped.
type RowError struct {
	Line   int
	German string
	Err    error
}

func (e *RowError) Error() string {
	if e.German != "" {
		return fmt.Sprintf("line %d (%s): %v", e.Line, e.German, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ImportResult holds the rows that parsed and the ones that did not.
type ImportResult struct {
	Entries []*vocab.Entry
	Errors  []*RowError
}

// Err joins the row errors, or returns nil when every row parsed.
func (r *ImportResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Export writes the header and one row per entry, sorted alphabetically.
// The caller's slice is left untouched.
func Export(w io.Writer, entries []*vocab.Entry) error {
	sorted := append([]*vocab.Entry(nil), entries...)
	vocab.Sort(sorted, vocab.SortAlphabetical)

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(Header, ",") + "\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range sorted {
		if _, err := bw.WriteString(EncodeRow(e) + "\n"); err != nil {
			return fmt.Errorf("write row %q: %w", e.German, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	return nil
}

// Import parses a header line and then every data row. A row that fails
// to decode is recorded in the result and skipped; only I/O failures and a
// wrong header abort the import.
func Import(r io.Reader, opts DecodeOptions) (*ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrBadHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				// The reader resynchronizes on the next line.
				result.Errors = append(result.Errors, &RowError{Line: perr.StartLine, Err: err})
				continue
			}
			return result, fmt.Errorf("read row: %w", err)
		}
		if isBlank(record) {
			continue
		}
		line, _ := cr.FieldPos(0)

		entry, err := DecodeRecord(record, opts)
		if err != nil {
			re := &RowError{Line: line, Err: err}
			if len(record) > colGerman {
				re.German = record[colGerman]
			}
			result.Errors = append(result.Errors, re)
			continue
		}
		result.Entries = append(result.Entries, entry)
	}
	return result, nil
}

func checkHeader(header []string) error {
	if len(header) != len(Header) {
		return fmt.Errorf("%w: got %d columns, want %d", ErrBadHeader, len(header), len(Header))
	}
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		if !strings.EqualFold(strings.TrimSpace(name), Header[i]) {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i+1, name, Header[i])
		}
	}
	return nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
