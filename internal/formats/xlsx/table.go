package xlsx

import (
	"fmt"
	"strings"
)

// MissingColumnError reports header names a sheet was required to carry.
type MissingColumnError struct {
	Sheet   string
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("sheet %q is missing required column(s): %s", e.Sheet, strings.Join(e.Columns, ", "))
}

// Record is one data row addressed by header name.
type Record struct {
	// Line is the 1-based spreadsheet row number.
	Line   int
	cells  []string
	lookup map[string]int
}

// Get returns the cell under column, or "" when the row is short.
func (r Record) Get(column string) string {
	i, ok := r.lookup[column]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

// Header returns the first row of the sheet.
func (s *Sheet) Header() []string {
	if len(s.Rows) == 0 {
		return nil
	}
	return s.Rows[0]
}

// Records treats the first row as the header and returns every following
// non-blank row. Header names are matched exactly; all required names must be
// present or a *MissingColumnError is returned. When a header name repeats, the
// leftmost column wins.
func (s *Sheet) Records(required ...string) ([]Record, error) {
	lookup := make(map[string]int)
	for i, name := range s.Header() {
		if _, dup := lookup[name]; !dup {
			lookup[name] = i
		}
	}

	var missing []string
	for _, name := range required {
		if _, ok := lookup[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Sheet: s.Name, Columns: missing}
	}

	var records []Record
	for i := 1; i < len(s.Rows); i++ {
		if isBlank(s.Rows[i]) {
			continue
		}
		records = append(records, Record{Line: i + 1, cells: s.Rows[i], lookup: lookup})
	}
	return records, nil
}
