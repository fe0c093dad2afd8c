// Package xlsx reads and writes .xlsx workbooks as plain string grids.
package xlsx

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// ErrNoSheets is returned when a workbook has no worksheet to read from.
var ErrNoSheets = errors.New("workbook has no sheets")

// Sheet is one worksheet's cells as displayed text, row by row.
type Sheet struct {
	Name string     `json:"name"`
	Rows [][]string `json:"rows"`
}

// Workbook is a parsed .xlsx file, sheets in tab order.
type Workbook struct {
	Sheets []Sheet `json:"sheets"`
}

// ReadFile opens the workbook at path and loads every sheet.
func ReadFile(path string) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("could not stat %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s, is this a valid .xlsx file? %w", path, err)
	}
	defer f.Close()

	return readWorkbook(f)
}

// ReadBytes loads a workbook from memory, e.g. when piped through stdin.
func ReadBytes(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not read Excel data: %w", err)
	}
	defer f.Close()

	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) (*Workbook, error) {
	wb := &Workbook{}

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("could not read sheet %q: %w", name, err)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Rows: rows})
	}

	return wb, nil
}

// GetSheet returns the sheet called name.
func (wb *Workbook) GetSheet(name string) (*Sheet, error) {
	for i := range wb.Sheets {
		if wb.Sheets[i].Name == name {
			return &wb.Sheets[i], nil
		}
	}

	available := make([]string, len(wb.Sheets))
	for i, s := range wb.Sheets {
		available[i] = s.Name
	}
	return nil, fmt.Errorf("sheet %q not found, available sheets: %v", name, available)
}

// Sheet returns the named sheet, or the first sheet when name is empty.
func (wb *Workbook) Sheet(name string) (*Sheet, error) {
	if name != "" {
		return wb.GetSheet(name)
	}
	if len(wb.Sheets) == 0 {
		return nil, ErrNoSheets
	}
	return &wb.Sheets[0], nil
}

// RowCount returns the number of rows holding at least one non-empty cell.
func (s *Sheet) RowCount() int {
	count := 0
	for _, row := range s.Rows {
		if !isBlank(row) {
			count++
		}
	}
	return count
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
