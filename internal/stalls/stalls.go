// Package stalls models market stall rows and renders them as category listings.
package stalls

import (
	"fmt"
	"strings"

	"github.com/klytics/stallkit/internal/formats/xlsx"
)

// Column names a stall sheet must carry. Matching is exact and case-sensitive.
const (
	ColumnCategory    = "Category"
	ColumnTitle       = "Title"
	ColumnStallNo     = "Stall_No"
	ColumnDescription = "Description"
)

// RequiredColumns lists every header FromSheet validates.
var RequiredColumns = []string{ColumnCategory, ColumnTitle, ColumnStallNo, ColumnDescription}

// EntrySeparator joins the entries of one category.
const EntrySeparator = ", "

// Row is one stall as read from the spreadsheet.
type Row struct {
	Line        int    `json:"line"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	StallNo     string `json:"stallNo"`
	Description string `json:"description"`
}

// Entry renders the row as {title: '<Title> - <Stall_No>', description: '<Description>'}.
// Cell text is inserted verbatim.
func (r Row) Entry() string {
	return fmt.Sprintf("{title: '%s - %s', description: '%s'}", r.Title, r.StallNo, r.Description)
}

// Group is every row sharing one Category value, in input order.
type Group struct {
	Category string `json:"category"`
	Rows     []Row  `json:"rows"`
}

// Render joins the entries of every row in the group. There is no trailing newline.
func (g Group) Render() string {
	entries := make([]string, len(g.Rows))
	for i, r := range g.Rows {
		entries[i] = r.Entry()
	}
	return strings.Join(entries, EntrySeparator)
}

// FromSheet converts the sheet's data rows into typed stall rows. The header
// row must name all of RequiredColumns.
func FromSheet(sheet *xlsx.Sheet) ([]Row, error) {
	records, err := sheet.Records(RequiredColumns...)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row{
			Line:        rec.Line,
			Category:    rec.Get(ColumnCategory),
			Title:       rec.Get(ColumnTitle),
			StallNo:     rec.Get(ColumnStallNo),
			Description: rec.Get(ColumnDescription),
		}
	}
	return rows, nil
}

// GroupByCategory partitions rows by exact Category equality. Groups come back
// in order of first appearance; rows keep their input order.
func GroupByCategory(rows []Row) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, r := range rows {
		i, ok := index[r.Category]
		if !ok {
			i = len(groups)
			index[r.Category] = i
			groups = append(groups, Group{Category: r.Category})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}
	return groups
}
