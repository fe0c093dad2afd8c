package stalls

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/klytics/stallkit/internal/formats/xlsx"
)

func TestRowEntry(t *testing.T) {
	r := Row{Title: "Pizza", StallNo: "A1", Description: "Cheesy"}
	assert.Equal(t, "{title: 'Pizza - A1', description: 'Cheesy'}", r.Entry())
}

func TestGroupRender(t *testing.T) {
	g := Group{Category: "Food", Rows: []Row{
		{Title: "Pizza", StallNo: "A1", Description: "Cheesy"},
		{Title: "Soda", StallNo: "B2", Description: "Cold"},
	}}

	assert.Equal(t,
		"{title: 'Pizza - A1', description: 'Cheesy'}, {title: 'Soda - B2', description: 'Cold'}",
		g.Render())
	assert.Equal(t, "", Group{}.Render())
}

func TestFromSheet(t *testing.T) {
	sheet := &xlsx.Sheet{
		Name: "Stalls",
		Rows: [][]string{
			{"Description", "Stall_No", "Title", "Category"},
			{"Cheesy", "A1", "Pizza", "Food"},
			{"Cold", "B2", "Soda"},
		},
	}

	rows, err := FromSheet(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{Line: 2, Category: "Food", Title: "Pizza", StallNo: "A1", Description: "Cheesy"}, rows[0])
	assert.Equal(t, "", rows[1].Category)
}

func TestFromSheetMissingColumn(t *testing.T) {
	sheet := &xlsx.Sheet{Name: "Stalls", Rows: [][]string{{"Category", "Title", "Description"}}}

	_, err := FromSheet(sheet)

	var missing *xlsx.MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{ColumnStallNo}, missing.Columns)
}

func TestGroupByCategory(t *testing.T) {
	rows := []Row{
		{Line: 2, Category: "Food"},
		{Line: 3, Category: "Crafts"},
		{Line: 4, Category: "Food"},
		{Line: 5, Category: "food"},
	}

	groups := GroupByCategory(rows)
	require.Len(t, groups, 3)
	assert.Equal(t, "Food", groups[0].Category)
	assert.Equal(t, []int{2, 4}, lines(groups[0].Rows))
	assert.Equal(t, "Crafts", groups[1].Category)
	assert.Equal(t, "food", groups[2].Category, "grouping is case-sensitive")

	assert.Empty(t, GroupByCategory(nil))
}

func TestPropertyGroupingPartitionsRows(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 50).Draw(t, "n")
		rows := make([]Row, n)
		for i := range rows {
			rows[i] = Row{
				Line:     i + 2,
				Category: rapid.SampledFrom([]string{"Food", "Drinks", "Crafts", ""}).Draw(t, "category"),
				Title:    fmt.Sprintf("t%d", i),
			}
		}

		groups := GroupByCategory(rows)

		seen := make(map[int]int)
		categories := make(map[string]bool)
		for _, g := range groups {
			if categories[g.Category] {
				t.Fatalf("category %q appears in two groups", g.Category)
			}
			categories[g.Category] = true
			last := 0
			for _, r := range g.Rows {
				if r.Category != g.Category {
					t.Fatalf("row %d with category %q in group %q", r.Line, r.Category, g.Category)
				}
				if r.Line <= last {
					t.Fatalf("group %q out of input order", g.Category)
				}
				last = r.Line
				seen[r.Line]++
			}
			if got := strings.Count(g.Render(), "{title: "); got != len(g.Rows) {
				t.Fatalf("group %q rendered %d entries for %d rows", g.Category, got, len(g.Rows))
			}
		}
		if len(seen) != n {
			t.Fatalf("grouped %d rows, want %d", len(seen), n)
		}
		for line, count := range seen {
			if count != 1 {
				t.Fatalf("row %d grouped %d times", line, count)
			}
		}
	})
}

func lines(rows []Row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Line
	}
	return out
}
