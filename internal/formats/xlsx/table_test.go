package xlsx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecords(t *testing.T) {
	sheet := Sheet{
		Name: "Stalls",
		Rows: [][]string{
			{"Title", "Category", "Extra"},
			{"Pizza", "Food"},
			{"", ""},
			{"Soda", "Food", "x"},
		},
	}

	records, err := sheet.Records("Category", "Title")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 2, records[0].Line)
	assert.Equal(t, "Pizza", records[0].Get("Title"))
	assert.Equal(t, "", records[0].Get("Extra"), "short rows read as empty")
	assert.Equal(t, "", records[0].Get("Unknown"))
	assert.Equal(t, 4, records[1].Line)
	assert.Equal(t, "x", records[1].Get("Extra"))
}

func TestRecordsMissingColumns(t *testing.T) {
	sheet := Sheet{Name: "Stalls", Rows: [][]string{{"Title", "category"}}}

	_, err := sheet.Records("Category", "Title", "Stall_No")
	require.Error(t, err)

	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"Category", "Stall_No"}, missing.Columns)
	assert.Contains(t, err.Error(), `sheet "Stalls"`)
}

func TestRecordsEmptySheet(t *testing.T) {
	sheet := Sheet{Name: "Empty"}

	records, err := sheet.Records()
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = sheet.Records("Category")
	assert.Error(t, err)
}

func TestRecordsDuplicateHeaderUsesLeftmost(t *testing.T) {
	sheet := Sheet{Rows: [][]string{{"Title", "Title"}, {"left", "right"}}}

	records, err := sheet.Records("Title")
	require.NoError(t, err)
	assert.Equal(t, "left", records[0].Get("Title"))
}
