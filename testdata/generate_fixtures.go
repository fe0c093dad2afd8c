//go:build ignore

// This program generates test fixture files for stallkit.
package main

import (
	"fmt"
	"os"

	"github.com/klytics/stallkit/internal/formats/xlsx"
	"github.com/klytics/stallkit/internal/stalls"
)

func main() {
	if err := generateXlsx(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating sample.xlsx: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Test fixtures generated successfully.")
}

// generateXlsx writes the sample market plus a second sheet for --sheet tests.
func generateXlsx() error {
	wb := stalls.SampleWorkbook()
	wb.Sheets = append(wb.Sheets, xlsx.Sheet{
		Name: "Sunday",
		Rows: [][]string{
			{"Category", "Title", "Stall_No", "Description"},
			{"Food", "Bagels", "A2", "Fresh at nine"},
			{"Plants", "Fern Gully", "P1", "Ferns, succulents and pots"},
			{"", "", "", ""},
			{"", "Mystery Box", "X9", "Ask inside"},
		},
	})

	return xlsx.WriteFile(wb, "testdata/sample.xlsx")
}
