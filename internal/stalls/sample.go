package stalls

import "github.com/klytics/stallkit/internal/formats/xlsx"

// SampleWorkbook returns a small market workbook covering the awkward cases:
// repeated categories, punctuation in category names and numeric stall numbers.
func SampleWorkbook() *xlsx.Workbook {
	return &xlsx.Workbook{
		Sheets: []xlsx.Sheet{
			{
				Name: "Stalls",
				Rows: [][]string{
					append([]string(nil), RequiredColumns...),
					{"Food", "Pizza", "A1", "Cheesy"},
					{"Food", "Soda", "B2", "Cold"},
					{"Arts & Crafts:", "Pottery Corner", "C3", "Hand-thrown mugs"},
					{"Drinks", "Tea House", "D4", "Loose leaf and chai"},
					{"Arts & Crafts:", "Knit Knacks", "C7", "Scarves and hats"},
					{"Street_Food", "Taco Cart", "12", "Three tacos for a fiver"},
				},
			},
		},
	}
}
