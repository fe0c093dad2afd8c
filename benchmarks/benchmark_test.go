package benchmarks

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/klytics/stallkit/internal/formats/convert"
	"github.com/klytics/stallkit/internal/formats/xlsx"
	"github.com/klytics/stallkit/internal/sanitize"
	"github.com/klytics/stallkit/internal/stalls"
)

var sampleXlsx = filepath.Join("..", "testdata", "sample.xlsx")

// largeMarket builds a sheet with n rows spread over 40 categories.
func largeMarket(n int) *xlsx.Workbook {
	rows := [][]string{append([]string(nil), stalls.RequiredColumns...)}
	for i := 0; i < n; i++ {
		rows = append(rows, []string{
			fmt.Sprintf("Category %d!", i%40),
			fmt.Sprintf("Stall %d", i),
			fmt.Sprintf("S%d", i),
			"Something for everyone",
		})
	}
	return &xlsx.Workbook{Sheets: []xlsx.Sheet{{Name: "Stalls", Rows: rows}}}
}

// --- Sanitize Benchmarks ---

func BenchmarkSanitizeFilename(b *testing.B) {
	for i := 0; i < b.N; i++ {
		sanitize.Filename("Arts & Crafts: <Hand/Made> __ Goods??")
	}
}

// --- Grouping Benchmarks ---

func BenchmarkGroupByCategory(b *testing.B) {
	rows, err := stalls.FromSheet(&largeMarket(5000).Sheets[0])
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		stalls.GroupByCategory(rows)
	}
}

func BenchmarkRender(b *testing.B) {
	rows, err := stalls.FromSheet(&largeMarket(5000).Sheets[0])
	if err != nil {
		b.Fatal(err)
	}
	groups := stalls.GroupByCategory(rows)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, g := range groups {
			_ = g.Render()
		}
	}
}

// --- XLSX Benchmarks ---

func BenchmarkXlsxRead(b *testing.B) {
	if _, err := os.Stat(sampleXlsx); os.IsNotExist(err) {
		b.Skip("sample.xlsx not found")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := xlsx.ReadFile(sampleXlsx)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkXlsxWrite(b *testing.B) {
	wb := stalls.SampleWorkbook()
	dir := b.TempDir()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		err := xlsx.WriteFile(wb, filepath.Join(dir, "bench.xlsx"))
		if err != nil {
			b.Fatal(err)
		}
	}
}

// --- Conversion Benchmarks ---

func BenchmarkExcelToText(b *testing.B) {
	dir := b.TempDir()
	input := filepath.Join(dir, "market.xlsx")
	if err := xlsx.WriteFile(largeMarket(1000), input); err != nil {
		b.Fatal(err)
	}
	out := filepath.Join(dir, "out")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := convert.ExcelToText(input, out, convert.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExcelToTextDryRun(b *testing.B) {
	dir := b.TempDir()
	input := filepath.Join(dir, "market.xlsx")
	if err := xlsx.WriteFile(largeMarket(1000), input); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := convert.ExcelToText(input, filepath.Join(dir, "out"), convert.Options{DryRun: true}); err != nil {
			b.Fatal(err)
		}
	}
}
