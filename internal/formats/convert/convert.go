// Package convert splits a stall workbook into one text listing per category.
// Everything runs in-process and sequentially: one file is written at a time.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/klytics/stallkit/internal/formats/xlsx"
	"github.com/klytics/stallkit/internal/sanitize"
	"github.com/klytics/stallkit/internal/stalls"
)

// DefaultFallbackName is the file stem used for a category that sanitizes to nothing.
const DefaultFallbackName = "uncategorized"

// Extension is appended to every sanitized category name.
const Extension = ".txt"

// Options tunes a conversion. The zero value converts the first sheet.
type Options struct {
	// Sheet selects a worksheet by name; empty means the first sheet.
	Sheet string
	// FallbackName replaces an empty sanitized stem.
	FallbackName string
	// Sanitize controls how category text becomes a file name.
	Sanitize sanitize.Options
	// DryRun plans the output files without creating or writing anything.
	DryRun bool
	// Logger receives debug and error events. Nil disables logging.
	Logger *zap.Logger
}

// File describes one category listing.
type File struct {
	Category string `json:"category"`
	Path     string `json:"path"`
	Entries  int    `json:"entries"`
	Bytes    int    `json:"bytes"`
}

// Result summarizes a successful conversion.
type Result struct {
	RunID     string `json:"runId"`
	Input     string `json:"input"`
	OutputDir string `json:"outputDir"`
	Sheet     string `json:"sheet"`
	Rows      int    `json:"rows"`
	Files     []File `json:"files"`
	DryRun    bool   `json:"dryRun,omitempty"`
}

// ExcelToText reads the stall sheet at inputPath and writes one listing per
// category into outputDir, creating the directory when needed. Existing files
// with the same names are overwritten. On failure the returned error is an
// *Error; files written before the failing step are left in place.
func ExcelToText(inputPath, outputDir string, opts Options) (*Result, error) {
	id := uuid.NewString()
	log := opts.logger().With(zap.String("run_id", id))
	res, err := run(id, inputPath, outputDir, opts, log)
	if err != nil {
		log.Error("conversion failed", zap.String("input", inputPath), zap.Error(err))
		return nil, err
	}
	return res, nil
}

func run(id, inputPath, outputDir string, opts Options, log *zap.Logger) (*Result, error) {
	if !opts.DryRun {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, &Error{Stage: StagePrepare, Path: outputDir, Err: fmt.Errorf("could not create output directory: %w", err)}
		}
	}

	wb, err := xlsx.ReadFile(inputPath)
	if err != nil {
		return nil, &Error{Stage: StageRead, Path: inputPath, Err: err}
	}
	sheetName, rows, err := Load(wb, opts.Sheet)
	if err != nil {
		return nil, &Error{Stage: StageRead, Path: inputPath, Err: err}
	}
	log.Debug("loaded sheet", zap.String("input", inputPath), zap.String("sheet", sheetName), zap.Int("rows", len(rows)))

	targets, err := Plan(stalls.GroupByCategory(rows), opts)
	if err != nil {
		return nil, &Error{Stage: StageGroup, Path: inputPath, Err: err}
	}
	log.Debug("planned listings", zap.Int("categories", len(targets)))

	res := &Result{
		RunID:     id,
		Input:     inputPath,
		OutputDir: outputDir,
		Sheet:     sheetName,
		Rows:      len(rows),
		DryRun:    opts.DryRun,
	}

	for _, t := range targets {
		path := filepath.Join(outputDir, t.FileName)
		content := t.Group.Render()

		if !opts.DryRun {
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return nil, &Error{Stage: StageWrite, Path: path, Err: fmt.Errorf("could not write %s: %w", path, err)}
			}
			log.Debug("wrote listing", zap.String("category", t.Group.Category), zap.String("path", path), zap.Int("entries", len(t.Group.Rows)))
		}

		res.Files = append(res.Files, File{
			Category: t.Group.Category,
			Path:     path,
			Entries:  len(t.Group.Rows),
			Bytes:    len(content),
		})
	}

	return res, nil
}

// Load picks the sheet to convert and reads its stall rows.
func Load(wb *xlsx.Workbook, sheet string) (string, []stalls.Row, error) {
	s, err := wb.Sheet(sheet)
	if err != nil {
		return "", nil, err
	}
	rows, err := stalls.FromSheet(s)
	if err != nil {
		return "", nil, err
	}
	return s.Name, rows, nil
}

// ExcelToFormattedText converts with default options, prints a one-line status
// to stdout and reports whether every listing was written.
func ExcelToFormattedText(excelFilePath, outputDir string) bool {
	return Report(os.Stdout, excelFilePath, outputDir, Options{})
}

// Report runs ExcelToText and writes a one-line status to w.
func Report(w io.Writer, inputPath, outputDir string, opts Options) bool {
	res, err := ExcelToText(inputPath, outputDir, opts)
	if err != nil {
		fmt.Fprintf(w, "Error during conversion: %v\n", err)
		return false
	}
	fmt.Fprintf(w, "Conversion completed: %d category file(s) written to %s\n", len(res.Files), res.OutputDir)
	return true
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) fallbackName() string {
	if o.FallbackName == "" {
		return DefaultFallbackName
	}
	return o.FallbackName
}
