// Package preview provides the "stallkit preview" command, which shows the
// listings a conversion would produce without writing them.
package preview

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/stallkit/internal/cli"
	conv "github.com/klytics/stallkit/internal/formats/convert"
	"github.com/klytics/stallkit/internal/formats/xlsx"
	"github.com/klytics/stallkit/internal/output"
	"github.com/klytics/stallkit/internal/stalls"
)

type listing struct {
	Category string   `json:"category"`
	File     string   `json:"file"`
	Entries  []string `json:"entries"`
	Content  string   `json:"content"`
}

type previewResult struct {
	Sheet    string    `json:"sheet"`
	Rows     int       `json:"rows"`
	Listings []listing `json:"listings"`
}

// NewCommand returns the preview command.
func NewCommand() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "preview <file.xlsx | ->",
		Short: "Print the category listings a conversion would write",
		Long: `Reads the stall sheet and prints each category with its target file name
and entries. Nothing is written. Pass "-" to read the workbook from stdin.

Examples:
  stallkit preview market.xlsx
  cat market.xlsx | stallkit preview - --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			env := cli.FromContext(cmd.Context())
			opts := env.ConvertOptions(sheet)

			wb, err := readWorkbook(cmd, args[0])
			if err != nil {
				return err
			}

			sheetName, rows, err := conv.Load(wb, opts.Sheet)
			if err != nil {
				return fmt.Errorf("could not read %s: %w", args[0], err)
			}
			targets, err := conv.Plan(stalls.GroupByCategory(rows), opts)
			if err != nil {
				return err
			}

			res := previewResult{Sheet: sheetName, Rows: len(rows)}
			for _, t := range targets {
				l := listing{Category: t.Group.Category, File: t.FileName, Content: t.Group.Render()}
				for _, r := range t.Group.Rows {
					l.Entries = append(l.Entries, r.Entry())
				}
				res.Listings = append(res.Listings, l)
			}

			w := cmd.OutOrStdout()
			if jsonFlag {
				return output.PrintJSON(w, "preview", res)
			}
			printPreview(w, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read (default: first sheet)")
	return cmd
}

func readWorkbook(cmd *cobra.Command, path string) (*xlsx.Workbook, error) {
	if path != "-" {
		return xlsx.ReadFile(path)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("could not read stdin: %w", err)
	}
	return xlsx.ReadBytes(data)
}

func printPreview(w io.Writer, res previewResult) {
	header := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.FgHiBlack)

	fmt.Fprintf(w, "Sheet %q: %d row(s), %d categor%s\n", res.Sheet, res.Rows, len(res.Listings), plural(len(res.Listings)))
	for _, l := range res.Listings {
		fmt.Fprintln(w)
		header.Fprintf(w, "%s", l.Category)
		fmt.Fprintf(w, " → %s ", l.File)
		dim.Fprintf(w, "(%d)\n", len(l.Entries))
		for _, e := range l.Entries {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
