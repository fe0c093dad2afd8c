// Package sample provides the "stallkit sample" command.
package sample

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/klytics/stallkit/internal/formats/xlsx"
	"github.com/klytics/stallkit/internal/output"
	"github.com/klytics/stallkit/internal/stalls"
)

// NewCommand returns the sample command.
func NewCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sample [file.xlsx]",
		Short: "Write an example stall workbook",
		Long: `Writes a small workbook with the Category, Title, Stall_No and Description
columns filled in, as a starting point for your own sheet.

Example:
  stallkit sample market.xlsx
  stallkit convert market.xlsx`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			path := "stalls.xlsx"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite it", path)
			}

			wb := stalls.SampleWorkbook()
			if err := xlsx.WriteFile(wb, path); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			rows := wb.Sheets[0].RowCount() - 1
			if jsonFlag {
				return output.PrintJSON(w, "sample", map[string]interface{}{"path": path, "rows": rows})
			}
			output.Success(w, "Wrote %s (%d stall rows)", path, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
