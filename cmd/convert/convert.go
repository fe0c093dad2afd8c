// Package convert provides the "stallkit convert" command.
package convert

import (
	"github.com/spf13/cobra"

	"github.com/klytics/stallkit/internal/cli"
	conv "github.com/klytics/stallkit/internal/formats/convert"
	"github.com/klytics/stallkit/internal/output"
)

// NewCommand creates the "convert" command.
func NewCommand() *cobra.Command {
	var (
		outDir              string
		sheet               string
		dryRun              bool
		preserveUnderscores bool
	)

	cmd := &cobra.Command{
		Use:   "convert <file.xlsx>",
		Short: "Write one listing file per stall category",
		Long: `Reads the stall sheet, groups rows by Category in order of first appearance
and writes <category>.txt into the output directory. Category names are
lowercased and stripped of characters that are unsafe in file names.

Existing listings with the same name are overwritten.

Examples:
  stallkit convert market.xlsx
  stallkit convert market.xlsx --out-dir listings --sheet Saturday
  stallkit convert market.xlsx --dry-run --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			env := cli.FromContext(cmd.Context())

			if outDir == "" {
				outDir = env.Config.OutputDir
			}
			opts := env.ConvertOptions(sheet)
			opts.DryRun = dryRun
			if cmd.Flags().Changed("preserve-underscores") {
				opts.Sanitize.PreserveUnderscoreRuns = preserveUnderscores
			}

			w := cmd.OutOrStdout()
			res, err := conv.ExcelToText(args[0], outDir, opts)
			if err != nil {
				if jsonFlag {
					if jerr := output.PrintJSONError(w, "convert", err); jerr != nil {
						return jerr
					}
					return cli.Reported(err)
				}
				output.Failure(w, "Error during conversion: %v", err)
				return cli.Reported(err)
			}

			if jsonFlag {
				return output.PrintJSON(w, "convert", res)
			}

			verb := "written to"
			if res.DryRun {
				verb = "would be written to"
			}
			output.Success(w, "Conversion completed: %d category file(s) %s %s", len(res.Files), verb, res.OutputDir)
			for _, f := range res.Files {
				output.Detail(w, "%s (%s, %d %s)", f.Path, f.Category, f.Entries, plural(f.Entries, "entry", "entries"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Directory for the listing files (default from config output_dir)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read (default: first sheet)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the files that would be written without touching disk")
	cmd.Flags().BoolVar(&preserveUnderscores, "preserve-underscores", false, "Keep runs of underscores in file names")

	return cmd
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
