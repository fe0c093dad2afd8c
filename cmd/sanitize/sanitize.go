// Package sanitize provides the "stallkit sanitize" command.
package sanitize

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klytics/stallkit/internal/cli"
	"github.com/klytics/stallkit/internal/output"
	"github.com/klytics/stallkit/internal/sanitize"
)

type nameResult struct {
	Input    string `json:"input"`
	Filename string `json:"filename"`
}

// NewCommand returns the sanitize command.
func NewCommand() *cobra.Command {
	var preserveUnderscores bool

	cmd := &cobra.Command{
		Use:   "sanitize <text> [text...]",
		Short: "Show the file name a category would be written to",
		Long: `Prints the sanitized file stem for each argument, one per line. An empty
line means the category has no usable name and would use the fallback name.

Example:
  stallkit sanitize "Arts & Crafts:" "Street__Food"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			env := cli.FromContext(cmd.Context())

			opts := sanitize.Options{PreserveUnderscoreRuns: env.Config.Sanitize.PreserveUnderscoreRuns}
			if cmd.Flags().Changed("preserve-underscores") {
				opts.PreserveUnderscoreRuns = preserveUnderscores
			}

			results := make([]nameResult, 0, len(args))
			for _, a := range args {
				results = append(results, nameResult{Input: a, Filename: opts.Filename(a)})
			}

			w := cmd.OutOrStdout()
			if jsonFlag {
				return output.PrintJSON(w, "sanitize", results)
			}
			for _, r := range results {
				fmt.Fprintln(w, r.Filename)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&preserveUnderscores, "preserve-underscores", false, "Keep runs of underscores")
	return cmd
}
