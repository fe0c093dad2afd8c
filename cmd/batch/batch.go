// Package batch provides the "stallkit batch" command for converting several
// workbooks described in one YAML file.
package batch

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klytics/stallkit/internal/cli"
	"github.com/klytics/stallkit/internal/jobs"
	"github.com/klytics/stallkit/internal/output"
	"github.com/klytics/stallkit/internal/progress"
)

type batchSummary struct {
	Name      string        `json:"name"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Results   []jobs.Result `json:"results"`
}

// NewCommand returns the batch subcommand.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <jobs.yaml>",
		Short: "Convert every workbook listed in a jobs file",
		Long: `Runs the jobs of a YAML file one after another. A failing job stops the
batch unless it sets on_failure: continue.

Paths may use ${{ env.NAME }} and ${{ date.today }}.

Example jobs.yaml:
  name: weekend-market
  output_dir: listings/${{ date.today }}
  jobs:
    - id: saturday
      input: saturday.xlsx
    - id: sunday
      input: sunday.xlsx
      sheet: Stalls
      on_failure: continue`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			env := cli.FromContext(cmd.Context())

			f, err := jobs.LoadFile(args[0])
			if err != nil {
				return err
			}
			runner := jobs.NewRunner(env.ConvertOptions(""), env.Logger)
			runner.OutputDir = env.Config.OutputDir
			bar := progress.New(cmd.ErrOrStderr(), "Jobs", len(f.Jobs))
			if jsonFlag {
				bar.Enabled = false
			}
			runner.OnDone = func(r jobs.Result) { bar.Increment(r.JobID) }
			results, runErr := runner.Run(cmd.Context(), f)
			bar.Finish()

			summary := batchSummary{Name: f.Name, Results: results}
			for _, r := range results {
				if r.Err != nil {
					summary.Failed++
				} else {
					summary.Succeeded++
				}
			}

			w := cmd.OutOrStdout()
			if jsonFlag {
				if runErr != nil {
					if err := output.PrintJSONError(w, "batch", runErr); err != nil {
						return err
					}
					return cli.Reported(runErr)
				}
				return output.PrintJSON(w, "batch", summary)
			}

			for i, r := range results {
				prefix := fmt.Sprintf("[%d/%d] %s", i+1, len(f.Jobs), r.JobID)
				if r.Err != nil {
					output.Failure(w, "%s: %s", prefix, r.Error)
					continue
				}
				output.Success(w, "%s: %d category file(s) written to %s", prefix, len(r.Result.Files), r.Result.OutputDir)
			}
			fmt.Fprintf(w, "\nRan %d of %d job(s). %d succeeded, %d failed.\n", len(results), len(f.Jobs), summary.Succeeded, summary.Failed)

			if runErr == nil {
				return nil
			}
			if n := len(results); n > 0 && results[n-1].Err != nil {
				return cli.Reported(runErr)
			}
			return runErr
		},
	}

	return cmd
}
