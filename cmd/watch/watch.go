// Package watch provides the "stallkit watch" command, which re-converts a
// workbook every time it is saved.
package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/klytics/stallkit/internal/cli"
	conv "github.com/klytics/stallkit/internal/formats/convert"
	"github.com/klytics/stallkit/internal/output"
	w "github.com/klytics/stallkit/internal/watch"
)

// NewCommand creates the "watch" command.
func NewCommand() *cobra.Command {
	var (
		outDir   string
		sheet    string
		debounce int
	)

	cmd := &cobra.Command{
		Use:   "watch <file.xlsx>",
		Short: "Re-convert a workbook whenever it changes",
		Long: `Converts the workbook once, then watches it and converts again after every
save. Press Ctrl+C to stop.

Example:
  stallkit watch market.xlsx --out-dir listings`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := cli.FromContext(cmd.Context())
			if outDir == "" {
				outDir = env.Config.OutputDir
			}
			opts := env.ConvertOptions(sheet)
			out := cmd.OutOrStdout()

			convertOnce := func(path string) error {
				res, err := conv.ExcelToText(path, outDir, opts)
				stamp := time.Now().Format("15:04:05")
				if err != nil {
					output.Failure(out, "[%s] Error during conversion: %v", stamp, err)
					return err
				}
				output.Success(out, "[%s] %d category file(s) written to %s", stamp, len(res.Files), res.OutputDir)
				return nil
			}

			// A broken workbook at startup is reported but does not stop the watch.
			if _, err := os.Stat(args[0]); err == nil {
				_ = convertOnce(args[0])
			}

			watcher, err := w.New(args[0], convertOnce, env.Logger)
			if err != nil {
				return err
			}
			if debounce > 0 {
				watcher.Debounce = time.Duration(debounce) * time.Millisecond
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", watcher.Path)
			if err := watcher.Start(ctx); err != nil && err != context.Canceled {
				return err
			}

			events := watcher.Events()
			failed := 0
			for _, e := range events {
				if e.Status == "error" {
					failed++
				}
			}
			fmt.Fprintf(out, "\nStopped. %d change(s) handled, %d failed.\n", len(events), failed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Directory for the listing files (default from config output_dir)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read (default: first sheet)")
	cmd.Flags().IntVar(&debounce, "debounce", int(w.DefaultDebounce/time.Millisecond), "Milliseconds to wait for writes to settle")

	return cmd
}
