// Package cmd contains all CLI commands for the stallkit binary.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/klytics/stallkit/cmd/batch"
	"github.com/klytics/stallkit/cmd/completion"
	cmdconfig "github.com/klytics/stallkit/cmd/config"
	"github.com/klytics/stallkit/cmd/convert"
	"github.com/klytics/stallkit/cmd/preview"
	"github.com/klytics/stallkit/cmd/sample"
	cmdsanitize "github.com/klytics/stallkit/cmd/sanitize"
	cmdshell "github.com/klytics/stallkit/cmd/shell"
	"github.com/klytics/stallkit/cmd/version"
	cmdwatch "github.com/klytics/stallkit/cmd/watch"
	"github.com/klytics/stallkit/internal/cli"
	"github.com/klytics/stallkit/internal/config"
	"github.com/klytics/stallkit/internal/logging"
	"github.com/klytics/stallkit/internal/output"
	shellpkg "github.com/klytics/stallkit/internal/shell"
)

func init() {
	shellpkg.DefaultRunner = runInProcess
}

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var (
		jsonOutput bool
		verbose    bool
		noColor    bool
	)

	rootCmd := &cobra.Command{
		Use:   "stallkit",
		Short: "Split a market stall spreadsheet into one listing per category",
		Long: `stallkit reads an .xlsx sheet of market stalls (Category, Title, Stall_No,
Description), groups the rows by category and writes one <category>.txt file
per group with entries like:

  {title: 'Pizza - A1', description: 'Cheesy'}, {title: 'Soda - B2', description: 'Cold'}`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				if !isConfigCommand(cmd) {
					return fmt.Errorf("could not load config: %w (repair it with 'stallkit config set' or 'stallkit config reset')", err)
				}
				// Config commands run on defaults so a broken file can be repaired.
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s, using defaults\n", color.YellowString("Warning:"), err)
				cfg = config.Defaults()
			}
			if noColor || !cfg.Output.Color {
				color.NoColor = true
			}

			level := cfg.Log.Level
			if verbose {
				level = "debug"
			}
			logger, err := logging.New(level, cfg.Log.Format)
			if err != nil {
				// Keep config commands usable so the setting can be fixed.
				logger, _ = logging.New("warn", logging.FormatConsole)
				logger.Warn("invalid logging config, using defaults", zap.Error(err))
			}

			cmd.SetContext(cli.WithEnv(cmd.Context(), &cli.Env{Config: cfg, Logger: logger}))
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	rootCmd.AddCommand(convert.NewCommand())
	rootCmd.AddCommand(preview.NewCommand())
	rootCmd.AddCommand(cmdsanitize.NewCommand())
	rootCmd.AddCommand(sample.NewCommand())
	rootCmd.AddCommand(batch.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(cmdshell.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// Execute runs the root command and exits with a status derived from the error.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("Error:"), err)
		}
		os.Exit(output.ExitCode(err))
	}
}

// isConfigCommand reports whether cmd is "config" or one of its subcommands.
func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c.HasParent(); c = c.Parent() {
		if c.Name() == "config" && !c.Parent().HasParent() {
			return true
		}
	}
	return false
}

// runInProcess executes one shell line against a fresh command tree.
func runInProcess(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(stderr, "%s\n", err)
		}
		return err
	}
	return nil
}
