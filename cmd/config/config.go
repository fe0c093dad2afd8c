// Package config provides CLI commands for configuration management.
package config

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/stallkit/internal/cli"
	"github.com/klytics/stallkit/internal/config"
	"github.com/klytics/stallkit/internal/output"
)

// NewCommand returns the config command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage stallkit configuration",
		Long: `View and modify stallkit settings stored in ~/.stallkit/config.yaml.

Every key can also be set with a STALLKIT_* environment variable or in a .env
file in the working directory, e.g. STALLKIT_OUTPUT_DIR=listings.`,
	}

	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newSetCommand())
	cmd.AddCommand(newGetCommand())
	cmd.AddCommand(newResetCommand())
	cmd.AddCommand(newPathCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newEnvCommand())

	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			if jsonFlag {
				return output.PrintJSON(cmd.OutOrStdout(), "config show", cli.FromContext(cmd.Context()).Config)
			}
			fmt.Fprint(cmd.OutOrStdout(), config.ShowConfig())
			return nil
		},
	}
}

func newSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Set a configuration value",
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.Keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Set(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
}

func newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "get <key>",
		Short:     "Get a configuration value",
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.Keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			val := config.Get(args[0])
			if val == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: (not set)\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], val)
			}
			return nil
		},
	}
}

func newResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ResetConfig(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults")
			return nil
		},
	}
}

func newPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.ConfigPath())
		},
	}
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			w := cmd.OutOrStdout()

			issues := config.Validate(cli.FromContext(cmd.Context()).Config)
			if jsonFlag {
				return output.PrintJSON(w, "config validate", issues)
			}

			errCount := 0
			for _, issue := range issues {
				if issue.Severity == "error" {
					errCount++
				}
			}
			if len(issues) == 0 {
				color.New(color.FgGreen).Fprintln(w, "Configuration is valid")
				return nil
			}

			fmt.Fprintf(w, "Config validation: %d errors, %d warnings\n\n", errCount, len(issues)-errCount)
			for _, issue := range issues {
				if issue.Severity == "error" {
					color.New(color.FgRed).Fprintf(w, "  %s\n", issue.Message)
				} else {
					color.New(color.FgYellow).Fprintf(w, "  %s\n", issue.Message)
				}
				if issue.Fix != "" {
					fmt.Fprintf(w, "   Fix: %s\n", issue.Fix)
				}
			}
			if errCount > 0 {
				return cli.Reported(fmt.Errorf("configuration has %d error(s)", errCount))
			}
			return nil
		},
	}
}

func newEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Export configuration as environment variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			if jsonFlag {
				return output.PrintJSON(cmd.OutOrStdout(), "config env", config.ToEnv())
			}
			for _, line := range config.SortedEnv() {
				fmt.Fprintf(cmd.OutOrStdout(), "export %s\n", line)
			}
			return nil
		},
	}
}
