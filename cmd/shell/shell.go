// Package shell provides the "stallkit shell" interactive REPL command.
package shell

import (
	"fmt"

	"github.com/spf13/cobra"

	shellpkg "github.com/klytics/stallkit/internal/shell"
)

// NewCommand creates the "shell" command.
func NewCommand() *cobra.Command {
	var (
		evalCmd string
		outDir  string
	)

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive stallkit shell",
		Long: `Start an interactive REPL with history and tab completion.

Use "set out <dir>" to give convert and watch a default output directory for
the rest of the session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := shellpkg.NewSession()
			if err != nil {
				return err
			}
			if outDir != "" {
				session.OutDir = outDir
			}
			if evalCmd != "" {
				out, err := session.Eval(cmd.Context(), evalCmd)
				fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}
			return session.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&evalCmd, "eval", "", "Run a single command and exit")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Default output directory for convert and watch")
	return cmd
}
