// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCommand returns the completion command.
func NewCommand(rootCmd *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for stallkit.

Install instructions:
  Bash:       stallkit completion bash > /etc/bash_completion.d/stallkit
              echo 'source <(stallkit completion bash)' >> ~/.bashrc
  Zsh:        stallkit completion zsh > ~/.zsh/completions/_stallkit
  Fish:       stallkit completion fish > ~/.config/fish/completions/stallkit.fish
  PowerShell: stallkit completion powershell >> $PROFILE`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				fmt.Fprintln(out, "# stallkit bash completion")
				fmt.Fprintln(out, "# Install: stallkit completion bash > /etc/bash_completion.d/stallkit")
				fmt.Fprintln(out, "# Or:      echo 'source <(stallkit completion bash)' >> ~/.bashrc")
				fmt.Fprintln(out)
				return rootCmd.GenBashCompletion(out)
			case "zsh":
				fmt.Fprintln(out, "# stallkit zsh completion")
				fmt.Fprintln(out, "# Install: stallkit completion zsh > ~/.zsh/completions/_stallkit")
				fmt.Fprintln(out)
				return rootCmd.GenZshCompletion(out)
			case "fish":
				fmt.Fprintln(out, "# stallkit fish completion")
				fmt.Fprintln(out, "# Install: stallkit completion fish > ~/.config/fish/completions/stallkit.fish")
				fmt.Fprintln(out)
				return rootCmd.GenFishCompletion(out, true)
			case "powershell":
				fmt.Fprintln(out, "# stallkit PowerShell completion")
				fmt.Fprintln(out, "# Install: stallkit completion powershell >> $PROFILE")
				fmt.Fprintln(out)
				return rootCmd.GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", args[0])
			}
		},
	}
	return cmd
}
