// Package shell provides the interactive stallkit REPL.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/chzyer/readline"
)

// CommandRunner executes a stallkit command line and writes its output.
// cmd/shell sets it to avoid an import cycle with the command tree.
type CommandRunner func(ctx context.Context, args []string, stdout, stderr io.Writer) error

// DefaultRunner is the command runner used by shell sessions.
var DefaultRunner CommandRunner

// Session holds the state of one interactive shell.
type Session struct {
	// OutDir is appended as --out-dir to convert and watch when the line has none.
	OutDir         string
	LastOutput     string
	CommandHistory []string
	HistoryFile    string
	StartTime      time.Time

	// KnownCommands is the list of top-level commands for completion.
	KnownCommands []string
}

// NewSession creates a session with its history kept under ~/.stallkit.
func NewSession() (*Session, error) {
	home, _ := os.UserHomeDir()
	histFile := filepath.Join(home, ".stallkit", "shell_history")
	if err := os.MkdirAll(filepath.Dir(histFile), 0755); err != nil {
		return nil, fmt.Errorf("could not create history directory: %w", err)
	}

	return &Session{
		HistoryFile: histFile,
		StartTime:   time.Now(),
		KnownCommands: []string{
			"convert", "preview", "sanitize", "sample", "batch", "watch",
			"config", "completion", "version",
			"help", "exit", "quit", "history", "set",
		},
	}, nil
}

// Run starts the REPL loop. Blocks until 'exit' or Ctrl+D.
func (s *Session) Run(ctx context.Context) error {
	if DefaultRunner == nil {
		return fmt.Errorf("shell runner not configured")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "stallkit> ",
		HistoryFile:     s.HistoryFile,
		AutoComplete:    readline.NewPrefixCompleter(s.buildCompleter()...),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println("stallkit interactive shell")
	fmt.Println("Type 'help' for commands, 'exit' to quit.")
	fmt.Println()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.CommandHistory = append(s.CommandHistory, line)

		switch {
		case line == "exit" || line == "quit":
			fmt.Printf("\nSession ended. %d commands run in %s.\n",
				len(s.CommandHistory)-1, formatDuration(time.Since(s.StartTime)))
			return nil
		case line == "help":
			s.printHelp()
		case line == "history":
			for i, cmd := range s.CommandHistory {
				fmt.Printf("  %d  %s\n", i+1, cmd)
			}
		case strings.HasPrefix(line, "set out "):
			s.OutDir = strings.TrimSpace(strings.TrimPrefix(line, "set out "))
			fmt.Printf("Default output directory: %s\n", s.OutDir)
		default:
			output, err := s.Eval(ctx, line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			} else if output != "" {
				fmt.Print(output)
				if !strings.HasSuffix(output, "\n") {
					fmt.Println()
				}
			}
		}
	}

	return nil
}

// Eval runs a single command line and returns what it printed to stdout.
func (s *Session) Eval(ctx context.Context, command string) (string, error) {
	if DefaultRunner == nil {
		return "", fmt.Errorf("shell runner not configured")
	}

	args := s.withDefaults(strings.Fields(command))
	if len(args) == 0 {
		return "", nil
	}

	var stdout, stderr bytes.Buffer
	err := DefaultRunner(ctx, args, &stdout, &stderr)

	output := stdout.String()
	s.LastOutput = output

	if errOut := stderr.String(); errOut != "" && err != nil {
		return output, fmt.Errorf("%s", strings.TrimSpace(errOut))
	}
	return output, err
}

func (s *Session) withDefaults(args []string) []string {
	if s.OutDir == "" || len(args) == 0 {
		return args
	}
	if args[0] != "convert" && args[0] != "watch" {
		return args
	}
	for _, a := range args {
		if a == "--out-dir" || strings.HasPrefix(a, "--out-dir=") || a == "-o" {
			return args
		}
	}
	return append(args, "--out-dir", s.OutDir)
}

// Complete returns tab-completion candidates for the given input.
func (s *Session) Complete(input string) []string {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return s.KnownCommands
	}

	if len(parts) == 1 && !strings.HasSuffix(input, " ") {
		var matches []string
		for _, cmd := range s.KnownCommands {
			if strings.HasPrefix(cmd, parts[0]) {
				matches = append(matches, cmd)
			}
		}
		sort.Strings(matches)
		return matches
	}

	last := parts[len(parts)-1]
	if strings.HasPrefix(last, "-") {
		var matches []string
		for _, flag := range flagsFor(parts[0]) {
			if strings.HasPrefix(flag, last) {
				matches = append(matches, flag)
			}
		}
		return matches
	}

	if len(parts) == 2 && !strings.HasSuffix(input, " ") {
		var matches []string
		for _, sub := range subcommandsFor(parts[0]) {
			if strings.HasPrefix(sub, parts[1]) {
				matches = append(matches, sub)
			}
		}
		return matches
	}

	return nil
}

func subcommandsFor(parent string) []string {
	subs := map[string][]string{
		"config":     {"show", "get", "set", "path", "reset"},
		"completion": {"bash", "zsh", "fish", "powershell"},
	}
	return subs[parent]
}

func flagsFor(cmd string) []string {
	flags := map[string][]string{
		"convert": {"--out-dir", "--sheet", "--dry-run", "--json"},
		"preview": {"--sheet", "--json"},
		"batch":   {"--json"},
		"watch":   {"--out-dir", "--sheet", "--debounce"},
	}
	return append(flags[cmd], "--help", "--verbose")
}

func (s *Session) printHelp() {
	fmt.Println("Available commands:")
	fmt.Println()
	fmt.Println("  Listings:  convert, preview, batch, watch")
	fmt.Println("  Helpers:   sanitize, sample")
	fmt.Println("  System:    config, completion, version")
	fmt.Println()
	fmt.Println("Shell commands:")
	fmt.Println("  help           show this help")
	fmt.Println("  history        show command history")
	fmt.Println("  set out <dir>  default --out-dir for convert and watch")
	fmt.Println("  exit           exit the shell")
}

func (s *Session) buildCompleter() []readline.PrefixCompleterInterface {
	var items []readline.PrefixCompleterInterface
	for _, cmd := range s.KnownCommands {
		var children []readline.PrefixCompleterInterface
		for _, sub := range subcommandsFor(cmd) {
			children = append(children, readline.PcItem(sub))
		}
		for _, flag := range flagsFor(cmd) {
			children = append(children, readline.PcItem(flag))
		}
		items = append(items, readline.PcItem(cmd, children...))
	}
	return items
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
}
