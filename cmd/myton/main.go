package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"myton/internal/driver"
	"myton/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "myton [file.my]",
	Short: "Myton language interpreter",
	Long: `Myton is a small dynamically typed, indentation-based scripting language.
Without arguments myton starts an interactive session; with a file it runs it.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepareCommand,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runRepl(cmd, nil)
		}
		return runScript(cmd, args)
	},
}

// exitError carries a process exit code out of a RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) Unwrap() error { return e.err }

func exitWith(code int) error {
	if code == driver.ExitOK {
		return nil
	}
	return &exitError{code: code}
}

// main registers subcommands and persistent flags, executes the root
// command and maps its error onto an exit status.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("config", "", "path to myton.toml (default: search upwards from the working directory)")
	pf.String("trace", "", "trace output file (stderr, stdout or a path)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")
	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")

	err := rootCmd.Execute()
	runCleanup()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if err == nil {
		return driver.ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(os.Stderr, "myton: %v\n", ee.err)
		}
		return ee.code
	}
	fmt.Fprintf(os.Stderr, "myton: %v\n", err)
	return driver.ExitUsage
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
