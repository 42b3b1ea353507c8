package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"myton/internal/diagfmt"
	"myton/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.my",
	Short: "Tokenize a myton source file",
	Long:  `Tokenize breaks a myton source file into tokens, including NEWLINE and indentation widths`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	res, err := driver.Run(cmd.Context(), args[0], driver.Options{
		MaxDiagnostics: activeConfig.maxDiagnostics,
		Stage:          driver.StageTokenize,
		Timings:        activeConfig.timings,
	})
	if err != nil {
		return &exitError{code: driver.ExitIOErr, err: err}
	}

	// Выводим диагностику в stderr, если есть
	printDiagnostics(res)

	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(os.Stdout, res.Tokens, res.FileSet)
	default:
		err = diagfmt.FormatTokensPretty(os.Stdout, res.Tokens, res.FileSet)
	}
	if err != nil {
		return err
	}
	if activeConfig.timings {
		printTimings(os.Stderr, res.Timer)
	}
	return exitWith(res.ExitCode())
}
