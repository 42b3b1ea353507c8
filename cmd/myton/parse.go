package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"myton/internal/diagfmt"
	"myton/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.my",
	Short: "Parse a myton source file and dump its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|sexpr)")
	parseCmd.Flags().Bool("resolve", false, "also run the resolver and print the hop table")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withResolve, err := cmd.Flags().GetBool("resolve")
	if err != nil {
		return fmt.Errorf("failed to get resolve flag: %w", err)
	}
	switch format {
	case "pretty", "json", "sexpr":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	stage := driver.StageParse
	if withResolve {
		stage = driver.StageResolve
	}
	res, err := driver.Run(cmd.Context(), args[0], driver.Options{
		MaxDiagnostics: activeConfig.maxDiagnostics,
		Stage:          stage,
		Timings:        activeConfig.timings,
	})
	if err != nil {
		return &exitError{code: driver.ExitIOErr, err: err}
	}
	printDiagnostics(res)

	switch format {
	case "json":
		err = diagfmt.FormatASTJSON(os.Stdout, res.Builder, res.Program, res.FileSet)
	case "sexpr":
		prog := res.Builder.Program(res.Program)
		if prog != nil {
			_, err = fmt.Fprintln(os.Stdout, diagfmt.FormatSExpr(res.Builder, prog.Stmts))
		}
	default:
		err = diagfmt.FormatASTPretty(os.Stdout, res.Builder, res.Program, res.FileSet)
	}
	if err != nil {
		return err
	}
	if withResolve && res.Locals != nil {
		fmt.Fprintln(os.Stdout, "locals:")
		fmt.Fprint(os.Stdout, diagfmt.FormatLocals(res.Builder, res.FileSet, res.Locals))
	}
	if activeConfig.timings {
		printTimings(os.Stderr, res.Timer)
	}
	return exitWith(res.ExitCode())
}
