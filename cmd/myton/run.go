package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"myton/internal/driver"
	"myton/internal/project"
)

var runCmd = &cobra.Command{
	Use:   "run [file.my]",
	Short: "Run a myton script",
	Long: `Run executes a script. Without a file it runs [run].main from myton.toml.
Exit status is 65 after a lex, parse or scope error and 70 after a runtime error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func runScript(cmd *cobra.Command, args []string) error {
	path, err := scriptPath(args)
	if err != nil {
		return err
	}

	res, err := driver.Run(cmd.Context(), path, driver.Options{
		MaxDiagnostics: activeConfig.maxDiagnostics,
		Out:            os.Stdout,
		Timings:        activeConfig.timings,
	})
	if err != nil {
		return &exitError{code: driver.ExitIOErr, err: err}
	}
	printDiagnostics(res)
	if activeConfig.timings {
		printTimings(os.Stderr, res.Timer)
	}
	if res.ExitCode() != driver.ExitOK {
		dumpTraceRing(cmd)
	}
	return exitWith(res.ExitCode())
}

// scriptPath picks the explicit argument or falls back to [run].main.
func scriptPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	path, err := activeConfig.manifest.MainScript()
	if errors.Is(err, project.ErrNoMain) {
		return "", &exitError{
			code: driver.ExitUsage,
			err:  fmt.Errorf("no script given and no [run].main in %s\nusage: myton run path/to/script.my", project.ManifestName),
		}
	}
	return path, err
}
