package main

import (
	"fmt"
	"io"
	"os"

	"myton/internal/diagfmt"
	"myton/internal/driver"
	"myton/internal/observ"
)

// printDiagnostics renders every diagnostic of res to stderr.
func printDiagnostics(res *driver.RunResult) {
	diags := res.Diagnostics()
	if len(diags) == 0 {
		return
	}
	diagfmt.Pretty(os.Stderr, diags, res.FileSet, diagfmt.PrettyOpts{
		Color:     activeConfig.useColor(os.Stderr),
		Context:   1,
		ShowNotes: true,
		ShowFixes: true,
	})
	if res.Bag != nil && res.Bag.Dropped() > 0 && !activeConfig.quiet {
		fmt.Fprintf(os.Stderr, "... %d more diagnostics suppressed (raise --max-diagnostics)\n", res.Bag.Dropped())
	}
}

func printTimings(out io.Writer, timer *observ.Timer) {
	if timer == nil || out == nil {
		return
	}
	fmt.Fprint(out, timer.Summary())
}
