package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"myton/internal/driver"
	"myton/internal/version"
)

var testCmd = &cobra.Command{
	Use:   "test [dir]",
	Short: "Run golden tests: every *.my is compared with its .out",
	Long: `Test runs every *.my script under dir (default: [test].dir from myton.toml,
then testdata/golden) and compares printed output plus diagnostics with the
sibling .out file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTests,
}

func init() {
	testCmd.Flags().Bool("update", false, "rewrite .out files with the current output")
	testCmd.Flags().Int("jobs", 0, "parallel scripts (0 = GOMAXPROCS)")
	testCmd.Flags().String("ui", "auto", "live per-script progress list (auto|on|off)")
	testCmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
}

func runTests(cmd *cobra.Command, args []string) error {
	update, err := cmd.Flags().GetBool("update")
	if err != nil {
		return fmt.Errorf("failed to get update flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	display, err := parseProgressDisplay(uiFlag)
	if err != nil {
		return err
	}

	manifest := activeConfig.manifest
	dir := "testdata/golden"
	switch {
	case len(args) == 1:
		dir = args[0]
	case manifest.TestDir() != "":
		dir = manifest.TestDir()
	}
	if !cmd.Flags().Changed("jobs") && manifest != nil && manifest.Test.Jobs > 0 {
		jobs = manifest.Test.Jobs
	}

	opts := driver.SuiteOptions{
		Dir:            dir,
		Jobs:           jobs,
		Update:         update,
		MaxDiagnostics: activeConfig.maxDiagnostics,
		Salt:           version.Version,
	}
	if !noCache && !update {
		cache, cacheErr := driver.OpenResultCache("myton")
		if cacheErr != nil {
			if !activeConfig.quiet {
				fmt.Fprintf(os.Stderr, "warning: result cache disabled: %v\n", cacheErr)
			}
		} else {
			opts.Cache = cache
		}
	}

	var res *driver.SuiteResult
	if display.live(os.Stdout, activeConfig.quiet) {
		res, err = runSuiteWithUI(cmd.Context(), "myton test "+dir, opts)
	} else {
		res, err = driver.RunSuite(cmd.Context(), opts)
	}
	if err != nil {
		return err
	}
	renderSuite(os.Stdout, res, activeConfig.useColor(os.Stdout))
	if !res.OK() {
		return exitWith(1)
	}
	return nil
}

func renderSuite(out io.Writer, res *driver.SuiteResult, useColor bool) {
	ok := color.New(color.FgGreen, color.Bold)
	bad := color.New(color.FgRed, color.Bold)
	for _, c := range []*color.Color{ok, bad} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, c := range res.Cases {
		switch {
		case c.Status.OK() && activeConfig.quiet:
			continue
		case c.Status.OK():
			fmt.Fprintf(out, "%s %s\n", ok.Sprintf("%-7s", c.Status), c.Path)
		default:
			fmt.Fprintf(out, "%s %s\n", bad.Sprintf("%-7s", c.Status), c.Path)
			switch {
			case c.Err != nil:
				fmt.Fprintf(out, "    %v\n", c.Err)
			case c.Status == driver.CaseMissing:
				fmt.Fprintf(out, "    no %s file (run with --update to create it)\n", driver.GoldenExt)
			default:
				fmt.Fprint(out, indent(lineDiff(c.Want, c.Got), "    "))
			}
		}
	}
	passed, failed := res.Counts()
	summary := fmt.Sprintf("%d passed, %d failed in %s", passed, failed, res.Elapsed.Round(time.Millisecond))
	if failed > 0 {
		fmt.Fprintln(out, bad.Sprint(summary))
	} else {
		fmt.Fprintln(out, ok.Sprint(summary))
	}
}

// lineDiff shows the lines that differ, marked "-" for expected and "+"
// for actual output.
func lineDiff(want, got string) string {
	w := strings.Split(strings.TrimSuffix(want, "\n"), "\n")
	g := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	var sb strings.Builder
	for i := 0; i < max(len(w), len(g)); i++ {
		var wl, gl string
		hasW, hasG := i < len(w), i < len(g)
		if hasW {
			wl = w[i]
		}
		if hasG {
			gl = g[i]
		}
		if hasW && hasG && wl == gl {
			continue
		}
		if hasW {
			fmt.Fprintf(&sb, "%d: - %s\n", i+1, wl)
		}
		if hasG {
			fmt.Fprintf(&sb, "%d: + %s\n", i+1, gl)
		}
	}
	return sb.String()
}

func indent(s, prefix string) string {
	if s == "" {
		return s
	}
	lines := strings.SplitAfter(s, "\n")
	var sb strings.Builder
	for _, l := range lines {
		if l == "" {
			continue
		}
		sb.WriteString(prefix)
		sb.WriteString(l)
	}
	return sb.String()
}
