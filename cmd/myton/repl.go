package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"myton/internal/diagfmt"
	"myton/internal/driver"
	"myton/internal/version"
)

const (
	promptMain  = ">>> "
	promptCont  = "... "
	historyFile = ".myton_history"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive myton session",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

// lineReader is the part of liner.State the loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

type repl struct {
	session *driver.Session
	in      lineReader
	out     io.Writer
	errOut  io.Writer
	color   bool
	// remember is called with every executed input; liner history in the CLI.
	remember func(string)
}

func runRepl(cmd *cobra.Command, _ []string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		// best-effort
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	r := &repl{
		session: driver.NewSession(driver.Options{
			MaxDiagnostics: activeConfig.maxDiagnostics,
			Out:            os.Stdout,
		}),
		in:       ln,
		out:      os.Stdout,
		errOut:   os.Stderr,
		color:    activeConfig.useColor(os.Stdout),
		remember: func(src string) { ln.AppendHistory(strings.ReplaceAll(src, "\n", " ")) },
	}
	if !activeConfig.quiet {
		r.banner()
	}
	err := r.loop(cmd.Context())

	if histPath != "" {
		if f, ferr := os.Create(histPath); ferr == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return err
}

func (r *repl) banner() {
	fmt.Fprintf(r.out, "Myton %s on %s\n", version.Colored(version.Version, r.color), runtime.GOOS)
	fmt.Fprintln(r.out, `Type ":help" for more information.`)
}

// loop reads inputs until EOF or :quit. Runtime and syntax errors are
// reported and the session continues.
func (r *repl) loop(ctx context.Context) error {
	for {
		src, ok, err := r.readInput()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(r.out)
			return nil
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if r.command(trimmed) {
				return nil
			}
			continue
		}
		if r.remember != nil {
			r.remember(src)
		}
		res := r.session.RunSource(ctx, "", []byte(src+"\n"))
		if diags := res.Diagnostics(); len(diags) > 0 {
			diagfmt.Pretty(r.errOut, diags, res.FileSet, diagfmt.PrettyOpts{Color: r.color, ShowNotes: true})
		}
	}
}

// readInput collects one complete input. A line ending in ':' opens a
// block that continues until an empty line.
func (r *repl) readInput() (string, bool, error) {
	var lines []string
	prompt := promptMain
	for {
		line, err := r.in.Prompt(prompt)
		switch {
		case errors.Is(err, io.EOF):
			if len(lines) > 0 {
				return strings.Join(lines, "\n"), true, nil
			}
			return "", false, nil
		case errors.Is(err, liner.ErrPromptAborted):
			// Ctrl+C drops the pending input
			lines, prompt = nil, promptMain
			continue
		case err != nil:
			return "", false, fmt.Errorf("failed to read input: %w", err)
		}

		if len(lines) == 0 {
			if !opensBlock(line) {
				return line, true, nil
			}
		} else if strings.TrimSpace(line) == "" {
			return strings.Join(lines, "\n"), true, nil
		}
		lines = append(lines, line)
		prompt = promptCont
	}
}

func opensBlock(line string) bool {
	code, _, _ := strings.Cut(line, "#")
	return strings.HasSuffix(strings.TrimSpace(code), ":")
}

// command handles :help, :quit and :lines. It reports whether to exit.
func (r *repl) command(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true
	case ":lines":
		fmt.Fprintf(r.out, "%d\n", r.session.Globals().LinesPrinted())
	case ":help":
		fmt.Fprintln(r.out, "  :help   show this message")
		fmt.Fprintln(r.out, "  :lines  lines printed so far")
		fmt.Fprintln(r.out, "  :quit   leave the session (Ctrl+D works too)")
		fmt.Fprintln(r.out, "A line ending in ':' starts a block; finish it with an empty line.")
	default:
		msg := fmt.Sprintf("unknown command %s (try :help)", fields[0])
		if r.color {
			msg = color.New(color.FgRed).Sprint(msg)
		}
		fmt.Fprintln(r.errOut, msg)
	}
	return false
}
