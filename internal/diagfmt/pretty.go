package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"myton/internal/diag"
	"myton/internal/source"
)

// PrettyOpts controls the human-readable renderer.
type PrettyOpts struct {
	Color     bool
	Context   int // lines of source shown above the primary line
	ShowNotes bool
	ShowFixes bool
}

type palette struct {
	err, warn, info, note, help, gutter, caret, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgBlue, color.Bold),
		note:   color.New(color.FgCyan, color.Bold),
		help:   color.New(color.FgGreen, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.help, p.gutter, p.caret, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty writes every diagnostic with a source excerpt and a caret line:
//
//	test.my:2:5: ERROR SYN2002: Expected expression
//	  2 | x = )
//	    |     ^
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i := range diags {
		d := &diags[i]
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeHeader(w, p, d, fs)
		if fs != nil {
			writeExcerpt(w, p, fs, d.Primary, opts.Context)
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(w, "  %s %s", p.note.Sprint("note:"), n.Msg)
				if fs != nil && fs.Get(n.Span.File) != nil {
					start, _ := fs.Resolve(n.Span)
					fmt.Fprintf(w, " (%s:%s)", displayPath(fs, n.Span.File), start)
				}
				fmt.Fprintln(w)
			}
		}
		if opts.ShowFixes {
			for _, fix := range d.Fixes {
				fmt.Fprintf(w, "  %s %s\n", p.help.Sprint("help:"), fix.Title)
			}
		}
	}
}

func writeHeader(w io.Writer, p palette, d *diag.Diagnostic, fs *source.FileSet) {
	loc := "<unknown>"
	if fs != nil && fs.Get(d.Primary.File) != nil {
		start, _ := fs.Resolve(d.Primary)
		loc = displayPath(fs, d.Primary.File) + ":" + start.String()
	}
	fmt.Fprintf(w, "%s: %s %s\n",
		p.bold.Sprint(loc),
		p.severity(d.Severity).Sprintf("%s %s:", d.Severity, d.Code.ID()),
		p.bold.Sprint(d.Message),
	)
}

func writeExcerpt(w io.Writer, p palette, fs *source.FileSet, span source.Span, context int) {
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)
	if start.Line == 0 {
		return
	}
	first := start.Line
	if context > 0 {
		if uint32(context) >= first {
			first = 1
		} else {
			first -= uint32(context)
		}
	}
	width := len(fmt.Sprint(start.Line))
	for n := first; n <= start.Line; n++ {
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width+2, n), expandTabs(f.Line(n)))
	}

	line := f.Line(start.Line)
	col := clampCol(start.Col, line)
	pad := runewidth.StringWidth(expandTabs(line[:col]))
	stop := len(line)
	if end.Line == start.Line {
		stop = clampCol(end.Col, line)
	}
	n := 1
	if stop > col {
		n = max(1, runewidth.StringWidth(expandTabs(line[col:stop])))
	}
	fmt.Fprintf(w, "%s %s%s\n",
		p.gutter.Sprintf("%*s |", width+2, ""),
		strings.Repeat(" ", pad),
		p.caret.Sprint(strings.Repeat("^", n)),
	)
}

// clampCol turns a 1-based byte column into a slice index within line.
func clampCol(col uint32, line string) int {
	if col == 0 {
		return 0
	}
	return min(int(col-1), len(line))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
