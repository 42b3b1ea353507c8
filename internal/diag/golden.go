package diag

import (
	"fmt"
	"sort"
	"strings"

	"myton/internal/source"
)

type goldenLine struct {
	sev    string
	code   string
	path   string
	line   uint32
	column uint32
	msg    string
}

// FormatGolden renders diagnostics one per line as
// "severity CODE path:line:col message", sorted by position. Notes follow
// as "note" lines when includeNotes is set. Empty input gives "".
func FormatGolden(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	lines := make([]goldenLine, 0, len(diags))
	for _, d := range diags {
		if l, ok := resolveGolden(fs, d.Primary); ok {
			l.sev, l.code, l.msg = d.Severity.label(), d.Code.ID(), flatten(d.Message)
			lines = append(lines, l)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if l, ok := resolveGolden(fs, n.Span); ok {
				l.sev, l.code, l.msg = "note", d.Code.ID(), flatten(n.Msg)
				lines = append(lines, l)
			}
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.path != b.path {
			return a.path < b.path
		}
		if a.line != b.line {
			return a.line < b.line
		}
		if a.column != b.column {
			return a.column < b.column
		}
		return a.code < b.code
	})

	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.column, l.msg)
	}
	return sb.String()
}

func resolveGolden(fs *source.FileSet, span source.Span) (goldenLine, bool) {
	if int(span.File) >= fs.Len() {
		return goldenLine{}, false
	}
	f := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	path := strings.TrimPrefix(f.DisplayPath(fs.BaseDir()), "./")
	return goldenLine{path: path, line: start.Line, column: start.Col}, true
}

func flatten(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
