package diagfmt

import (
	"fmt"

	"myton/internal/source"
)

// formatSpan renders "line:col-line:col", or raw offsets without a FileSet.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

func displayPath(fs *source.FileSet, id source.FileID) string {
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	return f.DisplayPath(fs.BaseDir())
}
