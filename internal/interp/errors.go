package interp

import (
	"fmt"
	"strings"

	"myton/internal/diag"
	"myton/internal/source"
)

// Frame is one active user function at the moment an error unwound
// through it.
type Frame struct {
	FuncName string
	Span     source.Span // call site
}

// RuntimeError halts the program. Backtrace runs from the innermost call
// outward.
type RuntimeError struct {
	Code      diag.Code
	Message   string
	Span      source.Span
	Backtrace []Frame
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Code.ID(), e.Code.Title(), e.Message)
}

// FormatWithFiles renders the error with resolved positions:
//
//	TypeError RUN4002: msg
//	at file:line:col
//	backtrace:
//	  0: f at file:line:col
func (e *RuntimeError) FormatWithFiles(files *source.FileSet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s: %s\n", e.Code.Title(), e.Code.ID(), e.Message)
	sb.WriteString("at ")
	sb.WriteString(formatSpan(e.Span, files))
	sb.WriteByte('\n')
	if len(e.Backtrace) > 0 {
		sb.WriteString("backtrace:\n")
		for i, f := range e.Backtrace {
			fmt.Fprintf(&sb, "  %d: %s at %s\n", i, f.FuncName, formatSpan(f.Span, files))
		}
	}
	return sb.String()
}

// Diagnostic converts the error for the diag renderers. Each backtrace
// frame becomes a note at its call site.
func (e *RuntimeError) Diagnostic() diag.Diagnostic {
	d := diag.NewError(e.Code, e.Span, e.Message)
	for _, f := range e.Backtrace {
		d = d.WithNote(f.Span, fmt.Sprintf("in call to '%s'", f.FuncName))
	}
	return d
}

func formatSpan(span source.Span, files *source.FileSet) string {
	if files == nil || span.Empty() {
		return "<no-span>"
	}
	file := files.Get(span.File)
	if file == nil {
		return "<no-span>"
	}
	start, _ := files.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", file.DisplayPath(files.BaseDir()), start.Line, start.Col)
}

func newError(code diag.Code, span source.Span, format string, args ...any) *RuntimeError {
	return &RuntimeError{Code: code, Message: fmt.Sprintf(format, args...), Span: span}
}

func nameError(span source.Span, format string, args ...any) *RuntimeError {
	return newError(diag.RunNameError, span, format, args...)
}

func typeError(span source.Span, format string, args ...any) *RuntimeError {
	return newError(diag.RunTypeError, span, format, args...)
}
