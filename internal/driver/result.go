package driver

import (
	"strings"

	"myton/internal/ast"
	"myton/internal/diag"
	"myton/internal/interp"
	"myton/internal/observ"
	"myton/internal/resolver"
	"myton/internal/source"
	"myton/internal/token"
)

// RunResult is the explicit outcome of one pipeline run. Static
// diagnostics land in Bag; a runtime failure is Err. There is no shared
// "had error" state between runs.
type RunResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Program ast.ProgramID
	Tokens  []token.Token // StageTokenize only
	Locals  *resolver.Locals
	Bag     *diag.Bag
	Err     *interp.RuntimeError
	Lines   int // lines printed by this run
	Timer   *observ.Timer
}

func (r *RunResult) ExitCode() int {
	switch {
	case r == nil:
		return ExitSoftware
	case r.Bag != nil && r.Bag.HasErrors():
		return ExitDataErr
	case r.Err != nil:
		return ExitSoftware
	}
	return ExitOK
}

// Diagnostics returns the static diagnostics sorted by position, followed by
// the runtime error when there is one.
func (r *RunResult) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	if r.Bag != nil {
		r.Bag.Sort()
		out = append(out, r.Bag.Items()...)
	}
	if r.Err != nil {
		out = append(out, r.Err.Diagnostic())
	}
	return out
}

// Golden renders the diagnostics in the one-line golden form, notes
// included. Empty when the run was clean.
func (r *RunResult) Golden() string {
	diags := r.Diagnostics()
	if len(diags) == 0 {
		return ""
	}
	ptrs := make([]*diag.Diagnostic, len(diags))
	for i := range diags {
		ptrs[i] = &diags[i]
	}
	return strings.TrimRight(diag.FormatGolden(ptrs, r.FileSet, true), "\n")
}
