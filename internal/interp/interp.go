package interp

import (
	"io"
	"os"

	"myton/internal/ast"
	"myton/internal/resolver"
	"myton/internal/trace"
)

// OutcomeKind tells how a statement finished.
type OutcomeKind uint8

const (
	Completed OutcomeKind = iota
	Returned
	Failed
)

func (k OutcomeKind) String() string {
	switch k {
	case Completed:
		return "completed"
	case Returned:
		return "returned"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of executing a statement. Value is set for
// Returned, Err for Failed.
type Outcome struct {
	Kind  OutcomeKind
	Value Value
	Err   *RuntimeError
}

var completed = Outcome{Kind: Completed}

func failed(err *RuntimeError) Outcome { return Outcome{Kind: Failed, Err: err} }

// Options configures an Interpreter.
type Options struct {
	Out    io.Writer    // print sink, os.Stdout when nil
	Tracer trace.Tracer // per-call spans at debug level
	Clock  Clock        // time source of clock()
}

// Interpreter executes statements of one ast.Builder against a persistent
// global environment. It is not safe for concurrent use.
type Interpreter struct {
	b       *ast.Builder
	globals *Environment
	out     io.Writer
	tracer  trace.Tracer
	spans   []uint64
}

func New(b *ast.Builder, opts Options) *Interpreter {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	t := opts.Tracer
	if t == nil {
		t = trace.Nop
	}
	globals := NewRoot(nil)
	defineNatives(globals, opts.Clock)
	return &Interpreter{b: b, globals: globals, out: out, tracer: t}
}

func (in *Interpreter) Globals() *Environment { return in.globals }

// Run attaches the hop table of stmts and executes them in the global
// environment, stopping at the first runtime error.
func (in *Interpreter) Run(stmts []ast.StmtID, locals *resolver.Locals) *RuntimeError {
	in.globals.AttachLocals(locals)
	for _, id := range stmts {
		out := in.Exec(id, in.globals)
		if out.Kind == Failed {
			return out.Err
		}
	}
	return nil
}
