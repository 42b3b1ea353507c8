package driver

import (
	"context"
	"fmt"

	"myton/internal/ast"
	"myton/internal/diag"
	"myton/internal/interp"
	"myton/internal/lexer"
	"myton/internal/observ"
	"myton/internal/parser"
	"myton/internal/resolver"
	"myton/internal/source"
	"myton/internal/trace"
)

// Session keeps one FileSet, Builder and global environment alive across
// inputs, so a REPL line can see definitions from earlier lines. A script
// run is a Session used once. Not safe for concurrent use.
type Session struct {
	opts   Options
	fs     *source.FileSet
	b      *ast.Builder
	in     *interp.Interpreter
	inputs int
}

func NewSession(opts Options) *Session {
	b := ast.NewBuilder(ast.Hints{})
	s := &Session{
		opts: opts,
		fs:   source.NewFileSet(),
		b:    b,
	}
	if opts.Tracer == nil {
		s.opts.Tracer = trace.Nop
	}
	s.in = interp.New(b, interp.Options{Out: opts.Out, Tracer: s.opts.Tracer, Clock: opts.Clock})
	return s
}

func (s *Session) FileSet() *source.FileSet         { return s.fs }
func (s *Session) Builder() *ast.Builder            { return s.b }
func (s *Session) Globals() *interp.Environment     { return s.in.Globals() }
func (s *Session) Interpreter() *interp.Interpreter { return s.in }

// SetBaseDir makes diagnostic paths relative to dir.
func (s *Session) SetBaseDir(dir string) { s.fs.SetBaseDir(dir) }

// RunFile loads path and runs it through the configured stages.
func (s *Session) RunFile(ctx context.Context, path string) (*RunResult, error) {
	id, err := s.fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", path, err)
	}
	return s.run(ctx, s.fs.Get(id)), nil
}

// RunSource runs in-memory content registered under name. The REPL calls
// it once per complete input.
func (s *Session) RunSource(ctx context.Context, name string, content []byte) *RunResult {
	s.inputs++
	if name == "" {
		name = fmt.Sprintf("<input-%d>", s.inputs)
	}
	id := s.fs.AddVirtual(name, content)
	return s.run(ctx, s.fs.Get(id))
}

func (s *Session) run(ctx context.Context, file *source.File) *RunResult {
	tracer := s.opts.Tracer
	if !tracer.Enabled() {
		tracer = trace.FromContext(ctx)
	}
	res := &RunResult{
		FileSet: s.fs,
		File:    file,
		Builder: s.b,
		Bag:     diag.NewBag(s.opts.MaxDiagnostics),
	}
	if s.opts.Timings {
		res.Timer = observ.NewTimer()
	}
	track := func(name string) func(note string) {
		if res.Timer == nil {
			return func(string) {}
		}
		return res.Timer.Track(name)
	}

	runSpan := trace.Begin(tracer, trace.ScopeDriver, "run "+file.Path, trace.SpanFrom(ctx))
	defer func() { runSpan.End(fmt.Sprintf("exit=%d", res.ExitCode())) }()
	ctx = trace.WithSpan(ctx, runSpan.ID())

	rep := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})
	lexOpts := lexer.Options{Reporter: rep}

	if s.opts.Stage == StageTokenize {
		done := track("lex")
		span := trace.Begin(tracer, trace.ScopePass, "lex", runSpan.ID())
		res.Tokens = lexer.Tokenize(file, lexOpts)
		span.End(fmt.Sprintf("tokens=%d", len(res.Tokens)))
		done(fmt.Sprintf("tokens=%d", len(res.Tokens)))
		return res
	}

	done := track("parse")
	span := trace.Begin(tracer, trace.ScopePass, "parse", runSpan.ID())
	pr := parser.ParseFile(ctx, s.fs, lexer.New(file, lexOpts), s.b, parser.Options{
		MaxErrors: s.opts.maxErrors(),
		Reporter:  rep,
	})
	res.Program = pr.Program
	prog := s.b.Program(pr.Program)
	note := fmt.Sprintf("stmts=%d errors=%d", len(prog.Stmts), pr.Errors)
	span.End(note)
	done(note)
	if res.Bag.HasErrors() || s.opts.Stage == StageParse {
		return res
	}

	done = track("resolve")
	span = trace.Begin(tracer, trace.ScopePass, "resolve", runSpan.ID())
	rr := resolver.Resolve(s.b, prog.Stmts, resolver.Options{Reporter: rep, Tracer: tracer})
	res.Locals = rr.Locals
	note = fmt.Sprintf("locals=%d errors=%d", rr.Locals.Len(), rr.Errors)
	span.End(note)
	done(note)
	if res.Bag.HasErrors() || s.opts.Stage == StageResolve {
		return res
	}

	done = track("exec")
	span = trace.Begin(tracer, trace.ScopePass, "exec", runSpan.ID())
	before := s.in.Globals().LinesPrinted()
	res.Err = s.in.Run(prog.Stmts, rr.Locals)
	res.Lines = s.in.Globals().LinesPrinted() - before
	note = fmt.Sprintf("lines=%d", res.Lines)
	if res.Err != nil {
		note += " error=" + res.Err.Code.ID()
		trace.Point(tracer, trace.ScopePass, "runtime error", res.Err.Message)
	}
	span.End(note)
	done(note)
	return res
}

// Run executes one script file in a fresh session.
func Run(ctx context.Context, path string, opts Options) (*RunResult, error) {
	return NewSession(opts).RunFile(ctx, path)
}

// RunSource executes in-memory content in a fresh session.
func RunSource(ctx context.Context, name string, content []byte, opts Options) *RunResult {
	return NewSession(opts).RunSource(ctx, name, content)
}
