package resolver

import (
	"myton/internal/ast"
	"myton/internal/diag"
	"myton/internal/source"
	"myton/internal/trace"
)

// Options configures a resolver run.
type Options struct {
	Reporter diag.Reporter
	Tracer   trace.Tracer
}

// Result is the permanent output of a resolver run.
type Result struct {
	Locals *Locals
	Errors int
}

// Resolver drives the scope stack over one statement list.
type Resolver struct {
	b        *ast.Builder
	reporter diag.Reporter
	tracer   trace.Tracer
	stack    []*scope
	locals   *Locals
	function FunctionKind
	class    ClassKind
	errors   int
}

// NewResolver creates a resolver with an empty stack. Top-level names live
// in no scope, so reads of them stay unresolved.
func NewResolver(b *ast.Builder, opts Options) *Resolver {
	t := opts.Tracer
	if t == nil {
		t = trace.Nop
	}
	return &Resolver{
		b:        b,
		reporter: opts.Reporter,
		tracer:   t,
		stack:    make([]*scope, 0, 8),
		locals:   NewLocals(),
	}
}

// Resolve walks stmts once and returns the hop table.
func Resolve(b *ast.Builder, stmts []ast.StmtID, opts Options) Result {
	r := NewResolver(b, opts)
	r.resolveStmts(stmts)
	return Result{Locals: r.locals, Errors: r.errors}
}

// Depth returns the number of open scopes.
func (r *Resolver) Depth() int {
	return len(r.stack)
}

func (r *Resolver) current() *scope {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Enter pushes a new scope of the given kind.
func (r *Resolver) Enter(kind ScopeKind) {
	r.stack = append(r.stack, newScope(kind))
}

// Leave pops the innermost scope. A kind mismatch means the walker is
// broken, so it panics.
func (r *Resolver) Leave(kind ScopeKind) {
	top := r.current()
	if top == nil {
		panic("resolver: leave on empty scope stack")
	}
	if top.kind != kind {
		panic("resolver: leaving " + kind.String() + " scope but top is " + top.kind.String())
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// declare marks name present but not yet defined in the current scope.
func (r *Resolver) declare(name string) {
	s := r.current()
	if s == nil || s.isGlobal(name) || s.isNonlocal(name) {
		return
	}
	if _, ok := s.names[name]; !ok {
		s.names[name] = false
	}
}

func (r *Resolver) define(name string) {
	s := r.current()
	if s == nil || s.isGlobal(name) || s.isNonlocal(name) {
		return
	}
	s.names[name] = true
}

func (r *Resolver) bind(name string) {
	r.declare(name)
	r.define(name)
}

// resolveLocal records the hop for a read of name, innermost scope first.
func (r *Resolver) resolveLocal(id ast.ExprID, name string) {
	for i := len(r.stack) - 1; i >= 0; i-- {
		s := r.stack[i]
		if s.isNonlocal(name) {
			continue
		}
		if s.isGlobal(name) {
			r.locals.Set(id, len(r.stack))
			return
		}
		if _, ok := s.names[name]; ok {
			r.locals.Set(id, len(r.stack)-1-i)
			return
		}
	}
}

func (r *Resolver) report(code diag.Code, sp source.Span, msg string) {
	r.errors++
	if r.reporter == nil {
		return
	}
	diag.ReportError(r.reporter, code, sp, msg).Emit()
}
