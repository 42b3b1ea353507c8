package interp

import (
	"slices"

	"myton/internal/ast"
	"myton/internal/resolver"
)

// Environment is one link of the runtime scope chain. Siblings may share a
// parent, e.g. the call environments of a closure created in a loop.
type Environment struct {
	parent    *Environment
	root      *Environment
	values    map[string]Value
	globals   map[string]struct{}
	nonlocals map[string]struct{}

	// shared by the whole chain
	locals *resolver.Locals

	// root only
	lines int
}

// NewRoot creates the global environment. locals may be nil and attached
// later with AttachLocals.
func NewRoot(locals *resolver.Locals) *Environment {
	if locals == nil {
		locals = resolver.NewLocals()
	}
	env := &Environment{values: make(map[string]Value), locals: locals}
	env.root = env
	return env
}

// NewEnclosed creates a child of parent.
func NewEnclosed(parent *Environment) *Environment {
	return &Environment{
		parent: parent,
		root:   parent.root,
		values: make(map[string]Value),
		locals: parent.locals,
	}
}

func (e *Environment) Parent() *Environment { return e.parent }
func (e *Environment) Root() *Environment   { return e.root }
func (e *Environment) IsRoot() bool         { return e.parent == nil }

// AttachLocals merges a hop table produced for a new chunk of the same
// program, e.g. the next REPL input.
func (e *Environment) AttachLocals(l *resolver.Locals) {
	e.locals.Merge(l)
}

func (e *Environment) Locals() *resolver.Locals { return e.locals }

// Define binds name in this environment regardless of global or nonlocal
// marks. Parameters, self and super use it.
func (e *Environment) Define(name string, v Value) {
	e.values[name] = v
}

// Get walks the chain outward.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// GetLocal reads this environment only.
func (e *Environment) GetLocal(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Set writes name. A global mark sends the write to the root. A nonlocal
// mark sends it to the nearest enclosing environment that already binds
// name, the same one a resolved read lands on; with no such binding the
// parent takes it.
func (e *Environment) Set(name string, v Value) {
	switch {
	case e.IsGlobal(name) && e.root != e:
		e.root.Set(name, v)
	case e.IsNonlocal(name) && e.parent != nil:
		if owner := e.parent.owner(name); owner != nil {
			owner.values[name] = v
			return
		}
		e.parent.Set(name, v)
	default:
		e.values[name] = v
	}
}

// owner finds the environment a nonlocal write of name belongs to: the
// first one holding name, or the root once a global mark is crossed.
// Scopes that only mark name nonlocal are skipped.
func (e *Environment) owner(name string) *Environment {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			return env
		}
		if env.IsGlobal(name) {
			return env.root
		}
	}
	return nil
}

// Ancestor follows n parent links. Ancestor(0) returns nil.
func (e *Environment) Ancestor(n int) *Environment {
	if n <= 0 {
		return nil
	}
	env := e
	for i := 0; i < n && env != nil; i++ {
		env = env.parent
	}
	return env
}

// GetAt reads name from the environment hop links away.
func (e *Environment) GetAt(hop int, name string) (Value, bool) {
	env := e
	if hop > 0 {
		env = e.Ancestor(hop)
	}
	if env == nil {
		return Value{}, false
	}
	return env.GetLocal(name)
}

// GetFromVariable reads the variable expression id named name. A resolved
// read jumps straight to its environment; an unresolved one walks the
// chain.
func (e *Environment) GetFromVariable(id ast.ExprID, name string) (Value, bool) {
	if hop, ok := e.locals.Lookup(id); ok {
		return e.GetAt(hop, name)
	}
	return e.Get(name)
}

func (e *Environment) DeclareGlobal(name string) {
	if e.globals == nil {
		e.globals = make(map[string]struct{})
	}
	e.globals[name] = struct{}{}
}

func (e *Environment) DeclareNonlocal(name string) {
	if e.nonlocals == nil {
		e.nonlocals = make(map[string]struct{})
	}
	e.nonlocals[name] = struct{}{}
}

func (e *Environment) IsGlobal(name string) bool {
	_, ok := e.globals[name]
	return ok
}

func (e *Environment) IsNonlocal(name string) bool {
	_, ok := e.nonlocals[name]
	return ok
}

// LinesPrinted is the number of output lines written by print so far.
func (e *Environment) LinesPrinted() int { return e.root.lines }

func (e *Environment) addLines(n int) { e.root.lines += n }

// Names lists the bindings of this environment in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
