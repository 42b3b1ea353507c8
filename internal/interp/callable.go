package interp

import (
	"myton/internal/ast"
	"myton/internal/resolver"
	"myton/internal/source"
)

// Function is a user function or method closed over its defining
// environment.
type Function struct {
	Decl          ast.StmtID
	Name          string
	Params        []string
	Body          ast.StmtID
	Span          source.Span
	Closure       *Environment
	IsInitializer bool
}

func (f *Function) Arity() int { return len(f.Params) }

// Bind returns a copy of f whose closure is a fresh child of the original
// closure holding self.
func (f *Function) Bind(inst *Instance) *Function {
	env := NewEnclosed(f.Closure)
	env.Define(resolver.ThisName, InstanceValue(inst))
	bound := *f
	bound.Closure = env
	return &bound
}

// NativeFunc implements a builtin. A returned error becomes a runtime
// error at the call site.
type NativeFunc func(args []Value) (Value, error)

type Native struct {
	Name  string
	Arity int
	Fn    NativeFunc
}

// Class is immutable once its declaration has executed.
type Class struct {
	Name       string
	Methods    map[string]*Function
	Superclass *Class
}

// FindMethod searches the class and then its superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	for cls := c; cls != nil; cls = cls.Superclass {
		if m, ok := cls.Methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// Arity is the arity of __init__, or 0 without one.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod(resolver.InitName); ok {
		return init.Arity()
	}
	return 0
}

// Instance fields are shared by every alias of the instance.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func NewInstance(c *Class) *Instance {
	return &Instance{Class: c, Fields: make(map[string]Value)}
}

// Get looks up a field, then a method bound to the instance.
func (i *Instance) Get(name string) (Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m, ok := i.Class.FindMethod(name); ok {
		return FuncValue(m.Bind(i)), true
	}
	return Value{}, false
}

func (i *Instance) Set(name string, v Value) {
	i.Fields[name] = v
}
