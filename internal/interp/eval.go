package interp

import (
	"myton/internal/ast"
	"myton/internal/diag"
	"myton/internal/resolver"
	"myton/internal/source"
	"myton/internal/trace"
)

// Eval evaluates one expression in env.
func (in *Interpreter) Eval(id ast.ExprID, env *Environment) (Value, *RuntimeError) {
	ex := in.b.Exprs.Get(id)
	if ex == nil {
		return None(), nil
	}
	switch ex.Kind {
	case ast.ExprLiteral:
		data, _ := in.b.Exprs.Literal(id)
		switch data.Kind {
		case ast.LitNumber:
			return Number(data.Number), nil
		case ast.LitString:
			return String(in.b.Name(data.Text)), nil
		case ast.LitTrue:
			return Bool(true), nil
		case ast.LitFalse:
			return Bool(false), nil
		}
		return None(), nil

	case ast.ExprList:
		data, _ := in.b.Exprs.List(id)
		items := make([]Value, 0, len(data.Elements))
		for _, el := range data.Elements {
			v, err := in.Eval(el, env)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return List(items), nil

	case ast.ExprVariable:
		data, _ := in.b.Exprs.Variable(id)
		name := in.b.Name(data.Name)
		v, ok := env.GetFromVariable(id, name)
		if !ok {
			return Value{}, nameError(ex.Span, "Undefined variable '%s'", name)
		}
		return v, nil

	case ast.ExprGroup:
		data, _ := in.b.Exprs.Group(id)
		return in.Eval(data.Inner, env)

	case ast.ExprUnary:
		data, _ := in.b.Exprs.Unary(id)
		v, err := in.Eval(data.Operand, env)
		if err != nil {
			return Value{}, err
		}
		return unary(data.Op, v, ex.Span)

	case ast.ExprBinary:
		data, _ := in.b.Exprs.Binary(id)
		l, err := in.Eval(data.Left, env)
		if err != nil {
			return Value{}, err
		}
		r, err := in.Eval(data.Right, env)
		if err != nil {
			return Value{}, err
		}
		return binary(data.Op, l, r, ex.Span)

	case ast.ExprLogical:
		data, _ := in.b.Exprs.Logical(id)
		l, err := in.Eval(data.Left, env)
		if err != nil {
			return Value{}, err
		}
		if (data.Op == ast.LogicalOr) == l.Truthy() {
			return l, nil
		}
		return in.Eval(data.Right, env)

	case ast.ExprCall:
		data, _ := in.b.Exprs.Call(id)
		callee, err := in.Eval(data.Callee, env)
		if err != nil {
			return Value{}, err
		}
		args := make([]Value, 0, len(data.Args))
		for _, a := range data.Args {
			v, err := in.Eval(a, env)
			if err != nil {
				return Value{}, err
			}
			args = append(args, v)
		}
		return in.Call(callee, args, ex.Span)

	case ast.ExprGet:
		data, _ := in.b.Exprs.GetExpr(id)
		obj, err := in.Eval(data.Object, env)
		if err != nil {
			return Value{}, err
		}
		name := in.b.Name(data.Name)
		if obj.Kind != VKInstance {
			return Value{}, typeError(ex.Span, "'%s' object has no attribute '%s'", obj.TypeName(), name)
		}
		v, ok := obj.Inst.Get(name)
		if !ok {
			return Value{}, nameError(ex.Span, "'%s' object has no attribute '%s'", obj.Inst.Class.Name, name)
		}
		return v, nil

	case ast.ExprSet:
		data, _ := in.b.Exprs.Set(id)
		obj, err := in.Eval(data.Object, env)
		if err != nil {
			return Value{}, err
		}
		name := in.b.Name(data.Name)
		if obj.Kind != VKInstance {
			return Value{}, typeError(ex.Span, "'%s' object has no attribute '%s'", obj.TypeName(), name)
		}
		v, err := in.Eval(data.Value, env)
		if err != nil {
			return Value{}, err
		}
		obj.Inst.Set(name, v)
		return v, nil

	case ast.ExprThis:
		v, ok := env.GetFromVariable(id, resolver.ThisName)
		if !ok {
			return Value{}, nameError(ex.Span, "Undefined variable '%s'", resolver.ThisName)
		}
		return v, nil

	case ast.ExprSuper:
		data, _ := in.b.Exprs.Super(id)
		return in.evalSuper(id, in.b.Name(data.Method), ex.Span, env)
	}
	return None(), nil
}

// evalSuper finds method above the lexically enclosing class and binds it
// to the current instance. super lives hop links away, self one link
// closer.
func (in *Interpreter) evalSuper(id ast.ExprID, method string, span source.Span, env *Environment) (Value, *RuntimeError) {
	hop, ok := env.Locals().Lookup(id)
	if !ok || hop < 1 {
		return Value{}, nameError(span, "Undefined variable '%s'", resolver.SuperName)
	}
	sv, ok := env.GetAt(hop, resolver.SuperName)
	if !ok || sv.Kind != VKClass {
		return Value{}, nameError(span, "Undefined variable '%s'", resolver.SuperName)
	}
	self, ok := env.GetAt(hop-1, resolver.ThisName)
	if !ok || self.Kind != VKInstance {
		return Value{}, nameError(span, "Undefined variable '%s'", resolver.ThisName)
	}
	m, ok := sv.Class.FindMethod(method)
	if !ok {
		return Value{}, nameError(span, "Undefined property '%s'", method)
	}
	return FuncValue(m.Bind(self.Inst)), nil
}

// Call invokes callee with already evaluated arguments.
func (in *Interpreter) Call(callee Value, args []Value, span source.Span) (Value, *RuntimeError) {
	switch callee.Kind {
	case VKFunction:
		if err := checkArity(callee.Fn.Arity(), len(args), span); err != nil {
			return Value{}, err
		}
		return in.callFunction(callee.Fn, args, span)

	case VKNative:
		n := callee.Native
		if err := checkArity(n.Arity, len(args), span); err != nil {
			return Value{}, err
		}
		v, err := n.Fn(args)
		if err != nil {
			return Value{}, newError(diag.RunNativeError, span, "%s", err.Error())
		}
		return v, nil

	case VKClass:
		cls := callee.Class
		inst := NewInstance(cls)
		init, ok := cls.FindMethod(resolver.InitName)
		if !ok {
			if err := checkArity(0, len(args), span); err != nil {
				return Value{}, err
			}
			return InstanceValue(inst), nil
		}
		if err := checkArity(init.Arity(), len(args), span); err != nil {
			return Value{}, err
		}
		if _, err := in.callFunction(init.Bind(inst), args, span); err != nil {
			return Value{}, err
		}
		return InstanceValue(inst), nil
	}
	return Value{}, typeError(span, "'%s' object is not callable", callee.TypeName())
}

func checkArity(want, got int, span source.Span) *RuntimeError {
	if want == got {
		return nil
	}
	return typeError(span, "Expected %d arguments but got %d", want, got)
}

func (in *Interpreter) callFunction(fn *Function, args []Value, span source.Span) (Value, *RuntimeError) {
	var parent uint64
	if len(in.spans) > 0 {
		parent = in.spans[len(in.spans)-1]
	}
	sp := trace.Begin(in.tracer, trace.ScopeNode, "call "+fn.Name, parent)
	in.spans = append(in.spans, sp.ID())
	defer func() {
		in.spans = in.spans[:len(in.spans)-1]
		sp.End("")
	}()

	env := NewEnclosed(fn.Closure)
	for i, p := range fn.Params {
		env.Define(p, args[i])
	}
	out := in.Exec(fn.Body, env)
	switch out.Kind {
	case Failed:
		out.Err.Backtrace = append(out.Err.Backtrace, Frame{FuncName: fn.Name, Span: span})
		return Value{}, out.Err
	case Returned:
		if !fn.IsInitializer {
			return out.Value, nil
		}
	}
	if fn.IsInitializer {
		if self, ok := fn.Closure.GetLocal(resolver.ThisName); ok {
			return self, nil
		}
	}
	return None(), nil
}
