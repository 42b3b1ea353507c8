package interp

import (
	"io"
	"strings"

	"myton/internal/ast"
	"myton/internal/diag"
	"myton/internal/resolver"
)

// Exec runs one statement in env.
func (in *Interpreter) Exec(id ast.StmtID, env *Environment) Outcome {
	st := in.b.Stmts.Get(id)
	if st == nil {
		return completed
	}
	switch st.Kind {
	case ast.StmtExpr:
		data, _ := in.b.Stmts.Expr(id)
		if _, err := in.Eval(data.Expr, env); err != nil {
			return failed(err)
		}
		return completed

	case ast.StmtPrint:
		data, _ := in.b.Stmts.Print(id)
		v, err := in.Eval(data.Expr, env)
		if err != nil {
			return failed(err)
		}
		text := v.String()
		if _, werr := io.WriteString(in.out, text+"\n"); werr != nil {
			return failed(newError(diag.RunNativeError, st.Span, "print: %v", werr))
		}
		env.addLines(strings.Count(text, "\n") + 1)
		return completed

	case ast.StmtVar:
		data, _ := in.b.Stmts.Var(id)
		v, err := in.Eval(data.Value, env)
		if err != nil {
			return failed(err)
		}
		env.Set(in.b.Name(data.Name.ID), v)
		return completed

	case ast.StmtBlock:
		data, _ := in.b.Stmts.Block(id)
		return in.execBlock(data.Stmts, env)

	case ast.StmtIf:
		data, _ := in.b.Stmts.If(id)
		cond, err := in.Eval(data.Cond, env)
		if err != nil {
			return failed(err)
		}
		if cond.Truthy() {
			return in.Exec(data.Then, env)
		}
		if data.Else.IsValid() {
			return in.Exec(data.Else, env)
		}
		return completed

	case ast.StmtWhile:
		data, _ := in.b.Stmts.While(id)
		for {
			cond, err := in.Eval(data.Cond, env)
			if err != nil {
				return failed(err)
			}
			if !cond.Truthy() {
				return completed
			}
			if out := in.Exec(data.Body, env); out.Kind != Completed {
				return out
			}
		}

	case ast.StmtForeach:
		data, _ := in.b.Stmts.Foreach(id)
		iterable, err := in.Eval(data.Iterable, env)
		if err != nil {
			return failed(err)
		}
		if iterable.Kind != VKList {
			sp := in.b.Exprs.Get(data.Iterable).Span
			return failed(typeError(sp, "'%s' object is not iterable", iterable.TypeName()))
		}
		name := in.b.Name(data.Var.ID)
		for _, item := range iterable.List {
			env.Set(name, item)
			if out := in.Exec(data.Body, env); out.Kind != Completed {
				return out
			}
		}
		return completed

	case ast.StmtFunction:
		data, _ := in.b.Stmts.Function(id)
		fn := in.newFunction(id, data, env, false)
		env.Set(fn.Name, FuncValue(fn))
		return completed

	case ast.StmtReturn:
		data, _ := in.b.Stmts.Return(id)
		v := None()
		if data.Value.IsValid() {
			var err *RuntimeError
			if v, err = in.Eval(data.Value, env); err != nil {
				return failed(err)
			}
		}
		return Outcome{Kind: Returned, Value: v}

	case ast.StmtGlobal, ast.StmtNonlocal:
		data, _ := in.b.Stmts.NameList(id)
		for _, n := range data.Names {
			if st.Kind == ast.StmtGlobal {
				env.DeclareGlobal(in.b.Name(n.ID))
			} else {
				env.DeclareNonlocal(in.b.Name(n.ID))
			}
		}
		return completed

	case ast.StmtClass:
		data, _ := in.b.Stmts.Class(id)
		return in.execClass(data, env)
	}
	return completed
}

func (in *Interpreter) execBlock(stmts []ast.StmtID, env *Environment) Outcome {
	for _, id := range stmts {
		if out := in.Exec(id, env); out.Kind != Completed {
			return out
		}
	}
	return completed
}

func (in *Interpreter) newFunction(id ast.StmtID, data *ast.StmtFunctionData, closure *Environment, initializer bool) *Function {
	params := make([]string, len(data.Params))
	for i, p := range data.Params {
		params[i] = in.b.Name(p.ID)
	}
	return &Function{
		Decl:          id,
		Name:          in.b.Name(data.Name.ID),
		Params:        params,
		Body:          data.Body,
		Span:          data.Name.Span,
		Closure:       closure,
		IsInitializer: initializer,
	}
}

func (in *Interpreter) execClass(data *ast.StmtClassData, env *Environment) Outcome {
	cls := &Class{Name: in.b.Name(data.Name.ID), Methods: make(map[string]*Function, len(data.Methods))}

	methodEnv := env
	if data.Superclass.IsValid() {
		sv, err := in.Eval(data.Superclass, env)
		if err != nil {
			return failed(err)
		}
		if sv.Kind != VKClass {
			return failed(typeError(in.b.Exprs.Get(data.Superclass).Span, "superclass must be a class"))
		}
		cls.Superclass = sv.Class
		methodEnv = NewEnclosed(env)
		methodEnv.Define(resolver.SuperName, sv)
	}

	for _, m := range data.Methods {
		fd, ok := in.b.Stmts.Function(m)
		if !ok {
			continue
		}
		name := in.b.Name(fd.Name.ID)
		cls.Methods[name] = in.newFunction(m, fd, methodEnv, name == resolver.InitName)
	}

	env.Set(cls.Name, ClassValue(cls))
	return completed
}
