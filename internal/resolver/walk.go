package resolver

import (
	"fmt"

	"myton/internal/ast"
	"myton/internal/diag"
	"myton/internal/trace"
)

func (r *Resolver) resolveStmts(stmts []ast.StmtID) {
	for _, id := range stmts {
		r.resolveStmt(id)
	}
}

func (r *Resolver) resolveStmt(id ast.StmtID) {
	st := r.b.Stmts.Get(id)
	if st == nil {
		return
	}
	switch st.Kind {
	case ast.StmtExpr:
		if data, ok := r.b.Stmts.Expr(id); ok {
			r.resolveExpr(data.Expr)
		}
	case ast.StmtIf:
		if data, ok := r.b.Stmts.If(id); ok {
			r.resolveExpr(data.Cond)
			r.resolveStmt(data.Then)
			if data.Else.IsValid() {
				r.resolveStmt(data.Else)
			}
		}
	case ast.StmtWhile:
		if data, ok := r.b.Stmts.While(id); ok {
			r.resolveExpr(data.Cond)
			r.resolveStmt(data.Body)
		}
	case ast.StmtForeach:
		if data, ok := r.b.Stmts.Foreach(id); ok {
			r.resolveExpr(data.Iterable)
			r.bind(r.b.Name(data.Var.ID))
			r.resolveStmt(data.Body)
		}
	case ast.StmtPrint:
		if data, ok := r.b.Stmts.Print(id); ok {
			r.resolveExpr(data.Expr)
		}
	case ast.StmtVar:
		if data, ok := r.b.Stmts.Var(id); ok {
			r.resolveExpr(data.Value)
			r.bind(r.b.Name(data.Name.ID))
		}
	case ast.StmtBlock:
		if data, ok := r.b.Stmts.Block(id); ok {
			r.resolveStmts(data.Stmts)
		}
	case ast.StmtFunction:
		if data, ok := r.b.Stmts.Function(id); ok {
			r.bind(r.b.Name(data.Name.ID))
			r.resolveFunction(data, FunctionPlain)
		}
	case ast.StmtReturn:
		data, ok := r.b.Stmts.Return(id)
		if !ok {
			return
		}
		if r.function == FunctionNone {
			r.report(diag.ScpReturnOutsideFunction, st.Span, "'return' outside function")
		}
		if data.Value.IsValid() {
			r.resolveExpr(data.Value)
		}
	case ast.StmtGlobal, ast.StmtNonlocal:
		data, ok := r.b.Stmts.NameList(id)
		if !ok {
			return
		}
		s := r.current()
		if s == nil {
			// top level: the root already owns every name
			return
		}
		for _, n := range data.Names {
			name := r.b.Name(n.ID)
			if st.Kind == ast.StmtGlobal {
				s.markGlobal(name)
			} else {
				s.markNonlocal(name)
			}
		}
	case ast.StmtClass:
		if data, ok := r.b.Stmts.Class(id); ok {
			r.resolveClass(data)
		}
	}
}

func (r *Resolver) resolveFunction(fn *ast.StmtFunctionData, kind FunctionKind) {
	name := r.b.Name(fn.Name.ID)
	span := trace.Begin(r.tracer, trace.ScopeNode, "resolve "+kind.String()+" "+name, 0)
	defer span.End("")

	enclosing := r.function
	r.function = kind
	r.Enter(ScopeFunction)
	for _, p := range fn.Params {
		r.bind(r.b.Name(p.ID))
	}
	r.resolveStmt(fn.Body)
	r.Leave(ScopeFunction)
	r.function = enclosing
}

func (r *Resolver) resolveClass(cls *ast.StmtClassData) {
	name := r.b.Name(cls.Name.ID)
	span := trace.Begin(r.tracer, trace.ScopeNode, "resolve class "+name, 0)
	defer span.End("")

	enclosing := r.class
	r.class = ClassPlain
	r.bind(name)

	hasSuper := cls.Superclass.IsValid()
	if hasSuper {
		r.class = ClassSub
		if v, ok := r.b.Exprs.Variable(cls.Superclass); ok && v.Name == cls.Name.ID {
			sp := r.b.Exprs.Get(cls.Superclass).Span
			r.report(diag.ScpSelfInheritance, sp, fmt.Sprintf("class '%s' cannot inherit from itself", name))
		}
		r.resolveExpr(cls.Superclass)
		r.Enter(ScopeSuper)
		r.bind(SuperName)
	}

	r.Enter(ScopeThis)
	r.bind(ThisName)
	for _, m := range cls.Methods {
		fn, ok := r.b.Stmts.Function(m)
		if !ok {
			continue
		}
		kind := FunctionMethod
		if r.b.Name(fn.Name.ID) == InitName {
			kind = FunctionInitializer
		}
		r.resolveFunction(fn, kind)
	}
	r.Leave(ScopeThis)

	if hasSuper {
		r.Leave(ScopeSuper)
	}
	r.class = enclosing
}

func (r *Resolver) resolveExpr(id ast.ExprID) {
	ex := r.b.Exprs.Get(id)
	if ex == nil {
		return
	}
	switch ex.Kind {
	case ast.ExprLiteral:
	case ast.ExprList:
		if data, ok := r.b.Exprs.List(id); ok {
			for _, el := range data.Elements {
				r.resolveExpr(el)
			}
		}
	case ast.ExprVariable:
		if data, ok := r.b.Exprs.Variable(id); ok {
			r.resolveLocal(id, r.b.Name(data.Name))
		}
	case ast.ExprBinary:
		if data, ok := r.b.Exprs.Binary(id); ok {
			r.resolveExpr(data.Left)
			r.resolveExpr(data.Right)
		}
	case ast.ExprLogical:
		if data, ok := r.b.Exprs.Logical(id); ok {
			r.resolveExpr(data.Left)
			r.resolveExpr(data.Right)
		}
	case ast.ExprUnary:
		if data, ok := r.b.Exprs.Unary(id); ok {
			r.resolveExpr(data.Operand)
		}
	case ast.ExprCall:
		if data, ok := r.b.Exprs.Call(id); ok {
			r.resolveExpr(data.Callee)
			for _, arg := range data.Args {
				r.resolveExpr(arg)
			}
		}
	case ast.ExprGroup:
		if data, ok := r.b.Exprs.Group(id); ok {
			r.resolveExpr(data.Inner)
		}
	case ast.ExprGet:
		if data, ok := r.b.Exprs.GetExpr(id); ok {
			r.resolveExpr(data.Object)
		}
	case ast.ExprSet:
		if data, ok := r.b.Exprs.Set(id); ok {
			r.resolveExpr(data.Value)
			r.resolveExpr(data.Object)
		}
	case ast.ExprThis:
		if r.class == ClassNone {
			r.report(diag.ScpThisOutsideClass, ex.Span, "'self' used outside of a class")
			return
		}
		r.resolveLocal(id, ThisName)
	case ast.ExprSuper:
		switch r.class {
		case ClassNone:
			r.report(diag.ScpSuperOutsideClass, ex.Span, "'super' used outside of a class")
			return
		case ClassPlain:
			r.report(diag.ScpSuperWithoutSuperclass, ex.Span, "'super' used in a class with no superclass")
			return
		}
		r.resolveLocal(id, SuperName)
	}
}
