package ast

import "myton/internal/source"

type Stmts struct {
	Arena     *Arena[Stmt]
	Exprs     *Arena[StmtExprData]
	Ifs       *Arena[StmtIfData]
	Whiles    *Arena[StmtWhileData]
	Foreaches *Arena[StmtForeachData]
	Prints    *Arena[StmtPrintData]
	Vars      *Arena[StmtVarData]
	Blocks    *Arena[StmtBlockData]
	Functions *Arena[StmtFunctionData]
	Returns   *Arena[StmtReturnData]
	Names     *Arena[StmtNamesData]
	Classes   *Arena[StmtClassData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint / 4
	return &Stmts{
		Arena:     NewArena[Stmt](capHint),
		Exprs:     NewArena[StmtExprData](capHint),
		Ifs:       NewArena[StmtIfData](small),
		Whiles:    NewArena[StmtWhileData](small),
		Foreaches: NewArena[StmtForeachData](small),
		Prints:    NewArena[StmtPrintData](capHint),
		Vars:      NewArena[StmtVarData](capHint),
		Blocks:    NewArena[StmtBlockData](small),
		Functions: NewArena[StmtFunctionData](small),
		Returns:   NewArena[StmtReturnData](small),
		Names:     NewArena[StmtNamesData](small),
		Classes:   NewArena[StmtClassData](small),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payloadOf(id StmtID, kinds ...StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil {
		return 0, false
	}
	for _, k := range kinds {
		if st.Kind == k {
			return uint32(st.Payload), true
		}
	}
	return 0, false
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(StmtExprData{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	p, ok := s.payloadOf(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, span, s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els}))
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	p, ok := s.payloadOf(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	return s.new(StmtWhile, span, s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body}))
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	p, ok := s.payloadOf(id, StmtWhile)
	if !ok {
		return nil, false
	}
	return s.Whiles.Get(p), true
}

func (s *Stmts) NewForeach(span source.Span, v Name, iterable ExprID, body StmtID) StmtID {
	payload := s.Foreaches.Allocate(StmtForeachData{Var: v, Iterable: iterable, Body: body})
	return s.new(StmtForeach, span, payload)
}

func (s *Stmts) Foreach(id StmtID) (*StmtForeachData, bool) {
	p, ok := s.payloadOf(id, StmtForeach)
	if !ok {
		return nil, false
	}
	return s.Foreaches.Get(p), true
}

func (s *Stmts) NewPrint(span source.Span, expr ExprID) StmtID {
	return s.new(StmtPrint, span, s.Prints.Allocate(StmtPrintData{Expr: expr}))
}

func (s *Stmts) Print(id StmtID) (*StmtPrintData, bool) {
	p, ok := s.payloadOf(id, StmtPrint)
	if !ok {
		return nil, false
	}
	return s.Prints.Get(p), true
}

func (s *Stmts) NewVar(span source.Span, name Name, value ExprID) StmtID {
	return s.new(StmtVar, span, s.Vars.Allocate(StmtVarData{Name: name, Value: value}))
}

func (s *Stmts) Var(id StmtID) (*StmtVarData, bool) {
	p, ok := s.payloadOf(id, StmtVar)
	if !ok {
		return nil, false
	}
	return s.Vars.Get(p), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	return s.new(StmtBlock, span, s.Blocks.Allocate(StmtBlockData{Stmts: stmts}))
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	p, ok := s.payloadOf(id, StmtBlock)
	if !ok {
		return nil, false
	}
	return s.Blocks.Get(p), true
}

func (s *Stmts) NewFunction(span source.Span, name Name, params []Name, body StmtID) StmtID {
	payload := s.Functions.Allocate(StmtFunctionData{Name: name, Params: params, Body: body})
	return s.new(StmtFunction, span, payload)
}

func (s *Stmts) Function(id StmtID) (*StmtFunctionData, bool) {
	p, ok := s.payloadOf(id, StmtFunction)
	if !ok {
		return nil, false
	}
	return s.Functions.Get(p), true
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(StmtReturnData{Value: value}))
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	p, ok := s.payloadOf(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

func (s *Stmts) NewGlobal(span source.Span, names []Name) StmtID {
	return s.new(StmtGlobal, span, s.Names.Allocate(StmtNamesData{Names: names}))
}

func (s *Stmts) NewNonlocal(span source.Span, names []Name) StmtID {
	return s.new(StmtNonlocal, span, s.Names.Allocate(StmtNamesData{Names: names}))
}

// NameList returns the payload of a Global or Nonlocal statement.
func (s *Stmts) NameList(id StmtID) (*StmtNamesData, bool) {
	p, ok := s.payloadOf(id, StmtGlobal, StmtNonlocal)
	if !ok {
		return nil, false
	}
	return s.Names.Get(p), true
}

func (s *Stmts) NewClass(span source.Span, name Name, superclass ExprID, methods []StmtID) StmtID {
	payload := s.Classes.Allocate(StmtClassData{Name: name, Superclass: superclass, Methods: methods})
	return s.new(StmtClass, span, payload)
}

func (s *Stmts) Class(id StmtID) (*StmtClassData, bool) {
	p, ok := s.payloadOf(id, StmtClass)
	if !ok {
		return nil, false
	}
	return s.Classes.Get(p), true
}
