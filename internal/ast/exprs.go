package ast

import "myton/internal/source"

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Literals  *Arena[ExprLiteralData]
	Lists     *Arena[ExprListData]
	Variables *Arena[ExprVariableData]
	Binaries  *Arena[ExprBinaryData]
	Logicals  *Arena[ExprLogicalData]
	Unaries   *Arena[ExprUnaryData]
	Calls     *Arena[ExprCallData]
	Groups    *Arena[ExprGroupData]
	Gets      *Arena[ExprGetData]
	Sets      *Arena[ExprSetData]
	Supers    *Arena[ExprSuperData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint / 4
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Literals:  NewArena[ExprLiteralData](capHint),
		Lists:     NewArena[ExprListData](small),
		Variables: NewArena[ExprVariableData](capHint),
		Binaries:  NewArena[ExprBinaryData](capHint),
		Logicals:  NewArena[ExprLogicalData](small),
		Unaries:   NewArena[ExprUnaryData](small),
		Calls:     NewArena[ExprCallData](small),
		Groups:    NewArena[ExprGroupData](small),
		Gets:      NewArena[ExprGetData](small),
		Sets:      NewArena[ExprSetData](small),
		Supers:    NewArena[ExprSuperData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// payloadOf returns the payload index when id has the wanted kind.
func (e *Exprs) payloadOf(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

func (e *Exprs) NewLiteral(span source.Span, data ExprLiteralData) ExprID {
	return e.new(ExprLiteral, span, e.Literals.Allocate(data))
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	p, ok := e.payloadOf(id, ExprLiteral)
	if !ok {
		return nil, false
	}
	return e.Literals.Get(p), true
}

func (e *Exprs) NewList(span source.Span, elems []ExprID) ExprID {
	return e.new(ExprList, span, e.Lists.Allocate(ExprListData{Elements: elems}))
}

func (e *Exprs) List(id ExprID) (*ExprListData, bool) {
	p, ok := e.payloadOf(id, ExprList)
	if !ok {
		return nil, false
	}
	return e.Lists.Get(p), true
}

func (e *Exprs) NewVariable(span source.Span, name source.StringID) ExprID {
	return e.new(ExprVariable, span, e.Variables.Allocate(ExprVariableData{Name: name}))
}

func (e *Exprs) Variable(id ExprID) (*ExprVariableData, bool) {
	p, ok := e.payloadOf(id, ExprVariable)
	if !ok {
		return nil, false
	}
	return e.Variables.Get(p), true
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, opSpan source.Span, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, OpSpan: opSpan, Left: left, Right: right})
	return e.new(ExprBinary, span, payload)
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payloadOf(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

func (e *Exprs) NewLogical(span source.Span, op LogicalOp, left, right ExprID) ExprID {
	return e.new(ExprLogical, span, e.Logicals.Allocate(ExprLogicalData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Logical(id ExprID) (*ExprLogicalData, bool) {
	p, ok := e.payloadOf(id, ExprLogical)
	if !ok {
		return nil, false
	}
	return e.Logicals.Get(p), true
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payloadOf(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Callee: callee, Args: args}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payloadOf(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	return e.new(ExprGroup, span, e.Groups.Allocate(ExprGroupData{Inner: inner}))
}

func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	p, ok := e.payloadOf(id, ExprGroup)
	if !ok {
		return nil, false
	}
	return e.Groups.Get(p), true
}

func (e *Exprs) NewGet(span source.Span, object ExprID, name source.StringID) ExprID {
	return e.new(ExprGet, span, e.Gets.Allocate(ExprGetData{Object: object, Name: name}))
}

func (e *Exprs) GetExpr(id ExprID) (*ExprGetData, bool) {
	p, ok := e.payloadOf(id, ExprGet)
	if !ok {
		return nil, false
	}
	return e.Gets.Get(p), true
}

func (e *Exprs) NewSet(span source.Span, object ExprID, name source.StringID, value ExprID) ExprID {
	return e.new(ExprSet, span, e.Sets.Allocate(ExprSetData{Object: object, Name: name, Value: value}))
}

func (e *Exprs) Set(id ExprID) (*ExprSetData, bool) {
	p, ok := e.payloadOf(id, ExprSet)
	if !ok {
		return nil, false
	}
	return e.Sets.Get(p), true
}

// NewThis has no payload; the node itself is the resolution key.
func (e *Exprs) NewThis(span source.Span) ExprID {
	return e.new(ExprThis, span, 0)
}

func (e *Exprs) NewSuper(span source.Span, method source.StringID) ExprID {
	return e.new(ExprSuper, span, e.Supers.Allocate(ExprSuperData{Method: method}))
}

func (e *Exprs) Super(id ExprID) (*ExprSuperData, bool) {
	p, ok := e.payloadOf(id, ExprSuper)
	if !ok {
		return nil, false
	}
	return e.Supers.Get(p), true
}
