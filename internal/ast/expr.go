package ast

import "myton/internal/source"

type ExprKind uint8

const (
	ExprLiteral ExprKind = iota + 1
	ExprList
	ExprVariable
	ExprBinary
	ExprLogical
	ExprUnary
	ExprCall
	ExprGroup
	ExprGet
	ExprSet
	ExprThis
	ExprSuper
)

func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprList:
		return "List"
	case ExprVariable:
		return "Variable"
	case ExprBinary:
		return "Binary"
	case ExprLogical:
		return "Logical"
	case ExprUnary:
		return "Unary"
	case ExprCall:
		return "Call"
	case ExprGroup:
		return "Grouping"
	case ExprGet:
		return "Get"
	case ExprSet:
		return "Set"
	case ExprThis:
		return "This"
	case ExprSuper:
		return "Super"
	}
	return "Expr(?)"
}

// Expr is the common header; Payload indexes the per-kind arena.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type LiteralKind uint8

const (
	LitNone LiteralKind = iota
	LitTrue
	LitFalse
	LitNumber
	LitString
)

type ExprLiteralData struct {
	Kind   LiteralKind
	Number float64
	Text   source.StringID // исходный текст числа или значение строки
}

type ExprListData struct {
	Elements []ExprID
}

type ExprVariableData struct {
	Name source.StringID
}

type BinaryOp uint8

const (
	BinAdd BinaryOp = iota + 1
	BinSub
	BinMul
	BinDiv
	BinMod
	BinEq
	BinNotEq
	BinStrictEq
	BinLess
	BinLessEq
	BinGreater
	BinGreaterEq
)

var binaryOpText = map[BinaryOp]string{
	BinAdd: "+", BinSub: "-", BinMul: "*", BinDiv: "/", BinMod: "%",
	BinEq: "==", BinNotEq: "!=", BinStrictEq: "===",
	BinLess: "<", BinLessEq: "<=", BinGreater: ">", BinGreaterEq: ">=",
}

func (op BinaryOp) String() string {
	if s, ok := binaryOpText[op]; ok {
		return s
	}
	return "?"
}

type ExprBinaryData struct {
	Op     BinaryOp
	OpSpan source.Span
	Left   ExprID
	Right  ExprID
}

type LogicalOp uint8

const (
	LogicalAnd LogicalOp = iota + 1
	LogicalOr
)

func (op LogicalOp) String() string {
	if op == LogicalAnd {
		return "and"
	}
	return "or"
}

type ExprLogicalData struct {
	Op    LogicalOp
	Left  ExprID
	Right ExprID
}

type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota + 1
	UnaryNot
)

func (op UnaryOp) String() string {
	if op == UnaryNeg {
		return "-"
	}
	return "!"
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprGroupData struct {
	Inner ExprID
}

type ExprGetData struct {
	Object ExprID
	Name   source.StringID
}

type ExprSetData struct {
	Object ExprID
	Name   source.StringID
	Value  ExprID
}

type ExprSuperData struct {
	Method source.StringID
}
