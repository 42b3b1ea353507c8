package ast

import "myton/internal/source"

type StmtKind uint8

const (
	StmtExpr StmtKind = iota + 1
	StmtIf
	StmtWhile
	StmtForeach
	StmtPrint
	StmtVar
	StmtBlock
	StmtFunction
	StmtReturn
	StmtGlobal
	StmtNonlocal
	StmtClass
)

func (k StmtKind) String() string {
	switch k {
	case StmtExpr:
		return "Expression"
	case StmtIf:
		return "If"
	case StmtWhile:
		return "While"
	case StmtForeach:
		return "Foreach"
	case StmtPrint:
		return "Print"
	case StmtVar:
		return "VarDecl"
	case StmtBlock:
		return "Block"
	case StmtFunction:
		return "FunctionDecl"
	case StmtReturn:
		return "Return"
	case StmtGlobal:
		return "Global"
	case StmtNonlocal:
		return "Nonlocal"
	case StmtClass:
		return "ClassDecl"
	}
	return "Stmt(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// Name is an identifier together with where it was written.
type Name struct {
	ID   source.StringID
	Span source.Span
}

type StmtExprData struct {
	Expr ExprID
}

type StmtIfData struct {
	Cond ExprID
	Then StmtID // Block
	Else StmtID // Block, nested If for elif, or NoStmtID
}

type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

type StmtForeachData struct {
	Var      Name
	Iterable ExprID
	Body     StmtID
}

type StmtPrintData struct {
	Expr ExprID
}

// StmtVarData is `name = value`; it declares or reassigns.
type StmtVarData struct {
	Name  Name
	Value ExprID
}

type StmtBlockData struct {
	Stmts []StmtID
}

type StmtFunctionData struct {
	Name   Name
	Params []Name
	Body   StmtID // Block
}

type StmtReturnData struct {
	Value ExprID // NoExprID for a bare return
}

// StmtNamesData backs both global and nonlocal.
type StmtNamesData struct {
	Names []Name
}

type StmtClassData struct {
	Name       Name
	Superclass ExprID   // Variable or NoExprID
	Methods    []StmtID // Function statements
}
