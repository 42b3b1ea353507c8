package ast

import (
	"testing"

	"myton/internal/source"
)

func TestIdentitiesAreDistinct(t *testing.T) {
	b := NewBuilder(Hints{})
	x := b.Intern("x")
	v1 := b.Exprs.NewVariable(source.Span{Start: 0, End: 1}, x)
	v2 := b.Exprs.NewVariable(source.Span{Start: 0, End: 1}, x)
	if v1 == v2 || !v1.IsValid() || !v2.IsValid() {
		t.Fatalf("structurally equal nodes must get distinct ids: %d %d", v1, v2)
	}
	if NoExprID.IsValid() {
		t.Fatalf("NoExprID must be invalid")
	}
}

func TestTypedAccessors(t *testing.T) {
	b := NewBuilder(Hints{})
	obj := b.Exprs.NewThis(source.Span{})
	get := b.Exprs.NewGet(source.Span{}, obj, b.Intern("name"))

	if _, ok := b.Exprs.Variable(get); ok {
		t.Fatalf("Get node identified as Variable")
	}
	data, ok := b.Exprs.GetExpr(get)
	if !ok || data.Object != obj || b.Name(data.Name) != "name" {
		t.Fatalf("GetExpr = %+v, %v", data, ok)
	}
	if b.Exprs.Get(obj).Kind != ExprThis {
		t.Fatalf("kind = %v", b.Exprs.Get(obj).Kind)
	}
	if b.Exprs.Get(ExprID(999)) != nil {
		t.Fatalf("out of range id must return nil")
	}
}

func TestStatementsAndPrograms(t *testing.T) {
	b := NewBuilder(Hints{})
	lit := b.Exprs.NewLiteral(source.Span{}, ExprLiteralData{Kind: LitNumber, Number: 3})
	pr := b.Stmts.NewPrint(source.Span{}, lit)
	gl := b.Stmts.NewGlobal(source.Span{}, []Name{{ID: b.Intern("g")}})
	nl := b.Stmts.NewNonlocal(source.Span{}, []Name{{ID: b.Intern("n")}})

	if _, ok := b.Stmts.NameList(gl); !ok {
		t.Fatalf("NameList must accept Global")
	}
	if d, ok := b.Stmts.NameList(nl); !ok || b.Name(d.Names[0].ID) != "n" {
		t.Fatalf("NameList must accept Nonlocal")
	}
	if _, ok := b.Stmts.NameList(pr); ok {
		t.Fatalf("NameList accepted Print")
	}

	p := b.NewProgram(0, source.Span{}, []StmtID{pr, gl})
	if got := b.Program(p); got == nil || len(got.Stmts) != 2 {
		t.Fatalf("program = %+v", got)
	}
	if StmtClass.String() != "ClassDecl" || ExprGroup.String() != "Grouping" || BinStrictEq.String() != "===" {
		t.Fatalf("names drifted")
	}
}
