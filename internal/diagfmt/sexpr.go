package diagfmt

import (
	"fmt"
	"strings"

	"myton/internal/ast"
)

// FormatSExpr renders statements one per line in a compact prefix form,
// e.g. `(var a (+ 1 2))`. Parser tests and `myton parse --format sexpr`
// use it.
func FormatSExpr(b *ast.Builder, stmts []ast.StmtID) string {
	var sb strings.Builder
	for i, id := range stmts {
		if i > 0 {
			sb.WriteByte('\n')
		}
		writeStmt(&sb, b, id)
	}
	return sb.String()
}

// ExprSExpr renders a single expression.
func ExprSExpr(b *ast.Builder, id ast.ExprID) string {
	var sb strings.Builder
	writeExpr(&sb, b, id)
	return sb.String()
}

func writeStmt(sb *strings.Builder, b *ast.Builder, id ast.StmtID) {
	st := b.Stmts.Get(id)
	if st == nil {
		sb.WriteString("<nil>")
		return
	}
	switch st.Kind {
	case ast.StmtExpr:
		d, _ := b.Stmts.Expr(id)
		sb.WriteString("(expr ")
		writeExpr(sb, b, d.Expr)
	case ast.StmtPrint:
		d, _ := b.Stmts.Print(id)
		sb.WriteString("(print ")
		writeExpr(sb, b, d.Expr)
	case ast.StmtVar:
		d, _ := b.Stmts.Var(id)
		fmt.Fprintf(sb, "(var %s ", b.Name(d.Name.ID))
		writeExpr(sb, b, d.Value)
	case ast.StmtIf:
		d, _ := b.Stmts.If(id)
		sb.WriteString("(if ")
		writeExpr(sb, b, d.Cond)
		sb.WriteByte(' ')
		writeStmt(sb, b, d.Then)
		if d.Else.IsValid() {
			sb.WriteByte(' ')
			writeStmt(sb, b, d.Else)
		}
	case ast.StmtWhile:
		d, _ := b.Stmts.While(id)
		sb.WriteString("(while ")
		writeExpr(sb, b, d.Cond)
		sb.WriteByte(' ')
		writeStmt(sb, b, d.Body)
	case ast.StmtForeach:
		d, _ := b.Stmts.Foreach(id)
		fmt.Fprintf(sb, "(for %s ", b.Name(d.Var.ID))
		writeExpr(sb, b, d.Iterable)
		sb.WriteByte(' ')
		writeStmt(sb, b, d.Body)
	case ast.StmtBlock:
		d, _ := b.Stmts.Block(id)
		sb.WriteString("(block")
		for _, s := range d.Stmts {
			sb.WriteByte(' ')
			writeStmt(sb, b, s)
		}
	case ast.StmtFunction:
		d, _ := b.Stmts.Function(id)
		fmt.Fprintf(sb, "(def %s (%s) ", b.Name(d.Name.ID), joinNames(b, d.Params))
		writeStmt(sb, b, d.Body)
	case ast.StmtReturn:
		d, _ := b.Stmts.Return(id)
		sb.WriteString("(return")
		if d.Value.IsValid() {
			sb.WriteByte(' ')
			writeExpr(sb, b, d.Value)
		}
	case ast.StmtGlobal, ast.StmtNonlocal:
		d, _ := b.Stmts.NameList(id)
		kw := "global"
		if st.Kind == ast.StmtNonlocal {
			kw = "nonlocal"
		}
		fmt.Fprintf(sb, "(%s %s", kw, joinNames(b, d.Names))
	case ast.StmtClass:
		d, _ := b.Stmts.Class(id)
		fmt.Fprintf(sb, "(class %s", b.Name(d.Name.ID))
		if d.Superclass.IsValid() {
			sb.WriteString(" < ")
			writeExpr(sb, b, d.Superclass)
		}
		for _, m := range d.Methods {
			sb.WriteByte(' ')
			writeStmt(sb, b, m)
		}
	default:
		sb.WriteString("(?")
	}
	sb.WriteByte(')')
}

func writeExpr(sb *strings.Builder, b *ast.Builder, id ast.ExprID) {
	e := b.Exprs.Get(id)
	if e == nil {
		sb.WriteString("<nil>")
		return
	}
	switch e.Kind {
	case ast.ExprLiteral:
		d, _ := b.Exprs.Literal(id)
		sb.WriteString(literalText(b, d))
	case ast.ExprVariable:
		d, _ := b.Exprs.Variable(id)
		sb.WriteString(b.Name(d.Name))
	case ast.ExprThis:
		sb.WriteString("self")
	case ast.ExprList:
		d, _ := b.Exprs.List(id)
		sb.WriteByte('[')
		for i, el := range d.Elements {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeExpr(sb, b, el)
		}
		sb.WriteByte(']')
	case ast.ExprBinary:
		d, _ := b.Exprs.Binary(id)
		fmt.Fprintf(sb, "(%s ", d.Op)
		writeExpr(sb, b, d.Left)
		sb.WriteByte(' ')
		writeExpr(sb, b, d.Right)
		sb.WriteByte(')')
	case ast.ExprLogical:
		d, _ := b.Exprs.Logical(id)
		fmt.Fprintf(sb, "(%s ", d.Op)
		writeExpr(sb, b, d.Left)
		sb.WriteByte(' ')
		writeExpr(sb, b, d.Right)
		sb.WriteByte(')')
	case ast.ExprUnary:
		d, _ := b.Exprs.Unary(id)
		fmt.Fprintf(sb, "(%s ", d.Op)
		writeExpr(sb, b, d.Operand)
		sb.WriteByte(')')
	case ast.ExprCall:
		d, _ := b.Exprs.Call(id)
		sb.WriteString("(call ")
		writeExpr(sb, b, d.Callee)
		for _, a := range d.Args {
			sb.WriteByte(' ')
			writeExpr(sb, b, a)
		}
		sb.WriteByte(')')
	case ast.ExprGroup:
		d, _ := b.Exprs.Group(id)
		sb.WriteString("(group ")
		writeExpr(sb, b, d.Inner)
		sb.WriteByte(')')
	case ast.ExprGet:
		d, _ := b.Exprs.GetExpr(id)
		sb.WriteString("(. ")
		writeExpr(sb, b, d.Object)
		fmt.Fprintf(sb, " %s)", b.Name(d.Name))
	case ast.ExprSet:
		d, _ := b.Exprs.Set(id)
		sb.WriteString("(set ")
		writeExpr(sb, b, d.Object)
		fmt.Fprintf(sb, " %s ", b.Name(d.Name))
		writeExpr(sb, b, d.Value)
		sb.WriteByte(')')
	case ast.ExprSuper:
		d, _ := b.Exprs.Super(id)
		fmt.Fprintf(sb, "(super %s)", b.Name(d.Method))
	default:
		sb.WriteString("?")
	}
}

func literalText(b *ast.Builder, d *ast.ExprLiteralData) string {
	switch d.Kind {
	case ast.LitTrue:
		return "True"
	case ast.LitFalse:
		return "False"
	case ast.LitNumber:
		return b.Name(d.Text)
	case ast.LitString:
		return fmt.Sprintf("%q", b.Name(d.Text))
	}
	return "None"
}

func joinNames(b *ast.Builder, names []ast.Name) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = b.Name(n.ID)
	}
	return strings.Join(parts, " ")
}
