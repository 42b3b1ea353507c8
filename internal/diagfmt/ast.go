package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"myton/internal/ast"
	"myton/internal/source"
)

// astNode is the shared intermediate form of the tree and JSON dumps.
type astNode struct {
	Role     string     `json:"role,omitempty"`
	Kind     string     `json:"kind"`
	Detail   string     `json:"detail,omitempty"`
	ID       uint32     `json:"id,omitempty"`
	Span     string     `json:"span"`
	Children []*astNode `json:"children,omitempty"`
}

func (n *astNode) add(role string, child *astNode) {
	if child == nil {
		return
	}
	child.Role = role
	n.Children = append(n.Children, child)
}

type astDumper struct {
	b  *ast.Builder
	fs *source.FileSet
}

func (d *astDumper) program(id ast.ProgramID) *astNode {
	prog := d.b.Program(id)
	if prog == nil {
		return &astNode{Kind: "Program", Detail: "<nil>"}
	}
	root := &astNode{Kind: "Program", Span: formatSpan(prog.Span, d.fs)}
	if d.fs != nil {
		root.Detail = displayPath(d.fs, prog.File)
	}
	for i, sid := range prog.Stmts {
		root.add(fmt.Sprintf("Stmt[%d]", i), d.stmt(sid))
	}
	return root
}

func (d *astDumper) name(n ast.Name) *astNode {
	return &astNode{Kind: "Name", Detail: d.b.Name(n.ID), Span: formatSpan(n.Span, d.fs)}
}

func (d *astDumper) stmt(id ast.StmtID) *astNode {
	st := d.b.Stmts.Get(id)
	if st == nil {
		return nil
	}
	n := &astNode{Kind: st.Kind.String(), ID: uint32(id), Span: formatSpan(st.Span, d.fs)}
	switch st.Kind {
	case ast.StmtExpr:
		data, _ := d.b.Stmts.Expr(id)
		n.add("Expr", d.expr(data.Expr))
	case ast.StmtPrint:
		data, _ := d.b.Stmts.Print(id)
		n.add("Value", d.expr(data.Expr))
	case ast.StmtVar:
		data, _ := d.b.Stmts.Var(id)
		n.add("Name", d.name(data.Name))
		n.add("Value", d.expr(data.Value))
	case ast.StmtBlock:
		data, _ := d.b.Stmts.Block(id)
		for i, sid := range data.Stmts {
			n.add(fmt.Sprintf("Stmt[%d]", i), d.stmt(sid))
		}
	case ast.StmtIf:
		data, _ := d.b.Stmts.If(id)
		n.add("Cond", d.expr(data.Cond))
		n.add("Then", d.stmt(data.Then))
		if data.Else.IsValid() {
			n.add("Else", d.stmt(data.Else))
		}
	case ast.StmtWhile:
		data, _ := d.b.Stmts.While(id)
		n.add("Cond", d.expr(data.Cond))
		n.add("Body", d.stmt(data.Body))
	case ast.StmtForeach:
		data, _ := d.b.Stmts.Foreach(id)
		n.add("Var", d.name(data.Var))
		n.add("Iterable", d.expr(data.Iterable))
		n.add("Body", d.stmt(data.Body))
	case ast.StmtFunction:
		data, _ := d.b.Stmts.Function(id)
		n.Detail = d.b.Name(data.Name.ID)
		for i, p := range data.Params {
			n.add(fmt.Sprintf("Param[%d]", i), d.name(p))
		}
		n.add("Body", d.stmt(data.Body))
	case ast.StmtReturn:
		data, _ := d.b.Stmts.Return(id)
		if data.Value.IsValid() {
			n.add("Value", d.expr(data.Value))
		}
	case ast.StmtGlobal, ast.StmtNonlocal:
		data, _ := d.b.Stmts.NameList(id)
		names := make([]string, len(data.Names))
		for i, nm := range data.Names {
			names[i] = d.b.Name(nm.ID)
		}
		n.Detail = strings.Join(names, ", ")
	case ast.StmtClass:
		data, _ := d.b.Stmts.Class(id)
		n.Detail = d.b.Name(data.Name.ID)
		if data.Superclass.IsValid() {
			n.add("Superclass", d.expr(data.Superclass))
		}
		for i, m := range data.Methods {
			n.add(fmt.Sprintf("Method[%d]", i), d.stmt(m))
		}
	}
	return n
}

func (d *astDumper) expr(id ast.ExprID) *astNode {
	ex := d.b.Exprs.Get(id)
	if ex == nil {
		return nil
	}
	n := &astNode{Kind: ex.Kind.String(), ID: uint32(id), Span: formatSpan(ex.Span, d.fs)}
	switch ex.Kind {
	case ast.ExprLiteral:
		data, _ := d.b.Exprs.Literal(id)
		n.Detail = d.literal(data)
	case ast.ExprList:
		data, _ := d.b.Exprs.List(id)
		for i, el := range data.Elements {
			n.add(fmt.Sprintf("Elem[%d]", i), d.expr(el))
		}
	case ast.ExprVariable:
		data, _ := d.b.Exprs.Variable(id)
		n.Detail = d.b.Name(data.Name)
	case ast.ExprBinary:
		data, _ := d.b.Exprs.Binary(id)
		n.Detail = data.Op.String()
		n.add("Left", d.expr(data.Left))
		n.add("Right", d.expr(data.Right))
	case ast.ExprLogical:
		data, _ := d.b.Exprs.Logical(id)
		n.Detail = data.Op.String()
		n.add("Left", d.expr(data.Left))
		n.add("Right", d.expr(data.Right))
	case ast.ExprUnary:
		data, _ := d.b.Exprs.Unary(id)
		n.Detail = data.Op.String()
		n.add("Operand", d.expr(data.Operand))
	case ast.ExprCall:
		data, _ := d.b.Exprs.Call(id)
		n.add("Callee", d.expr(data.Callee))
		for i, a := range data.Args {
			n.add(fmt.Sprintf("Arg[%d]", i), d.expr(a))
		}
	case ast.ExprGroup:
		data, _ := d.b.Exprs.Group(id)
		n.add("Inner", d.expr(data.Inner))
	case ast.ExprGet:
		data, _ := d.b.Exprs.GetExpr(id)
		n.Detail = d.b.Name(data.Name)
		n.add("Object", d.expr(data.Object))
	case ast.ExprSet:
		data, _ := d.b.Exprs.Set(id)
		n.Detail = d.b.Name(data.Name)
		n.add("Object", d.expr(data.Object))
		n.add("Value", d.expr(data.Value))
	case ast.ExprSuper:
		data, _ := d.b.Exprs.Super(id)
		n.Detail = d.b.Name(data.Method)
	}
	return n
}

func (d *astDumper) literal(data *ast.ExprLiteralData) string {
	switch data.Kind {
	case ast.LitNumber:
		return strconv.FormatFloat(data.Number, 'f', -1, 64)
	case ast.LitString:
		return strconv.Quote(d.b.Name(data.Text))
	case ast.LitTrue:
		return "True"
	case ast.LitFalse:
		return "False"
	}
	return "None"
}

// FormatASTPretty writes the program as an indented tree.
func FormatASTPretty(w io.Writer, b *ast.Builder, prog ast.ProgramID, fs *source.FileSet) error {
	d := &astDumper{b: b, fs: fs}
	var sb strings.Builder
	writeTree(&sb, d.program(prog), "", "")
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatASTJSON writes the same tree as indented JSON.
func FormatASTJSON(w io.Writer, b *ast.Builder, prog ast.ProgramID, fs *source.FileSet) error {
	d := &astDumper{b: b, fs: fs}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d.program(prog))
}

func (n *astNode) label() string {
	var sb strings.Builder
	if n.Role != "" {
		sb.WriteString(n.Role)
		sb.WriteString(": ")
	}
	sb.WriteString(n.Kind)
	if n.Detail != "" {
		sb.WriteByte(' ')
		sb.WriteString(n.Detail)
	}
	if n.Span != "" {
		sb.WriteString(" (span: ")
		sb.WriteString(n.Span)
		sb.WriteByte(')')
	}
	return sb.String()
}

func writeTree(sb *strings.Builder, n *astNode, marker, prefix string) {
	sb.WriteString(marker)
	sb.WriteString(n.label())
	sb.WriteByte('\n')
	for i, child := range n.Children {
		if i == len(n.Children)-1 {
			writeTree(sb, child, prefix+"└─ ", prefix+"   ")
		} else {
			writeTree(sb, child, prefix+"├─ ", prefix+"│  ")
		}
	}
}
