package diagfmt

import (
	"fmt"
	"strings"

	"myton/internal/ast"
	"myton/internal/resolver"
	"myton/internal/source"
)

// FormatLocals renders a hop table one entry per line as
// `line:col name hop`, ordered by expression id.
func FormatLocals(b *ast.Builder, fs *source.FileSet, locals *resolver.Locals) string {
	var sb strings.Builder
	for _, e := range locals.Entries() {
		ex := b.Exprs.Get(e.Expr)
		if ex == nil {
			continue
		}
		start, _ := fs.Resolve(ex.Span)
		fmt.Fprintf(&sb, "%s %s %d\n", start, localName(b, e.Expr, ex.Kind), e.Hop)
	}
	return sb.String()
}

func localName(b *ast.Builder, id ast.ExprID, kind ast.ExprKind) string {
	switch kind {
	case ast.ExprVariable:
		if v, ok := b.Exprs.Variable(id); ok {
			return b.Name(v.Name)
		}
	case ast.ExprThis:
		return resolver.ThisName
	case ast.ExprSuper:
		if s, ok := b.Exprs.Super(id); ok {
			return resolver.SuperName + "." + b.Name(s.Method)
		}
	}
	return "?"
}
