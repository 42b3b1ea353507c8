package parser

import (
	"myton/internal/ast"
	"myton/internal/diag"
	"myton/internal/token"
)

// declaration := function | varDecl | class | statement
func (p *Parser) declaration() (ast.StmtID, bool) {
	switch {
	case p.at(token.KwDef):
		return p.function()
	case p.at(token.Ident) && p.peekN(1).Kind == token.Assign:
		return p.varDecl()
	case p.at(token.KwClass):
		return p.class()
	}
	return p.statement()
}

func (p *Parser) statement() (ast.StmtID, bool) {
	switch p.peek().Kind {
	case token.KwIf:
		return p.ifStmt()
	case token.KwWhile:
		return p.whileStmt()
	case token.KwFor:
		return p.forStmt()
	case token.KwPrint:
		return p.printStmt()
	case token.KwReturn:
		return p.returnStmt()
	case token.KwGlobal, token.KwNonlocal:
		return p.namesStmt()
	}
	return p.exprStmt()
}

func (p *Parser) name(msg string) (ast.Name, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, msg)
	if !ok {
		return ast.Name{}, false
	}
	return ast.Name{ID: p.b.Intern(tok.Text), Span: tok.Span}, true
}

func (p *Parser) function() (ast.StmtID, bool) {
	kw := p.advance() // def
	name, ok := p.name("Expect function name.")
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.LParen, diag.SynExpectLeftParen, "Expect '(' after function name."); !ok {
		return ast.NoStmtID, false
	}
	var params []ast.Name
	if !p.at(token.RParen) {
		for {
			param, ok := p.name("Expect parameter name.")
			if !ok {
				return ast.NoStmtID, false
			}
			params = append(params, param)
			if _, more := p.match(token.Comma); !more {
				break
			}
		}
	}
	if _, ok = p.expect(token.RParen, diag.SynExpectRightParen, "Expect ')' after parameters."); !ok {
		return ast.NoStmtID, false
	}
	if !p.expectColon("Expect ':' before function body.") {
		return ast.NoStmtID, false
	}
	body, ok := p.block()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewFunction(p.spanFrom(kw.Span), name, params, body), true
}

func (p *Parser) varDecl() (ast.StmtID, bool) {
	nameTok := p.advance()
	p.advance() // '='
	value, ok := p.expression()
	if !ok {
		return ast.NoStmtID, false
	}
	span := p.spanFrom(nameTok.Span)
	if _, ok = p.expectLineEnd("Expect newline after variable declaration."); !ok {
		return ast.NoStmtID, false
	}
	name := ast.Name{ID: p.b.Intern(nameTok.Text), Span: nameTok.Span}
	return p.b.Stmts.NewVar(span, name, value), true
}

// class := 'class' Ident ['(' Ident ')'] ':' NEWLINE { def }
func (p *Parser) class() (ast.StmtID, bool) {
	kw := p.advance()
	indent := kw.Indent
	name, ok := p.name("Expect class name.")
	if !ok {
		return ast.NoStmtID, false
	}

	superclass := ast.NoExprID
	if _, ok := p.match(token.LParen); ok {
		sup, ok := p.name("Expect superclass name.")
		if !ok {
			return ast.NoStmtID, false
		}
		superclass = p.b.Exprs.NewVariable(sup.Span, sup.ID)
		if _, ok = p.expect(token.RParen, diag.SynExpectRightParen, "Expect ')' after superclass name."); !ok {
			return ast.NoStmtID, false
		}
	}
	if !p.expectColon("Expect ':' after class name.") {
		return ast.NoStmtID, false
	}
	span := p.spanFrom(kw.Span)
	if _, ok = p.expectLineEnd("Expect newline after class name."); !ok {
		return ast.NoStmtID, false
	}

	var methods []ast.StmtID
	for !p.at(token.EOF) && p.peek().Indent > indent {
		if !p.at(token.KwDef) {
			lineIndent := p.peek().Indent
			p.err(diag.SynClassBodyExpectDef, "Expect 'def' before class method.")
			p.resync(lineIndent)
			continue
		}
		lineIndent := p.peek().Indent
		m, ok := p.function()
		if !ok {
			p.resync(lineIndent)
			continue
		}
		methods = append(methods, m)
	}
	if len(methods) > 0 {
		span = span.Cover(p.b.Stmts.Get(methods[len(methods)-1]).Span)
	}
	return p.b.Stmts.NewClass(span, name, superclass, methods), true
}

// block := NEWLINE { declaration indented deeper than the header }
// A missing body is reported but yields an empty block so the header
// itself survives.
func (p *Parser) block() (ast.StmtID, bool) {
	nl, ok := p.expectLineEnd("Expect newline before code block.")
	if !ok {
		return ast.NoStmtID, false
	}
	indent := nl.Indent
	start := p.peek().Span

	if p.at(token.EOF) || p.peek().Indent <= indent {
		p.err(diag.SynExpectIndentedBlock, "Expect indented block.")
		return p.b.Stmts.NewBlock(start.Head(), nil), true
	}

	var stmts []ast.StmtID
	for !p.at(token.EOF) && p.peek().Indent > indent {
		if p.enough() {
			break
		}
		if p.at(token.Newline) {
			p.advance()
			continue
		}
		lineIndent := p.peek().Indent
		id, ok := p.declaration()
		if !ok {
			p.resync(lineIndent)
			continue
		}
		stmts = append(stmts, id)
	}
	span := start.Head()
	if len(stmts) > 0 {
		span = p.b.Stmts.Get(stmts[0]).Span.Cover(p.b.Stmts.Get(stmts[len(stmts)-1]).Span)
	}
	return p.b.Stmts.NewBlock(span, stmts), true
}

// ifStmt := 'if' expr ':' block { 'elif' expr ':' block } [ 'else' ':' block ]
// elif is folded into a nested If in the else branch.
func (p *Parser) ifStmt() (ast.StmtID, bool) {
	kw := p.advance()
	return p.ifTail(kw, "Expect ':' after if condition.")
}

func (p *Parser) ifTail(kw token.Token, colonMsg string) (ast.StmtID, bool) {
	cond, ok := p.expression()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.expectColon(colonMsg) {
		return ast.NoStmtID, false
	}
	then, ok := p.block()
	if !ok {
		return ast.NoStmtID, false
	}

	els := ast.NoStmtID
	switch {
	case p.at(token.KwElif) && p.peek().Indent == kw.Indent:
		elifKw := p.advance()
		if els, ok = p.ifTail(elifKw, "Expect ':' after elif condition."); !ok {
			return ast.NoStmtID, false
		}
	case p.at(token.KwElse) && p.peek().Indent == kw.Indent:
		p.advance()
		if !p.expectColon("Expect ':' after else.") {
			return ast.NoStmtID, false
		}
		if els, ok = p.block(); !ok {
			return ast.NoStmtID, false
		}
	}
	return p.b.Stmts.NewIf(p.spanFrom(kw.Span), cond, then, els), true
}

func (p *Parser) whileStmt() (ast.StmtID, bool) {
	kw := p.advance()
	cond, ok := p.expression()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.expectColon("Expect ':' after while condition.") {
		return ast.NoStmtID, false
	}
	body, ok := p.block()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewWhile(p.spanFrom(kw.Span), cond, body), true
}

// forStmt := 'for' Ident 'in' expr ':' block
func (p *Parser) forStmt() (ast.StmtID, bool) {
	kw := p.advance()
	v, ok := p.name("Expect variable name.")
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.KwIn, diag.SynForMissingIn, "Expect 'in' after variable name."); !ok {
		return ast.NoStmtID, false
	}
	iterable, ok := p.expression()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.expectColon("Expect ':' after for collection.") {
		return ast.NoStmtID, false
	}
	body, ok := p.block()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewForeach(p.spanFrom(kw.Span), v, iterable, body), true
}

func (p *Parser) printStmt() (ast.StmtID, bool) {
	kw := p.advance()
	value, ok := p.expression()
	if !ok {
		return ast.NoStmtID, false
	}
	span := p.spanFrom(kw.Span)
	if _, ok = p.expectLineEnd("Expect newline after expression."); !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewPrint(span, value), true
}

func (p *Parser) returnStmt() (ast.StmtID, bool) {
	kw := p.advance()
	value := ast.NoExprID
	if !p.at(token.Newline) && !p.at(token.EOF) {
		var ok bool
		if value, ok = p.expression(); !ok {
			return ast.NoStmtID, false
		}
	}
	span := p.spanFrom(kw.Span)
	if _, ok := p.expectLineEnd("Expect newline after return value."); !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewReturn(span, value), true
}

// namesStmt := ('global' | 'nonlocal') Ident { ',' Ident }
func (p *Parser) namesStmt() (ast.StmtID, bool) {
	kw := p.advance()
	var names []ast.Name
	for {
		n, ok := p.name("Expect identifier after '" + kw.Text + "'.")
		if !ok {
			return ast.NoStmtID, false
		}
		names = append(names, n)
		if _, more := p.match(token.Comma); !more {
			break
		}
	}
	span := p.spanFrom(kw.Span)
	if _, ok := p.expectLineEnd("Expect newline after " + kw.Text + " statement."); !ok {
		return ast.NoStmtID, false
	}
	if kw.Kind == token.KwGlobal {
		return p.b.Stmts.NewGlobal(span, names), true
	}
	return p.b.Stmts.NewNonlocal(span, names), true
}

func (p *Parser) exprStmt() (ast.StmtID, bool) {
	start := p.peek().Span
	value, ok := p.expression()
	if !ok {
		return ast.NoStmtID, false
	}
	span := p.spanFrom(start)
	if _, ok = p.expectLineEnd("Expect newline after expression."); !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewExpr(span, value), true
}
