package parser

import (
	"strconv"

	"myton/internal/ast"
	"myton/internal/diag"
	"myton/internal/token"
)

func (p *Parser) expression() (ast.ExprID, bool) {
	return p.assignment()
}

// assignment := or [ '=' assignment ]  (target must be a Get)
func (p *Parser) assignment() (ast.ExprID, bool) {
	start := p.peek().Span
	expr, ok := p.or()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Assign) {
		return expr, true
	}

	get, isGet := p.b.Exprs.GetExpr(expr)
	if !isGet {
		p.err(diag.SynInvalidAssignTarget, "Invalid assignment target.")
		return ast.NoExprID, false
	}
	p.advance() // '='
	value, ok := p.assignment()
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewSet(p.spanFrom(start), get.Object, get.Name, value), true
}

func (p *Parser) or() (ast.ExprID, bool) {
	return p.logical(token.KwOr, ast.LogicalOr, p.and)
}

func (p *Parser) and() (ast.ExprID, bool) {
	return p.logical(token.KwAnd, ast.LogicalAnd, p.equality)
}

func (p *Parser) logical(kind token.Kind, op ast.LogicalOp, next func() (ast.ExprID, bool)) (ast.ExprID, bool) {
	start := p.peek().Span
	left, ok := next()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(kind) {
		p.advance()
		right, ok := next()
		if !ok {
			return ast.NoExprID, false
		}
		left = p.b.Exprs.NewLogical(p.spanFrom(start), op, left, right)
	}
	return left, true
}

var (
	equalityOps = map[token.Kind]ast.BinaryOp{
		token.EqEq: ast.BinEq, token.BangEq: ast.BinNotEq, token.EqEqEq: ast.BinStrictEq,
	}
	comparisonOps = map[token.Kind]ast.BinaryOp{
		token.Lt: ast.BinLess, token.LtEq: ast.BinLessEq, token.Gt: ast.BinGreater, token.GtEq: ast.BinGreaterEq,
	}
	termOps = map[token.Kind]ast.BinaryOp{
		token.Plus: ast.BinAdd, token.Minus: ast.BinSub,
	}
	factorOps = map[token.Kind]ast.BinaryOp{
		token.Star: ast.BinMul, token.Slash: ast.BinDiv, token.Percent: ast.BinMod,
	}
)

func (p *Parser) equality() (ast.ExprID, bool) {
	return p.binary(equalityOps, p.comparison)
}

func (p *Parser) comparison() (ast.ExprID, bool) {
	return p.binary(comparisonOps, p.term)
}

func (p *Parser) term() (ast.ExprID, bool) {
	return p.binary(termOps, p.factor)
}

func (p *Parser) factor() (ast.ExprID, bool) {
	return p.binary(factorOps, p.unary)
}

// binary parses a left-associative level of the precedence ladder.
func (p *Parser) binary(ops map[token.Kind]ast.BinaryOp, next func() (ast.ExprID, bool)) (ast.ExprID, bool) {
	start := p.peek().Span
	left, ok := next()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		op, isOp := ops[p.peek().Kind]
		if !isOp {
			return left, true
		}
		opTok := p.advance()
		right, ok := next()
		if !ok {
			return ast.NoExprID, false
		}
		left = p.b.Exprs.NewBinary(p.spanFrom(start), op, opTok.Span, left, right)
	}
}

func (p *Parser) unary() (ast.ExprID, bool) {
	if tok, ok := p.match(token.Bang, token.Minus); ok {
		operand, ok := p.unary()
		if !ok {
			return ast.NoExprID, false
		}
		op := ast.UnaryNot
		if tok.Kind == token.Minus {
			op = ast.UnaryNeg
		}
		return p.b.Exprs.NewUnary(p.spanFrom(tok.Span), op, operand), true
	}
	return p.call()
}

// call := primary { '(' args ')' | '.' Ident }
func (p *Parser) call() (ast.ExprID, bool) {
	start := p.peek().Span
	expr, ok := p.primary()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		switch {
		case p.at(token.LParen):
			p.advance()
			args, ok := p.exprList(token.RParen)
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok = p.expect(token.RParen, diag.SynExpectRightParen, "Expect ')' after arguments."); !ok {
				return ast.NoExprID, false
			}
			expr = p.b.Exprs.NewCall(p.spanFrom(start), expr, args)
		case p.at(token.Dot):
			p.advance()
			name, ok := p.name("Expect property name after '.'.")
			if !ok {
				return ast.NoExprID, false
			}
			expr = p.b.Exprs.NewGet(p.spanFrom(start), expr, name.ID)
		default:
			return expr, true
		}
	}
}

// exprList parses comma separated expressions up to (not including) end.
func (p *Parser) exprList(end token.Kind) ([]ast.ExprID, bool) {
	if p.at(end) {
		return nil, true
	}
	var out []ast.ExprID
	for {
		e, ok := p.expression()
		if !ok {
			return nil, false
		}
		out = append(out, e)
		if _, more := p.match(token.Comma); !more {
			return out, true
		}
	}
}

func (p *Parser) primary() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.NumberLit:
		p.advance()
		n, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			// лексер пропускает только \d+(\.\d+)?, так что это переполнение
			diag.ReportError(p.opts.Reporter, diag.LexBadNumber, tok.Span, "number literal out of range").Emit()
		}
		return p.literal(tok, ast.ExprLiteralData{Kind: ast.LitNumber, Number: n}), true
	case token.StringLit:
		p.advance()
		return p.literal(tok, ast.ExprLiteralData{Kind: ast.LitString}), true
	case token.KwTrue:
		p.advance()
		return p.literal(tok, ast.ExprLiteralData{Kind: ast.LitTrue}), true
	case token.KwFalse:
		p.advance()
		return p.literal(tok, ast.ExprLiteralData{Kind: ast.LitFalse}), true
	case token.KwNone, token.KwPass:
		p.advance()
		return p.literal(tok, ast.ExprLiteralData{Kind: ast.LitNone}), true
	case token.LParen:
		p.advance()
		inner, ok := p.expression()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok = p.expect(token.RParen, diag.SynExpectRightParen, "Expect ')' after expression."); !ok {
			return ast.NoExprID, false
		}
		return p.b.Exprs.NewGroup(p.spanFrom(tok.Span), inner), true
	case token.Ident:
		p.advance()
		return p.b.Exprs.NewVariable(tok.Span, p.b.Intern(tok.Text)), true
	case token.LBracket:
		p.advance()
		elems, ok := p.exprList(token.RBracket)
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok = p.expect(token.RBracket, diag.SynExpectRightBracket, "Expect ']' after expression."); !ok {
			return ast.NoExprID, false
		}
		return p.b.Exprs.NewList(p.spanFrom(tok.Span), elems), true
	case token.KwSelf:
		p.advance()
		return p.b.Exprs.NewThis(tok.Span), true
	case token.KwSuper:
		p.advance()
		if _, ok := p.expect(token.Dot, diag.SynSuperExpectDot, "Expect '.' after 'super'."); !ok {
			return ast.NoExprID, false
		}
		method, ok := p.name("Expect superclass method name.")
		if !ok {
			return ast.NoExprID, false
		}
		return p.b.Exprs.NewSuper(p.spanFrom(tok.Span), method.ID), true
	}
	p.err(diag.SynExpectExpression, "Expect expression.")
	return ast.NoExprID, false
}

func (p *Parser) literal(tok token.Token, data ast.ExprLiteralData) ast.ExprID {
	data.Text = p.b.Intern(tok.Text)
	return p.b.Exprs.NewLiteral(tok.Span, data)
}
