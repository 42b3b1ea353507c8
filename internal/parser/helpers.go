package parser

import (
	"myton/internal/diag"
	"myton/internal/source"
	"myton/internal/token"
)

func (p *Parser) peek() token.Token { return p.toks[p.pos] }

// peekN looks n tokens ahead, clamping at EOF.
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

// advance съедает токен; EOF никогда не съедается.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return tok
	}
	p.pos++
	if tok.Kind != token.Newline && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) match(kinds ...token.Kind) (token.Token, bool) {
	for _, k := range kinds {
		if p.at(k) {
			return p.advance(), true
		}
	}
	return token.Token{}, false
}

// diagnosticSpan points at the offending token, or just past the last
// consumed one when the offender is an empty Newline/EOF.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Span.Empty() || peek.Kind == token.Newline {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect consumes k or reports msg at the current position.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.diagnosticSpan()}, false
}

// expectColon is expect(Colon) with an insertion hint.
func (p *Parser) expectColon(msg string) bool {
	if p.at(token.Colon) {
		p.advance()
		return true
	}
	if !p.fail() {
		return false
	}
	at := p.lastSpan.End
	diag.ReportError(p.opts.Reporter, diag.SynExpectColon, p.diagnosticSpan(), msg).
		WithFix("insert ':'", diag.FixEdit{Span: source.Span{File: p.file, Start: at, End: at}, NewText: ":"}).
		Emit()
	return false
}

// expectLineEnd accepts one or more Newline tokens.
func (p *Parser) expectLineEnd(msg string) (token.Token, bool) {
	nl, ok := p.expect(token.Newline, diag.SynExpectNewline, msg)
	if !ok {
		return nl, false
	}
	for p.at(token.Newline) {
		nl = p.advance()
	}
	return nl, true
}

func (p *Parser) err(code diag.Code, msg string) {
	if p.fail() {
		p.opts.Reporter.Report(code, diag.SevError, p.diagnosticSpan(), msg, nil, nil)
	}
}

// fail counts a syntax error and reports whether it should be emitted.
// An Invalid token was already reported by the lexer; past MaxErrors
// nothing is emitted.
func (p *Parser) fail() bool {
	p.errors++
	if p.at(token.Invalid) || p.opts.Reporter == nil {
		return false
	}
	return p.opts.MaxErrors == 0 || p.errors <= p.opts.MaxErrors
}

// resync skips the rest of the failed line and every deeper-indented line
// after it, so the body of a broken header is not parsed as top-level code.
func (p *Parser) resync(indent uint32) {
	for !p.at(token.EOF) && !p.at(token.Newline) {
		p.advance()
	}
	for p.at(token.Newline) {
		p.advance()
	}
	for !p.at(token.EOF) && p.peek().Indent > indent {
		p.advance()
	}
}

func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}
