package parser

import (
	"context"

	"myton/internal/ast"
	"myton/internal/diag"
	"myton/internal/lexer"
	"myton/internal/source"
	"myton/internal/token"
)

type Options struct {
	// MaxErrors stops parsing once reached; zero means unlimited.
	MaxErrors uint
	Reporter  diag.Reporter
}

type Result struct {
	Program ast.ProgramID
	Errors  uint
	// Stopped is set when MaxErrors or the context cut parsing short.
	Stopped bool
}

// Parser: состояние парсера на один файл или один ввод REPL.
type Parser struct {
	toks     []token.Token
	pos      int
	b        *ast.Builder
	opts     Options
	file     source.FileID
	lastSpan source.Span // последний съеденный значимый токен
	errors   uint
}

// ParseFile drains lx and builds one Program into b.
func ParseFile(ctx context.Context, fs *source.FileSet, lx *lexer.Lexer, b *ast.Builder, opts Options) Result {
	var toks []token.Token
	for {
		tk := lx.Next()
		toks = append(toks, tk)
		if tk.Kind == token.EOF {
			break
		}
	}
	p := &Parser{toks: toks, b: b, opts: opts, file: toks[0].Span.File}
	p.lastSpan = toks[0].Span.Head()

	stmts, stopped := p.parseProgram(ctx)
	span := source.Span{File: p.file}
	if len(stmts) > 0 {
		span = b.Stmts.Get(stmts[0]).Span.Cover(b.Stmts.Get(stmts[len(stmts)-1]).Span)
	}
	if fs != nil && int(p.file) < fs.Len() {
		// программа покрывает весь файл, а не только распознанные операторы
		span = span.Cover(source.Span{File: p.file, Start: 0, End: uint32(len(fs.Get(p.file).Content))})
	}
	id := b.NewProgram(p.file, span, stmts)
	return Result{Program: id, Errors: p.errors, Stopped: stopped}
}

func (p *Parser) parseProgram(ctx context.Context) ([]ast.StmtID, bool) {
	var stmts []ast.StmtID
	for !p.at(token.EOF) {
		if ctx.Err() != nil || p.enough() {
			return stmts, true
		}
		if p.at(token.Newline) {
			p.advance()
			continue
		}
		indent := p.peek().Indent
		if id, ok := p.declaration(); ok {
			stmts = append(stmts, id)
		} else {
			p.resync(indent)
		}
	}
	return stmts, false
}

func (p *Parser) enough() bool {
	return p.opts.MaxErrors != 0 && p.errors >= p.opts.MaxErrors
}
