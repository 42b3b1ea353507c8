package lexer

import (
	"myton/internal/diag"
	"myton/internal/source"
	"myton/internal/token"
)

// Lexer turns a file into tokens. Blank and comment-only lines produce
// nothing; every other line ends with a Newline token, including the last
// one even when the file lacks a trailing '\n'.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token

	atLineStart bool
	lineHasTok  bool
	indent      uint32
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		atLineStart: true,
	}
}

// Next returns the next token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	for {
		if lx.atLineStart {
			if !lx.beginLine() {
				continue
			}
		}
		lx.skipInline()

		if lx.cursor.EOF() {
			if lx.lineHasTok {
				lx.lineHasTok = false
				return lx.make(token.Newline, lx.emptySpan(), "")
			}
			return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
		}

		if lx.cursor.Peek() == '\n' {
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.atLineStart = true
			if lx.lineHasTok {
				lx.lineHasTok = false
				return lx.make(token.Newline, lx.cursor.SpanFrom(start), "\n")
			}
			continue
		}

		tok := lx.scan()
		lx.lineHasTok = true
		return tok
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Tokenize lexes the whole file, EOF included.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// beginLine measures indentation. It returns false when the line is blank
// or comment-only and was skipped entirely.
func (lx *Lexer) beginLine() bool {
	var width uint32
	for {
		switch lx.cursor.Peek() {
		case ' ':
			width++
			lx.cursor.Bump()
			continue
		case '\t':
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			if lx.opts.TabWidth == 0 {
				lx.errLex(diag.LexBadIndent, lx.cursor.SpanFrom(start), "tab used for indentation")
				width++
			} else {
				width += lx.opts.TabWidth - width%lx.opts.TabWidth
			}
			continue
		}
		break
	}

	switch lx.cursor.Peek() {
	case '#':
		lx.skipComment()
		lx.cursor.Eat('\n')
		return false
	case '\n':
		lx.cursor.Bump()
		return false
	case '\r':
		if lx.cursor.PeekAt(1) == '\n' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return false
		}
	}
	if lx.cursor.EOF() {
		lx.atLineStart = false
		return true
	}
	lx.indent = width
	lx.atLineStart = false
	return true
}

func (lx *Lexer) skipInline() {
	for {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\r':
			lx.cursor.Bump()
		case '#':
			lx.skipComment()
		default:
			return
		}
	}
}

// skipComment stops before the terminating '\n'.
func (lx *Lexer) skipComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) scan() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperator()
	}
}

func (lx *Lexer) make(kind token.Kind, sp source.Span, text string) token.Token {
	return token.Token{Kind: kind, Span: sp, Text: text, Indent: lx.indent}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
}
