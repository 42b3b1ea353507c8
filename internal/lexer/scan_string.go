package lexer

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"myton/internal/diag"
	"myton/internal/source"
	"myton/internal/token"
)

// scanString reads "..." literals. Newlines are allowed inside. Escapes
// \n \t \r \\ \" \0 are decoded; an unknown escape is reported and kept
// verbatim. Text holds the decoded, NFC-normalised value.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '"'

	var sb strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			lx.cursor.Bump()
			return lx.make(token.StringLit, lx.cursor.SpanFrom(start), norm.NFC.String(sb.String()))
		case '\\':
			escStart := lx.cursor.Mark()
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				continue
			}
			lx.decodeEscape(&sb, escStart)
		default:
			sb.WriteByte(lx.cursor.Bump())
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, source.Span{File: sp.File, Start: sp.Start, End: sp.Start + 1},
		"unterminated string literal")
	return lx.make(token.Invalid, sp, lx.file.Text(sp))
}

func (lx *Lexer) decodeEscape(sb *strings.Builder, escStart Mark) {
	c := lx.cursor.Bump()
	switch c {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case '0':
		sb.WriteByte(0)
	case '\\', '"':
		sb.WriteByte(c)
	default:
		lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), fmt.Sprintf("invalid escape sequence '\\%c'", c))
		sb.WriteByte('\\')
		sb.WriteByte(c)
	}
}
