package lexer

import (
	"myton/internal/diag"
	"myton/internal/token"
)

// scanNumber reads \d+(\.\d+)?. A '.' not followed by a digit is left for
// the next token, so "1.x" lexes as 1 . x. Letters glued to the digits
// make the literal malformed.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "invalid number literal '"+lx.file.Text(sp)+"'")
		return lx.make(token.Invalid, sp, lx.file.Text(sp))
	}

	sp := lx.cursor.SpanFrom(start)
	return lx.make(token.NumberLit, sp, lx.file.Text(sp))
}
