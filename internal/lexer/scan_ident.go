package lexer

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"myton/internal/diag"
	"myton/internal/token"
)

// scanIdentOrKeyword reads [A-Za-z_][A-Za-z0-9_]* plus Unicode letters.
// Identifiers are NFC-normalised so visually equal names bind the same slot.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 || (r >= utf8RuneSelf && !isIdentStartRune(r)) {
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", r))
		return lx.make(token.Invalid, sp, lx.file.Text(sp))
	}

	for {
		r, sz = lx.peekRune()
		if sz == 0 {
			break
		}
		if r < utf8RuneSelf {
			if !isIdentContinueByte(byte(r)) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.file.Text(sp)
	if k, ok := token.LookupKeyword(text); ok {
		return lx.make(k, sp, text)
	}
	return lx.make(token.Ident, sp, norm.NFC.String(text))
}
