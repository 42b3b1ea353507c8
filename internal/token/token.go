package token

import "myton/internal/source"

// Token is a single lexeme with its location and line indentation.
type Token struct {
	Kind   Kind
	Span   source.Span
	Text   string
	Indent uint32
}

// IsLiteral reports number, string, boolean and None literals.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, KwTrue, KwFalse, KwNone:
		return true
	}
	return false
}

func (t Token) IsIdent() bool { return t.Kind == Ident }
