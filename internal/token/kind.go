package token

// Kind represents the category of a source token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF
	Newline

	Ident
	NumberLit
	StringLit

	KwAnd      // and
	KwOr       // or
	KwIf       // if
	KwElif     // elif
	KwElse     // else
	KwWhile    // while
	KwFor      // for
	KwIn       // in
	KwDef      // def
	KwClass    // class
	KwReturn   // return
	KwPrint    // print
	KwGlobal   // global
	KwNonlocal // nonlocal
	KwSelf     // self
	KwSuper    // super
	KwTrue     // True
	KwFalse    // False
	KwNone     // None
	KwPass     // pass

	Plus     // +
	Minus    // -
	Star     // *
	Slash    // /
	Percent  // %
	Bang     // !
	BangEq   // !=
	Assign   // =
	EqEq     // ==
	EqEqEq   // ===
	Lt       // <
	LtEq     // <=
	Gt       // >
	GtEq     // >=
	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	Comma    // ,
	Dot      // .
	Colon    // :

	kindCount
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Newline:    "Newline",
	Ident:      "Ident",
	NumberLit:  "NumberLit",
	StringLit:  "StringLit",
	KwAnd:      "KwAnd",
	KwOr:       "KwOr",
	KwIf:       "KwIf",
	KwElif:     "KwElif",
	KwElse:     "KwElse",
	KwWhile:    "KwWhile",
	KwFor:      "KwFor",
	KwIn:       "KwIn",
	KwDef:      "KwDef",
	KwClass:    "KwClass",
	KwReturn:   "KwReturn",
	KwPrint:    "KwPrint",
	KwGlobal:   "KwGlobal",
	KwNonlocal: "KwNonlocal",
	KwSelf:     "KwSelf",
	KwSuper:    "KwSuper",
	KwTrue:     "KwTrue",
	KwFalse:    "KwFalse",
	KwNone:     "KwNone",
	KwPass:     "KwPass",
	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	Slash:      "Slash",
	Percent:    "Percent",
	Bang:       "Bang",
	BangEq:     "BangEq",
	Assign:     "Assign",
	EqEq:       "EqEq",
	EqEqEq:     "EqEqEq",
	Lt:         "Lt",
	LtEq:       "LtEq",
	Gt:         "Gt",
	GtEq:       "GtEq",
	LParen:     "LParen",
	RParen:     "RParen",
	LBracket:   "LBracket",
	RBracket:   "RBracket",
	Comma:      "Comma",
	Dot:        "Dot",
	Colon:      "Colon",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k >= KwAnd && k <= KwPass }

// IsOperator reports whether k is punctuation or an operator.
func (k Kind) IsOperator() bool { return k >= Plus && k <= Colon }

// StartsStatement reports kinds the parser resynchronises on.
func (k Kind) StartsStatement() bool {
	switch k {
	case KwDef, KwClass, KwIf, KwWhile, KwFor, KwPrint, KwReturn, KwGlobal, KwNonlocal:
		return true
	}
	return false
}
