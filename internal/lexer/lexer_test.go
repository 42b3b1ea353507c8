package lexer_test

import (
	"strings"
	"testing"

	"myton/internal/diag"
	"myton/internal/lexer"
	"myton/internal/source"
	"myton/internal/testkit"
	"myton/internal/token"
)

func lex(t *testing.T, input string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.my", []byte(input)))
	bag := diag.NewBag(0)
	toks := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err := testkit.CheckTokenSpans(toks, file); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
	return toks, bag
}

func kinds(toks []token.Token) string {
	parts := make([]string, len(toks))
	for i, tk := range toks {
		parts[i] = tk.Kind.String()
	}
	return strings.Join(parts, " ")
}

func TestSimpleExpression(t *testing.T) {
	toks, bag := lex(t, "1+2")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := "NumberLit Plus NumberLit Newline EOF"
	if got := kinds(toks); got != want {
		t.Fatalf("kinds = %s, want %s", got, want)
	}
}

func TestOperatorsGreedy(t *testing.T) {
	toks, _ := lex(t, "a === b == c = d != !e <= < >= > % [ ] , . :")
	want := "Ident EqEqEq Ident EqEq Ident Assign Ident BangEq Bang Ident LtEq Lt GtEq Gt Percent LBracket RBracket Comma Dot Colon Newline EOF"
	if got := kinds(toks); got != want {
		t.Fatalf("kinds:\n got %s\nwant %s", got, want)
	}
}

func TestKeywordsAndLiterals(t *testing.T) {
	toks, _ := lex(t, `def f(self): return super.x and True or None pass "hi"`)
	want := "KwDef Ident LParen KwSelf RParen Colon KwReturn KwSuper Dot Ident KwAnd KwTrue KwOr KwNone KwPass StringLit Newline EOF"
	if got := kinds(toks); got != want {
		t.Fatalf("kinds:\n got %s\nwant %s", got, want)
	}
	if toks[15].Text != "hi" {
		t.Fatalf("string text = %q", toks[15].Text)
	}
}

func TestIndentationRecorded(t *testing.T) {
	src := "if x:\n    print 1\n\n    # comment only\n  \nprint 2\n"
	toks, _ := lex(t, src)
	want := "KwIf Ident Colon Newline KwPrint NumberLit Newline KwPrint NumberLit Newline EOF"
	if got := kinds(toks); got != want {
		t.Fatalf("kinds:\n got %s\nwant %s", got, want)
	}
	indents := []uint32{0, 0, 0, 0, 4, 4, 4, 0, 0, 0}
	for i, ind := range indents {
		if toks[i].Indent != ind {
			t.Fatalf("token %d (%v) indent = %d, want %d", i, toks[i].Kind, toks[i].Indent, ind)
		}
	}
}

func TestNumbers(t *testing.T) {
	toks, bag := lex(t, "12 3.25 1.x")
	want := "NumberLit NumberLit NumberLit Dot Ident Newline EOF"
	if got := kinds(toks); got != want {
		t.Fatalf("kinds = %s", got)
	}
	if toks[1].Text != "3.25" || bag.Len() != 0 {
		t.Fatalf("bad number lexing: %q %v", toks[1].Text, bag.Items())
	}

	_, bag = lex(t, "12abc")
	if !bag.HasCode(diag.LexBadNumber) {
		t.Fatalf("expected LexBadNumber")
	}
}

func TestStringEscapesAndErrors(t *testing.T) {
	toks, bag := lex(t, `"a\n\"b\"\\"`)
	if bag.Len() != 0 || toks[0].Text != "a\n\"b\"\\" {
		t.Fatalf("text = %q diags = %v", toks[0].Text, bag.Items())
	}

	_, bag = lex(t, `"bad \q"`)
	if !bag.HasCode(diag.LexBadEscape) {
		t.Fatalf("expected LexBadEscape")
	}

	toks, bag = lex(t, `print "open`)
	if !bag.HasCode(diag.LexUnterminatedString) || toks[1].Kind != token.Invalid {
		t.Fatalf("unterminated string not reported: %v", kinds(toks))
	}
}

func TestUnknownCharacter(t *testing.T) {
	toks, bag := lex(t, "a $ b")
	if !bag.HasCode(diag.LexUnknownChar) {
		t.Fatalf("expected LexUnknownChar")
	}
	if got := kinds(toks); got != "Ident Invalid Ident Newline EOF" {
		t.Fatalf("kinds = %s", got)
	}
}

func TestUnicodeIdentifierNormalized(t *testing.T) {
	// "é" как e + combining acute должно совпасть с готовым U+00E9
	toks, bag := lex(t, "cafe\u0301 = caf\u00e9")
	if bag.Len() != 0 {
		t.Fatalf("diags: %v", bag.Items())
	}
	if toks[0].Text != toks[2].Text {
		t.Fatalf("identifiers not normalised: %q vs %q", toks[0].Text, toks[2].Text)
	}
}

func TestTabIndentRejectedByDefault(t *testing.T) {
	_, bag := lex(t, "if x:\n\tprint 1\n")
	if !bag.HasCode(diag.LexBadIndent) {
		t.Fatalf("expected LexBadIndent")
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("p.my", []byte("x"))), lexer.Options{})
	if lx.Peek().Kind != token.Ident || lx.Next().Kind != token.Ident {
		t.Fatalf("Peek consumed the token")
	}
	for range 3 {
		lx.Next()
	}
	if lx.Next().Kind != token.EOF {
		t.Fatalf("EOF must be sticky")
	}
}
