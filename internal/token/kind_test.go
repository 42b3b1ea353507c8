package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := map[string]Kind{
		"def":      KwDef,
		"class":    KwClass,
		"nonlocal": KwNonlocal,
		"True":     KwTrue,
		"None":     KwNone,
		"pass":     KwPass,
		"elif":     KwElif,
	}
	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v; want %v", lexeme, got, ok, want)
		}
	}
	for _, s := range []string{"true", "none", "Def", "this", "fn", "counter"} {
		if k, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) unexpectedly = %v", s, k)
		}
	}
}

func TestKindClasses(t *testing.T) {
	for k := Invalid; k < kindCount; k++ {
		if k.String() == "" {
			t.Fatalf("kind %d has no name", k)
		}
		if k.IsKeyword() && k.IsOperator() {
			t.Fatalf("%v is both keyword and operator", k)
		}
	}
	if !KwSelf.IsKeyword() || Ident.IsKeyword() || !Colon.IsOperator() {
		t.Fatalf("classification mismatch")
	}
	if !KwDef.StartsStatement() || Plus.StartsStatement() {
		t.Fatalf("StartsStatement mismatch")
	}
	if !(Token{Kind: KwNone}).IsLiteral() || (Token{Kind: Ident}).IsLiteral() {
		t.Fatalf("IsLiteral mismatch")
	}
}
