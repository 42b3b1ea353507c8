package parser_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"myton/internal/ast"
	"myton/internal/diag"
	"myton/internal/diagfmt"
	"myton/internal/lexer"
	"myton/internal/parser"
	"myton/internal/source"
	"myton/internal/testkit"
)

type parsed struct {
	b    *ast.Builder
	prog *ast.Program
	bag  *diag.Bag
}

func parseSource(t *testing.T, input string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.my", []byte(input)))
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}

	b := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	res := parser.ParseFile(context.Background(), fs, lx, b, parser.Options{MaxErrors: 100, Reporter: rep})
	if !bag.HasErrors() {
		if err := testkit.CheckProgramSpans(b, res.Program, file); err != nil {
			t.Fatalf("span invariants: %v", err)
		}
	}
	return parsed{b: b, prog: b.Program(res.Program), bag: bag}
}

func summary(bag *diag.Bag) string {
	if bag.Len() == 0 {
		return "<none>"
	}
	lines := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		lines = append(lines, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	return strings.Join(lines, "; ")
}

func expectSExpr(t *testing.T, input, want string) {
	t.Helper()
	p := parseSource(t, input)
	if p.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %s", input, summary(p.bag))
	}
	if got := diagfmt.FormatSExpr(p.b, p.prog.Stmts); got != want {
		t.Fatalf("input %q:\n got: %s\nwant: %s", input, got, want)
	}
}

func TestPrecedence(t *testing.T) {
	cases := []struct{ in, want string }{
		{"print 1+2", "(print (+ 1 2))"},
		{"print 1 + 2 * 3", "(print (+ 1 (* 2 3)))"},
		{"print (1 + 2) * 3", "(print (* (group (+ 1 2)) 3))"},
		{"print 1 - 2 - 3", "(print (- (- 1 2) 3))"},
		{"print -a % 2 == 0 and b or c", "(print (or (and (== (% (- a) 2) 0) b) c))"},
		{"print a < b == c >= d", "(print (== (< a b) (>= c d)))"},
		{"print !a === !b != None", "(print (!= (=== (! a) (! b)) None))"},
		{"print f(1, g(2))(3).x.y", "(print (. (. (call (call f 1 (call g 2)) 3) x) y))"},
		{`print [1, "a", True, False, pass]`, `(print [1 "a" True False None])`},
		{"print []", "(print [])"},
	}
	for _, tc := range cases {
		expectSExpr(t, tc.in, tc.want)
	}
}

func TestVarDeclAndSet(t *testing.T) {
	expectSExpr(t, "a = 1\na = a + 1\n", "(var a 1)\n(var a (+ a 1))")
	expectSExpr(t, "self.x = y.z = 3", "(expr (set self x (set y z 3)))")
}

func TestInvalidAssignTarget(t *testing.T) {
	p := parseSource(t, "print a = 1\nprint 2\n")
	if !p.bag.HasCode(diag.SynInvalidAssignTarget) {
		t.Fatalf("expected invalid target, got %s", summary(p.bag))
	}
	// разбор продолжается со следующей строки
	if got := diagfmt.FormatSExpr(p.b, p.prog.Stmts); got != "(print 2)" {
		t.Fatalf("recovery produced %q", got)
	}
}

func TestBlocksAndControlFlow(t *testing.T) {
	src := `
if a:
    print 1
elif b:
    print 2
else:
    print 3
while x < 3:
    x = x + 1
for item in [1, 2]:
    print item
`
	want := "(if a (block (print 1)) (if b (block (print 2)) (block (print 3))))\n" +
		"(while (< x 3) (block (var x (+ x 1))))\n" +
		"(for item [1 2] (block (print item)))"
	expectSExpr(t, src, want)
}

func TestNestedBlocksEndOnDedent(t *testing.T) {
	src := "def f(a, b):\n  if a:\n    return b\n  return\nprint f(1, 2)\n"
	want := "(def f (a b) (block (if a (block (return b))) (return)))\n(print (call f 1 2))"
	expectSExpr(t, src, want)
}

func TestClassesAndSuper(t *testing.T) {
	src := `class A:
  def __init__(v):
    self.v = v
class B(A):
  def __init__():
    super.__init__(7)
  def get():
    return self.v
`
	want := "(class A (def __init__ (v) (block (expr (set self v v)))))\n" +
		"(class B < A (def __init__ () (block (expr (call (super __init__) 7)))) (def get () (block (return (. self v)))))"
	expectSExpr(t, src, want)
}

func TestGlobalNonlocal(t *testing.T) {
	expectSExpr(t, "def f():\n  global a, b\n  nonlocal c\n", "(def f () (block (global a b) (nonlocal c)))")
}

func TestSyntaxErrors(t *testing.T) {
	cases := []struct {
		in   string
		code diag.Code
		msg  string
	}{
		{"if x\n  print 1\n", diag.SynExpectColon, "Expect ':' after if condition."},
		{"print (1 + 2\n", diag.SynExpectRightParen, "Expect ')' after expression."},
		{"print [1, 2\n", diag.SynExpectRightBracket, "Expect ']' after expression."},
		{"print\n", diag.SynExpectExpression, "Expect expression."},
		{"for x [1]:\n  print x\n", diag.SynForMissingIn, "Expect 'in' after variable name."},
		{"def (a):\n  pass\n", diag.SynExpectIdentifier, "Expect function name."},
		{"class C:\n  x = 1\n", diag.SynClassBodyExpectDef, "Expect 'def' before class method."},
		{"print super\n", diag.SynSuperExpectDot, "Expect '.' after 'super'."},
		{"while x:\nprint 1\n", diag.SynExpectIndentedBlock, "Expect indented block."},
		{"print 1 2\n", diag.SynExpectNewline, "Expect newline after expression."},
		{"class A:\n  def m(self):\n    pass\n", diag.SynExpectIdentifier, "Expect parameter name."},
	}
	for _, tc := range cases {
		p := parseSource(t, tc.in)
		if !p.bag.HasCode(tc.code) {
			t.Fatalf("%q: want %s, got %s", tc.in, tc.code.ID(), summary(p.bag))
		}
		found := false
		for _, d := range p.bag.Items() {
			found = found || d.Message == tc.msg
		}
		if !found {
			t.Fatalf("%q: message %q not found in %s", tc.in, tc.msg, summary(p.bag))
		}
	}
}

func TestMissingColonSuggestsFix(t *testing.T) {
	p := parseSource(t, "while x\n  pass\n")
	if p.bag.Len() == 0 {
		t.Fatalf("expected a diagnostic")
	}
	d := p.bag.Items()[0]
	if len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != ":" || d.Fixes[0].Edits[0].Span.Start != 7 {
		t.Fatalf("fix = %+v", d.Fixes)
	}
}

func TestRecoverySkipsBrokenBody(t *testing.T) {
	src := "def f(:\n  print 1\n  print 2\nprint 3\n"
	p := parseSource(t, src)
	if !p.bag.HasErrors() {
		t.Fatalf("expected errors")
	}
	if got := diagfmt.FormatSExpr(p.b, p.prog.Stmts); got != "(print 3)" {
		t.Fatalf("recovery produced %q", got)
	}
}

func TestLexErrorNotReportedTwice(t *testing.T) {
	p := parseSource(t, "print $\n")
	if p.bag.Len() != 1 || !p.bag.HasCode(diag.LexUnknownChar) {
		t.Fatalf("got %s", summary(p.bag))
	}
}

func TestMaxErrorsStopsParsing(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("m.my", []byte("print\nprint\nprint\nprint\n")))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	res := parser.ParseFile(context.Background(), fs, lexer.New(file, lexer.Options{Reporter: rep}),
		ast.NewBuilder(ast.Hints{}), parser.Options{MaxErrors: 2, Reporter: rep})
	if bag.Len() != 2 || !res.Stopped {
		t.Fatalf("bag=%d stopped=%v", bag.Len(), res.Stopped)
	}
}
