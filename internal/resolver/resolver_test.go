package resolver_test

import (
	"context"
	"testing"

	"myton/internal/ast"
	"myton/internal/diag"
	"myton/internal/diagfmt"
	"myton/internal/lexer"
	"myton/internal/parser"
	"myton/internal/resolver"
	"myton/internal/source"
)

type resolved struct {
	fs   *source.FileSet
	b    *ast.Builder
	prog *ast.Program
	res  resolver.Result
	bag  *diag.Bag
}

func resolveSource(t *testing.T, input string) resolved {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.my", []byte(input)))
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}

	b := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	pr := parser.ParseFile(context.Background(), fs, lx, b, parser.Options{MaxErrors: 100, Reporter: rep})
	if bag.HasErrors() {
		t.Fatalf("parse errors for %q: %d", input, bag.Len())
	}
	prog := b.Program(pr.Program)
	res := resolver.Resolve(b, prog.Stmts, resolver.Options{Reporter: rep})
	return resolved{fs: fs, b: b, prog: prog, res: res, bag: bag}
}

func expectLocals(t *testing.T, input, want string) {
	t.Helper()
	r := resolveSource(t, input)
	if r.bag.HasErrors() {
		t.Fatalf("unexpected scope errors for %q: %s", input, r.bag.Items()[0].Message)
	}
	if got := diagfmt.FormatLocals(r.b, r.fs, r.res.Locals); got != want {
		t.Fatalf("input:\n%s\ngot:\n%s\nwant:\n%s", input, got, want)
	}
}

func TestTopLevelReadsStayUnresolved(t *testing.T) {
	expectLocals(t, "x = 1\nprint x\ndef f(n):\n  return f(n)\n", "4:12 n 0\n")
}

func TestParameterHop(t *testing.T) {
	expectLocals(t, "def f(a):\n  print a\n", "2:9 a 0\n")
}

func TestClosureHop(t *testing.T) {
	src := "def outer():\n" +
		"  x = 1\n" +
		"  def inner():\n" +
		"    print x\n" +
		"  return inner\n"
	expectLocals(t, src, "4:11 x 1\n5:10 inner 0\n")
}

func TestBlocksDoNotOpenScopes(t *testing.T) {
	src := "def f():\n" +
		"  x = 1\n" +
		"  if x:\n" +
		"    while x:\n" +
		"      print x\n"
	expectLocals(t, src, "3:6 x 0\n4:11 x 0\n5:13 x 0\n")
}

func TestRecursionInsideFunction(t *testing.T) {
	src := "def outer():\n" +
		"  def fact(n):\n" +
		"    if n < 2:\n" +
		"      return 1\n" +
		"    return n * fact(n - 1)\n" +
		"  return fact(5)\n"
	expectLocals(t, src, "3:8 n 0\n5:12 n 0\n5:16 fact 1\n5:21 n 0\n6:10 fact 0\n")
}

func TestNonlocalSkipsMarkedScope(t *testing.T) {
	src := "def f():\n" +
		"  i = 0\n" +
		"  def count():\n" +
		"    nonlocal i\n" +
		"    i = i + 1\n" +
		"    print i\n" +
		"  return count\n"
	expectLocals(t, src, "5:9 i 1\n6:11 i 1\n7:10 count 0\n")
}

func TestNonlocalSkipsScopeWithoutBinding(t *testing.T) {
	src := "def a():\n" +
		"  x = 0\n" +
		"  def b():\n" +
		"    def c():\n" +
		"      nonlocal x\n" +
		"      x = x + 1\n" +
		"      print x\n" +
		"    c()\n" +
		"    c()\n" +
		"  b()\n" +
		"  print x\n"
	expectLocals(t, src, "6:11 x 2\n7:13 x 2\n8:5 c 0\n9:5 c 0\n10:3 b 0\n11:9 x 0\n")
}

func TestNonlocalCrossesClassScopes(t *testing.T) {
	src := "def f():\n" +
		"  n = 0\n" +
		"  class C:\n" +
		"    def inc():\n" +
		"      nonlocal n\n" +
		"      n = n + 1\n" +
		"      return n\n" +
		"  return C\n"
	expectLocals(t, src, "6:11 n 2\n7:14 n 2\n8:10 C 0\n")
}

func TestGlobalReachesRoot(t *testing.T) {
	src := "def f():\n" +
		"  def g():\n" +
		"    global x\n" +
		"    x = 2\n" +
		"    print x\n" +
		"  g()\n"
	expectLocals(t, src, "5:11 x 2\n6:3 g 0\n")
}

func TestForeachVariableBindsInFunction(t *testing.T) {
	src := "def f(xs):\n" +
		"  for x in xs:\n" +
		"    print x\n"
	expectLocals(t, src, "2:12 xs 0\n3:11 x 0\n")
}

func TestSelfAndSuperNesting(t *testing.T) {
	src := "class A:\n" +
		"  def m():\n" +
		"    return 1\n" +
		"class B(A):\n" +
		"  def m():\n" +
		"    return super.m() + self.n\n"
	expectLocals(t, src, "6:12 super.m 2\n6:24 self 1\n")
}

func TestSelfInNestedFunction(t *testing.T) {
	src := "class C:\n" +
		"  def m():\n" +
		"    def h():\n" +
		"      return self\n" +
		"    return h\n"
	expectLocals(t, src, "4:14 self 2\n5:12 h 0\n")
}

func TestScopeErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		code diag.Code
	}{
		{"return at top level", "return 1\n", diag.ScpReturnOutsideFunction},
		{"self at top level", "print self\n", diag.ScpThisOutsideClass},
		{"self in plain function", "def f():\n  return self\n", diag.ScpThisOutsideClass},
		{"super at top level", "print super.m\n", diag.ScpSuperOutsideClass},
		{"super without superclass", "class A:\n  def m():\n    return super.m()\n", diag.ScpSuperWithoutSuperclass},
		{"self inheritance", "class A(A):\n  def m():\n    pass\n", diag.ScpSelfInheritance},
	}
	for _, tc := range cases {
		r := resolveSource(t, tc.in)
		if !r.bag.HasCode(tc.code) {
			t.Fatalf("%s: expected %s, got %d diagnostics", tc.name, tc.code.ID(), r.bag.Len())
		}
		if r.res.Errors != 1 {
			t.Fatalf("%s: expected 1 error, got %d", tc.name, r.res.Errors)
		}
	}
}

func TestReturnInsideMethodIsAllowed(t *testing.T) {
	r := resolveSource(t, "class A:\n  def __init__(v):\n    self.v = v\n    return\n")
	if r.bag.HasErrors() {
		t.Fatalf("unexpected errors: %s", r.bag.Items()[0].Message)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	src := "def f():\n" +
		"  i = 0\n" +
		"  def count():\n" +
		"    nonlocal i\n" +
		"    i = i + 1\n" +
		"    return i\n" +
		"  return count\n" +
		"class A:\n" +
		"  def get():\n" +
		"    return self\n"
	r := resolveSource(t, src)
	again := resolver.Resolve(r.b, r.prog.Stmts, resolver.Options{})
	if !r.res.Locals.Equal(again.Locals) {
		t.Fatalf("tables differ: %d vs %d entries", r.res.Locals.Len(), again.Locals.Len())
	}
	if r.res.Locals.Len() == 0 {
		t.Fatalf("expected resolved entries")
	}
}

func TestLocalsMerge(t *testing.T) {
	a := resolver.NewLocals()
	a.Set(1, 0)
	b := resolver.NewLocals()
	b.Set(2, 3)
	a.Merge(b)
	if hop, ok := a.Lookup(2); !ok || hop != 3 {
		t.Fatalf("merged lookup: %d %v", hop, ok)
	}
	if a.Len() != 2 {
		t.Fatalf("len = %d", a.Len())
	}
	var nilLocals *resolver.Locals
	if _, ok := nilLocals.Lookup(1); ok {
		t.Fatalf("nil table must not resolve")
	}
}
