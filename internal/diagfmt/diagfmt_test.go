package diagfmt_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"myton/internal/ast"
	"myton/internal/diag"
	"myton/internal/diagfmt"
	"myton/internal/lexer"
	"myton/internal/parser"
	"myton/internal/source"
)

func parse(t *testing.T, input string) (*source.FileSet, *ast.Builder, ast.ProgramID) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.my", []byte(input)))
	bag := diag.NewBag(20)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	res := parser.ParseFile(context.Background(), fs, lx, b, parser.Options{MaxErrors: 20, Reporter: rep})
	if bag.HasErrors() {
		t.Fatalf("parse %q: %s", input, bag.Items()[0].Message)
	}
	return fs, b, res.Program
}

func TestPrettyExcerpt(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.my", []byte("x = 1\nprint y +\n"))
	d := diag.NewError(diag.SynExpectExpression, source.Span{File: id, Start: 12, End: 13}, "Expected expression").
		WithNote(source.Span{File: id, Start: 0, End: 1}, "x declared here").
		WithFix("remove the trailing operator")

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, []diag.Diagnostic{d}, fs, diagfmt.PrettyOpts{Context: 1, ShowNotes: true, ShowFixes: true})
	want := "test.my:2:7: ERROR SYN2002: Expected expression\n" +
		"  1 | x = 1\n" +
		"  2 | print y +\n" +
		"    |       ^\n" +
		"  note: x declared here (test.my:1:1)\n" +
		"  help: remove the trailing operator\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyCaretWidth(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.my", []byte("s = \"日本\" + None\n"))
	// underline the whole string literal: two wide runes plus quotes
	d := diag.NewError(diag.RunTypeError, source.Span{File: id, Start: 4, End: 12}, "bad")

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, []diag.Diagnostic{d}, fs, diagfmt.PrettyOpts{})
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	caret := lines[len(lines)-1]
	if got := strings.Count(caret, "^"); got != 6 {
		t.Fatalf("caret width = %d, want 6 (%q)", got, caret)
	}
	if !strings.HasPrefix(caret, "    |     ^") {
		t.Fatalf("caret misplaced: %q", caret)
	}
}

func TestPrettyColorOff(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.my", []byte("return 1\n"))
	d := diag.NewError(diag.ScpReturnOutsideFunction, source.Span{File: id, Start: 0, End: 6}, "Can't return from top-level code")
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, []diag.Diagnostic{d}, fs, diagfmt.PrettyOpts{Color: false})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("escape codes with color off: %q", buf.String())
	}
}

func TestTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.my", []byte("print x\n")))
	toks := lexer.Tokenize(file, lexer.Options{})
	var buf bytes.Buffer
	if err := diagfmt.FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"  1: KwPrint         \"print\" at 1:1-1:6 indent=0\n",
		"  2: Ident           \"x\" at 1:7-1:8 indent=0\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestTokensJSON(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.my", []byte("x = 1\n")))
	var buf bytes.Buffer
	if err := diagfmt.FormatTokensJSON(&buf, lexer.Tokenize(file, lexer.Options{}), fs); err != nil {
		t.Fatal(err)
	}
	var toks []diagfmt.TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &toks); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if len(toks) < 3 || toks[0].Kind != "Ident" || toks[0].Text != "x" || toks[2].Kind != "NumberLit" {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestASTPretty(t *testing.T) {
	fs, b, prog := parse(t, "def f(a):\n  return a + 1\nprint f(2)\n")
	var buf bytes.Buffer
	if err := diagfmt.FormatASTPretty(&buf, b, prog, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Program test.my",
		"├─ Stmt[0]: FunctionDecl f",
		"│  ├─ Param[0]: Name a",
		"│        └─ Value: Binary +",
		"└─ Stmt[1]: Print",
		"   └─ Value: Call",
		"      ├─ Callee: Variable f",
		"      └─ Arg[0]: Literal 2",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestASTJSON(t *testing.T) {
	fs, b, prog := parse(t, "class A(B):\n  def m():\n    print \"x\"\n")
	var buf bytes.Buffer
	if err := diagfmt.FormatASTJSON(&buf, b, prog, fs); err != nil {
		t.Fatal(err)
	}
	var root struct {
		Kind     string `json:"kind"`
		Children []struct {
			Kind     string `json:"kind"`
			Detail   string `json:"detail"`
			Children []struct {
				Role string `json:"role"`
			} `json:"children"`
		} `json:"children"`
	}
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if root.Kind != "Program" || len(root.Children) != 1 {
		t.Fatalf("unexpected root: %+v", root)
	}
	cls := root.Children[0]
	if cls.Kind != "ClassDecl" || cls.Detail != "A" || len(cls.Children) != 2 ||
		cls.Children[0].Role != "Superclass" || cls.Children[1].Role != "Method[0]" {
		t.Fatalf("unexpected class node: %+v", cls)
	}
}
