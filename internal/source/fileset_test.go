package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersions(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.my", []byte("print 1\n"), 0)
	id2 := fs.Add("main.my", []byte("print 2\n"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.Lookup("main.my")
	if !ok || latest.ID != id2 {
		t.Fatalf("Lookup returned %v (ok=%v), want id %d", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "print 1\n" {
		t.Fatalf("old version content = %q", got)
	}
}

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("<repl>", []byte("\xEF\xBB\xBFa\r\nb\r\n"))
	f := fs.Get(id)

	if string(f.Content) != "a\nb\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileVirtual == 0 || f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b", f.Flags)
	}
	want := []uint32{1, 3}
	if len(f.LineIdx) != len(want) || f.LineIdx[0] != want[0] || f.LineIdx[1] != want[1] {
		t.Fatalf("LineIdx = %v, want %v", f.LineIdx, want)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.my", []byte("ab\ncd\n\nef"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // сам '\n' принадлежит первой строке
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{8, LineCol{4, 2}},
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start != tc.want {
			t.Fatalf("offset %d: got %v, want %v", tc.off, start, tc.want)
		}
	}
}

func TestFileLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("x.my", []byte("first\nsecond\n\nlast")))

	want := map[uint32]string{0: "", 1: "first", 2: "second", 3: "", 4: "last", 5: ""}
	for n, line := range want {
		if got := f.Line(n); got != line {
			t.Fatalf("Line(%d) = %q, want %q", n, got, line)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.my")
	if err := os.WriteFile(path, []byte("print 1\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "print 1\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileVirtual != 0 {
		t.Fatalf("disk file marked virtual")
	}
	if got := f.DisplayPath(dir); got != "prog.my" {
		t.Fatalf("DisplayPath = %q", got)
	}
	if _, err := fs.Load(filepath.Join(dir, "missing.my")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
