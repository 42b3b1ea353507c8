package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[run]
main = "src/main.my"

[diagnostics]
max = 5
color = "off"

[trace]
level = "phase"
output = "trace.log"

[test]
dir = "tests"
jobs = 3
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	main, err := m.MainScript()
	if err != nil {
		t.Fatalf("MainScript: %v", err)
	}
	if want := filepath.Join(m.Root, "src", "main.my"); main != want {
		t.Fatalf("main = %q, want %q", main, want)
	}
	if m.Diagnostics.Max != 5 || m.Diagnostics.Color != "off" || m.Test.Jobs != 3 {
		t.Fatalf("unexpected manifest: %+v", m)
	}
	if m.TestDir() != filepath.Join(m.Root, "tests") {
		t.Fatalf("test dir = %q", m.TestDir())
	}
	if m.TraceOutput() != filepath.Join(m.Root, "trace.log") {
		t.Fatalf("trace output = %q", m.TraceOutput())
	}
	if !m.Defined("trace", "level") || m.Defined("trace", "mode") {
		t.Fatalf("Defined mismatch")
	}
}

func TestLoadManifestRejectsUnknownKeys(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[run]\nmian = \"x.my\"\n")
	_, err := LoadManifest(path)
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
}

func TestLoadManifestValidates(t *testing.T) {
	cases := []string{
		"[diagnostics]\nmax = -1\n",
		"[diagnostics]\ncolor = \"sometimes\"\n",
		"[test]\njobs = -2\n",
		"[run\n",
	}
	for _, body := range cases {
		if _, err := LoadManifest(writeManifest(t, t.TempDir(), body)); err == nil {
			t.Fatalf("expected error for %q", body)
		}
	}
}

func TestMainScriptMissing(t *testing.T) {
	m, err := LoadManifest(writeManifest(t, t.TempDir(), "[test]\ndir = \"t\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.MainScript(); !errors.Is(err, ErrNoMain) {
		t.Fatalf("expected ErrNoMain, got %v", err)
	}
	var nilManifest *Manifest
	if _, err := nilManifest.MainScript(); !errors.Is(err, ErrNoMain) {
		t.Fatalf("nil manifest: %v", err)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[run]\nmain = \"a.my\"\n")
	nested := filepath.Join(root, "x", "y")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	m, ok, err := Discover(nested)
	if err != nil || !ok {
		t.Fatalf("Discover: ok=%v err=%v", ok, err)
	}
	gotRoot, _ := filepath.EvalSymlinks(m.Root)
	wantRoot, _ := filepath.EvalSymlinks(root)
	if gotRoot != wantRoot {
		t.Fatalf("root = %q, want %q", m.Root, root)
	}
}

func TestDiscoverNone(t *testing.T) {
	// TempDir lives under the system temp dir, which has no manifest above it.
	m, ok, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok || m != nil {
		t.Fatalf("unexpected manifest at %v", m)
	}
}

func TestCombineDeterministic(t *testing.T) {
	a := HashContent([]byte("print 1\n"))
	b := HashContent([]byte("print 2\n"))
	if a == b || a.IsZero() {
		t.Fatalf("content hashes collide")
	}
	if Combine(a, b) != Combine(a, b) || Combine(a, b) == Combine(b, a) {
		t.Fatalf("Combine must be deterministic and order-sensitive")
	}
	if len(a.String()) != 64 {
		t.Fatalf("hex digest length %d", len(a.String()))
	}
}
