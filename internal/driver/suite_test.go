package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"myton/internal/project"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func suiteDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pass.my"), "print 1 + 2\n")
	writeFile(t, filepath.Join(dir, "pass.out"), "3\n")
	writeFile(t, filepath.Join(dir, "nested", "err.my"), "print 1\nprint x\n")
	writeFile(t, filepath.Join(dir, "nested", "err.out"), "1\nerror RUN4001 nested/err.my:2:7 Undefined variable 'x'\n")
	writeFile(t, filepath.Join(dir, "wrong.my"), "print \"a\"\n")
	writeFile(t, filepath.Join(dir, "wrong.out"), "b\n")
	writeFile(t, filepath.Join(dir, "new.my"), "print clock() > 0\n")
	return dir
}

func statusByPath(res *SuiteResult) map[string]CaseStatus {
	out := make(map[string]CaseStatus, len(res.Cases))
	for _, c := range res.Cases {
		out[c.Path] = c.Status
	}
	return out
}

func TestRunSuite(t *testing.T) {
	dir := suiteDir(t)
	var mu sync.Mutex
	events := 0
	res, err := RunSuite(context.Background(), SuiteOptions{
		Dir:  dir,
		Jobs: 2,
		OnEvent: func(SuiteEvent) {
			mu.Lock()
			events++
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("RunSuite: %v", err)
	}
	want := map[string]CaseStatus{
		"nested/err.my": CasePassed,
		"new.my":        CaseMissing,
		"pass.my":       CasePassed,
		"wrong.my":      CaseFailed,
	}
	got := statusByPath(res)
	for path, st := range want {
		if got[path] != st {
			t.Fatalf("%s: status %s, want %s (%+v)", path, got[path], st, res.Cases)
		}
	}
	if passed, failed := res.Counts(); passed != 2 || failed != 2 || res.OK() {
		t.Fatalf("counts = %d/%d", passed, failed)
	}
	if events != 2*len(res.Cases) {
		t.Fatalf("events = %d, want %d", events, 2*len(res.Cases))
	}
}

func TestRunSuiteUpdate(t *testing.T) {
	dir := suiteDir(t)
	res, err := RunSuite(context.Background(), SuiteOptions{Dir: dir, Update: true})
	if err != nil {
		t.Fatal(err)
	}
	got := statusByPath(res)
	if got["wrong.my"] != CaseUpdated || got["new.my"] != CaseUpdated || got["pass.my"] != CasePassed {
		t.Fatalf("statuses: %v", got)
	}
	data, err := os.ReadFile(filepath.Join(dir, "new.out"))
	if err != nil || string(data) != "True\n" {
		t.Fatalf("new.out = %q, %v", data, err)
	}
	again, err := RunSuite(context.Background(), SuiteOptions{Dir: dir})
	if err != nil || !again.OK() {
		t.Fatalf("suite must pass after update: %v %+v", err, again)
	}
}

func TestRunSuiteUsesCache(t *testing.T) {
	dir := suiteDir(t)
	cache, err := NewResultCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := SuiteOptions{Dir: dir, Cache: cache, Salt: "v1"}
	first, err := RunSuite(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range first.Cases {
		if c.Cached {
			t.Fatalf("%s cached on first run", c.Path)
		}
	}
	second, err := RunSuite(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range second.Cases {
		if !c.Cached || c.Status != first.Cases[i].Status || c.Got != first.Cases[i].Got {
			t.Fatalf("%s: cached=%v status=%s", c.Path, c.Cached, c.Status)
		}
	}
	opts.Salt = "v2"
	third, err := RunSuite(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cases[0].Cached {
		t.Fatal("a new salt must invalidate cached runs")
	}
}

func TestResultCacheRoundTrip(t *testing.T) {
	cache, err := NewResultCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := project.HashContent([]byte("print 1\n"))
	if _, ok, err := cache.Get(key); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}
	if err := cache.Put(key, &CachedRun{Path: "a.my", Output: "1\n", ExitCode: ExitSoftware}); err != nil {
		t.Fatal(err)
	}
	run, ok, err := cache.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if run.Output != "1\n" || run.ExitCode != ExitSoftware || run.Schema != cacheSchemaVersion {
		t.Fatalf("unexpected payload %+v", run)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(key); ok {
		t.Fatal("DropAll left entries behind")
	}
}

func TestNilCacheIsDisabled(t *testing.T) {
	var cache *ResultCache
	key := project.HashContent(nil)
	if err := cache.Put(key, &CachedRun{}); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := cache.Get(key); ok || err != nil {
		t.Fatalf("nil cache: ok=%v err=%v", ok, err)
	}
}
