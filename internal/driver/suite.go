package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"myton/internal/project"
	"myton/internal/trace"
)

// GoldenExt is the expected-output sibling of a script.
const GoldenExt = ".out"

// suiteEpoch is what clock() returns under the suite runner, so golden
// output and cached results stay reproducible.
var suiteEpoch = time.Unix(1_000_000_000, 0)

type CaseStatus uint8

const (
	CasePending CaseStatus = iota
	CaseRunning
	CasePassed
	CaseUpdated
	CaseFailed
	CaseMissing // no .out file and not updating
	CaseError   // the script could not be read or run
)

func (s CaseStatus) String() string {
	switch s {
	case CasePending:
		return "pending"
	case CaseRunning:
		return "running"
	case CasePassed:
		return "ok"
	case CaseUpdated:
		return "updated"
	case CaseFailed:
		return "FAIL"
	case CaseMissing:
		return "missing"
	case CaseError:
		return "error"
	}
	return "unknown"
}

// Done reports whether the status is final.
func (s CaseStatus) Done() bool { return s >= CasePassed }

// OK reports whether the case counts as a pass.
func (s CaseStatus) OK() bool { return s == CasePassed || s == CaseUpdated }

// CaseResult is the outcome of one script.
type CaseResult struct {
	Path     string // relative to the suite directory
	Status   CaseStatus
	Want     string
	Got      string
	ExitCode int
	Cached   bool
	Elapsed  time.Duration
	Err      error
}

// SuiteEvent reports progress. Events arrive from worker goroutines.
type SuiteEvent struct {
	Index  int
	Total  int
	Path   string
	Status CaseStatus
	Cached bool
}

type SuiteOptions struct {
	Dir            string
	Jobs           int // <= 0 means GOMAXPROCS
	Update         bool
	Cache          *ResultCache // nil disables caching
	MaxDiagnostics int
	Tracer         trace.Tracer
	// Salt invalidates cached results, e.g. the interpreter version.
	Salt    string
	OnEvent func(SuiteEvent)
}

type SuiteResult struct {
	Dir     string
	Cases   []CaseResult
	Elapsed time.Duration
}

// Counts returns the number of passing and failing cases.
func (r *SuiteResult) Counts() (passed, failed int) {
	for i := range r.Cases {
		if r.Cases[i].Status.OK() {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

func (r *SuiteResult) OK() bool {
	_, failed := r.Counts()
	return failed == 0
}

// ListScripts returns every *.my file under dir in sorted order.
func ListScripts(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".my") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// RunSuite runs every script under opts.Dir in parallel and compares its
// transcript with the sibling .out file.
func RunSuite(ctx context.Context, opts SuiteOptions) (*SuiteResult, error) {
	started := time.Now()
	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve suite dir: %w", err)
	}
	files, err := ListScripts(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scripts: %w", err)
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}
	suiteSpan := trace.Begin(tracer, trace.ScopeDriver, "suite "+opts.Dir, trace.SpanFrom(ctx))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс нужен только для событий
	results := make([]CaseResult, len(files))
	var emitMu sync.Mutex
	emit := func(ev SuiteEvent) {
		if opts.OnEvent == nil {
			return
		}
		emitMu.Lock()
		defer emitMu.Unlock()
		opts.OnEvent(ev)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			rel, relErr := filepath.Rel(dir, path)
			if relErr != nil {
				rel = path
			}
			rel = filepath.ToSlash(rel)
			emit(SuiteEvent{Index: i, Total: len(files), Path: rel, Status: CaseRunning})

			span := trace.Begin(tracer, trace.ScopeFile, "test "+rel, suiteSpan.ID())
			cr := runCase(gctx, dir, path, rel, opts, tracer)
			span.End(cr.Status.String())

			results[i] = cr
			emit(SuiteEvent{Index: i, Total: len(files), Path: rel, Status: cr.Status, Cached: cr.Cached})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		suiteSpan.End("canceled")
		return nil, err
	}
	res := &SuiteResult{Dir: dir, Cases: results, Elapsed: time.Since(started)}
	passed, failed := res.Counts()
	suiteSpan.End(fmt.Sprintf("passed=%d failed=%d", passed, failed))
	return res, nil
}

func runCase(ctx context.Context, dir, path, rel string, opts SuiteOptions, tracer trace.Tracer) CaseResult {
	start := time.Now()
	cr := CaseResult{Path: rel}
	defer func() { cr.Elapsed = time.Since(start) }()

	content, err := os.ReadFile(path)
	if err != nil {
		cr.Status, cr.Err = CaseError, err
		return cr
	}
	key := project.Combine(
		project.HashContent(content),
		project.HashContent([]byte(rel)),
		project.HashContent([]byte(opts.Salt+"|"+strconv.Itoa(opts.MaxDiagnostics))),
	)

	cached, hit, err := opts.Cache.Get(key)
	if err != nil {
		trace.Point(tracer, trace.ScopeFile, "cache error", err.Error())
		hit = false
	}
	if hit {
		cr.Got, cr.ExitCode, cr.Cached = cached.Output, cached.ExitCode, true
	} else {
		got, code, runErr := Transcript(ctx, dir, path, Options{
			MaxDiagnostics: opts.MaxDiagnostics,
			Tracer:         tracer,
		})
		if runErr != nil {
			cr.Status, cr.Err = CaseError, runErr
			return cr
		}
		cr.Got, cr.ExitCode = got, code
		if err := opts.Cache.Put(key, &CachedRun{Path: rel, Output: got, ExitCode: code}); err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache error", err.Error())
		}
	}
	cr.Status, cr.Want, cr.Err = compareGolden(path, cr.Got, opts.Update)
	return cr
}

// Transcript runs path with a fixed clock and returns what a golden file
// holds: printed output followed by golden diagnostics.
func Transcript(ctx context.Context, baseDir, path string, opts Options) (string, int, error) {
	var out bytes.Buffer
	opts.Out = &out
	opts.Clock = func() time.Time { return suiteEpoch }
	s := NewSession(opts)
	s.SetBaseDir(baseDir)
	res, err := s.RunFile(ctx, path)
	if err != nil {
		return "", ExitIOErr, err
	}
	if g := res.Golden(); g != "" {
		out.WriteString(g)
		out.WriteByte('\n')
	}
	return out.String(), res.ExitCode(), nil
}

func compareGolden(script, got string, update bool) (CaseStatus, string, error) {
	goldenPath := strings.TrimSuffix(script, ".my") + GoldenExt
	raw, err := os.ReadFile(goldenPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if !update {
			return CaseMissing, "", nil
		}
	case err != nil:
		return CaseError, "", err
	}
	want := strings.ReplaceAll(string(raw), "\r\n", "\n")
	if want == got {
		return CasePassed, want, nil
	}
	if !update {
		return CaseFailed, want, nil
	}
	if err := os.WriteFile(goldenPath, []byte(got), 0o644); err != nil {
		return CaseError, want, fmt.Errorf("failed to update %s: %w", goldenPath, err)
	}
	return CaseUpdated, want, nil
}
