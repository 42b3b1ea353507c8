package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelGatesScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopePass, true},
		{LevelError, ScopeFile, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Fatalf("%s.ShouldEmit(%s) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestParseLevelAndMode(t *testing.T) {
	if l, err := ParseLevel("DEBUG"); err != nil || l != LevelDebug {
		t.Fatalf("ParseLevel: %v %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for bad level")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode: %v %v", m, err)
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	sp := Begin(tr, ScopePass, "parse", 0)
	Begin(tr, ScopeNode, "call f", sp.ID()).End("")
	sp.WithExtra("stmts", "3").End("ok")
	if err := tr.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "call f") {
		t.Fatalf("node span leaked at phase level:\n%s", out)
	}
	if !strings.Contains(out, "→ parse") || !strings.Contains(out, "← parse (ok)") || !strings.Contains(out, "stmts=3") {
		t.Fatalf("unexpected text output:\n%s", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeNode, "resolve", "hops=2")
	if err := tr.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	var ev map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if ev["kind"] != "point" || ev["detail"] != "hops=2" || ev["scope"] != "node" {
		t.Fatalf("unexpected event: %v", ev)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelPhase)
	for _, name := range []string{"a", "b", "c", "d"} {
		Point(r, ScopePass, name, "")
	}
	snap := r.Snapshot()
	if len(snap) != 3 || snap[0].Name != "b" || snap[2].Name != "d" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if r.Len() != 3 {
		t.Fatalf("Len = %d", r.Len())
	}
}

func TestErrorLevelFeedsRingOnly(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelError, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Begin(tr, ScopePass, "exec", 0).End("")
	if err := tr.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("stream wrote at error level: %q", buf.String())
	}
	ring := RingOf(tr)
	if ring == nil || ring.Len() != 2 {
		t.Fatalf("ring should hold begin/end, got %v", ring)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("expected disabled tracer, got %v %v", tr, err)
	}
	if sp := Begin(tr, ScopeDriver, "x", 0); sp.ID() != 0 {
		t.Fatalf("disabled span has id %d", sp.ID())
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Fatalf("empty context must yield Nop")
	}
	r := NewRingTracer(4, LevelDebug)
	ctx = WithSpan(WithTracer(ctx, r), 42)
	if FromContext(ctx) != Tracer(r) || SpanFrom(ctx) != 42 {
		t.Fatalf("context lost values")
	}
}

func TestHeartbeatNilSafe(t *testing.T) {
	var h *Heartbeat
	h.Stop()
	if StartHeartbeat(Nop, 0) != nil {
		t.Fatalf("heartbeat must not start for Nop")
	}
}
