package observ

import (
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	cur := time.Unix(0, 0)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	done := tm.Track("lex")
	done("12 tokens")
	idx := tm.Begin("parse")
	tm.End(idx, "")
	tm.End(99, "ignored")

	if len(tm.Phases()) != 2 {
		t.Fatalf("phases = %d", len(tm.Phases()))
	}
	if tm.Total() != 2*time.Millisecond {
		t.Fatalf("total = %v", tm.Total())
	}
	sum := tm.Summary()
	if !strings.Contains(sum, "lex") || !strings.Contains(sum, "12 tokens") || !strings.Contains(sum, "total") {
		t.Fatalf("summary:\n%s", sum)
	}
	r := tm.Report()
	if r.TotalMS != 2 || len(r.Phases) != 2 || r.Phases[0].Note != "12 tokens" {
		t.Fatalf("report: %+v", r)
	}
}
