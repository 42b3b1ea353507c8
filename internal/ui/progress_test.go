package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"myton/internal/driver"
)

func TestSuiteModelCountsFinishedCases(t *testing.T) {
	events := make(chan driver.SuiteEvent)
	m := NewSuiteModel("golden", []string{"a.my", "b.my"}, events).(*suiteModel)

	m.applyEvent(driver.SuiteEvent{Path: "a.my", Status: driver.CaseRunning})
	if m.finished != 0 {
		t.Fatalf("running case counted as finished")
	}
	m.applyEvent(driver.SuiteEvent{Path: "a.my", Status: driver.CasePassed, Cached: true})
	m.applyEvent(driver.SuiteEvent{Path: "b.my", Status: driver.CaseFailed})
	m.applyEvent(driver.SuiteEvent{Path: "b.my", Status: driver.CaseFailed})
	if m.finished != 2 || m.failed != 1 {
		t.Fatalf("finished=%d failed=%d", m.finished, m.failed)
	}
	m.applyEvent(driver.SuiteEvent{Path: "unknown.my", Status: driver.CasePassed})
	if m.finished != 2 {
		t.Fatalf("unknown paths must be ignored")
	}

	view := m.View()
	for _, want := range []string{"golden (2/2, 1 failed)", "a.my", "(cached)", "FAIL"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestSuiteModelQuitsWhenEventsClose(t *testing.T) {
	events := make(chan driver.SuiteEvent)
	close(events)
	m := NewSuiteModel("golden", []string{"a.my"}, events).(*suiteModel)
	if _, ok := m.listenForEvent()().(doneMsg); !ok {
		t.Fatal("closed channel must produce doneMsg")
	}
	if _, cmd := m.Update(doneMsg{}); cmd == nil || !m.done {
		t.Fatal("doneMsg must quit")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short.my", 20); got != "short.my" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("very/long/path/to/script.my", 10); got != "very/lo..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("日本語.my", 4); runewidth.StringWidth(got) > 4 {
		t.Fatalf("got %q", got)
	}
}
