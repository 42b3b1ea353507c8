package diag

import (
	"testing"

	"myton/internal/source"
)

func TestBagLimitAndSort(t *testing.T) {
	b := NewBag(2)
	r := BagReporter{Bag: b}

	ReportError(r, SynExpectColon, source.Span{Start: 10, End: 11}, "b").Emit()
	ReportError(r, SynExpectNewline, source.Span{Start: 1, End: 2}, "a").Emit()
	ReportError(r, SynExpectExpression, source.Span{Start: 0, End: 1}, "dropped").Emit()

	if b.Len() != 2 || b.Dropped() != 1 || !b.Full() {
		t.Fatalf("len=%d dropped=%d full=%v", b.Len(), b.Dropped(), b.Full())
	}
	b.Sort()
	if b.Items()[0].Message != "a" {
		t.Fatalf("sort order wrong: %+v", b.Items())
	}
	if !b.HasErrors() || !b.HasCode(SynExpectColon) || b.HasCode(SynExpectExpression) {
		t.Fatalf("HasErrors/HasCode mismatch")
	}
}

func TestBagDedupAndMerge(t *testing.T) {
	a := NewBag(0)
	sp := source.Span{Start: 4, End: 5}
	a.Add(NewError(ScpThisOutsideClass, sp, "x"))
	a.Add(NewError(ScpThisOutsideClass, sp, "x again"))
	a.Dedup()
	if a.Len() != 1 {
		t.Fatalf("Dedup left %d items", a.Len())
	}

	other := NewBag(0)
	other.Add(NewError(RunNameError, sp, "y"))
	a.Merge(other)
	if a.Len() != 2 || len(a.Pointers()) != 2 {
		t.Fatalf("Merge produced %d items", a.Len())
	}
}

func TestBuilderEmitsOnce(t *testing.T) {
	b := NewBag(0)
	rb := ReportError(BagReporter{Bag: b}, SynExpectColon, source.Span{}, "Expect ':' after if condition.").
		WithNote(source.Span{Start: 1}, "block starts here").
		WithFix("insert ':'", FixEdit{NewText: ":"})
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("emitted %d times", b.Len())
	}
	d := b.Items()[0]
	if len(d.Notes) != 1 || len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != ":" {
		t.Fatalf("builder lost details: %+v", d)
	}
}

func TestDedupReporter(t *testing.T) {
	b := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: b})
	for range 3 {
		r.Report(LexUnknownChar, SevError, source.Span{Start: 1, End: 2}, "unknown character '$'", nil, nil)
	}
	r.Report(LexUnknownChar, SevError, source.Span{Start: 3, End: 4}, "unknown character '$'", nil, nil)
	if b.Len() != 2 {
		t.Fatalf("got %d diagnostics, want 2", b.Len())
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:           "LEX1001",
		SynUnexpectedToken:       "SYN2001",
		ScpReturnOutsideFunction: "SCP3001",
		RunTypeError:             "RUN4002",
		UnknownCode:              "E0000",
	}
	for c, want := range cases {
		if c.ID() != want {
			t.Fatalf("%d.ID() = %s, want %s", c, c.ID(), want)
		}
	}
	if RunNameError.Title() != "NameError" || !RunNameError.IsRuntime() || SynInfo.IsRuntime() {
		t.Fatalf("runtime classification broken")
	}
}
