package lexer

import (
	"testing"

	"myton/internal/source"
)

func TestCursorReadsAndMarks(t *testing.T) {
	fs := source.NewFileSet()
	c := NewCursor(fs.Get(fs.AddVirtual("c.my", []byte("ab\nc"))))

	m := c.Mark()
	if c.Peek() != 'a' || c.PeekAt(2) != '\n' || c.PeekAt(9) != 0 {
		t.Fatalf("peek mismatch")
	}
	c.Bump()
	if !c.Eat('b') || c.Eat('x') {
		t.Fatalf("Eat mismatch")
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	c.Reset(m)
	if c.Off != 0 {
		t.Fatalf("Reset did not rewind")
	}
	for !c.EOF() {
		c.Bump()
	}
	if c.Bump() != 0 || c.Peek() != 0 {
		t.Fatalf("reads past EOF must yield 0")
	}
}
