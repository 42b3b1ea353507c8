package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"myton/internal/ast"
	"myton/internal/source"
	"myton/internal/token"
)

// CheckTokenSpans verifies that tokens belong to sf, stay inside its content,
// are non-overlapping and appear in source order. Only Newline and EOF may
// be empty, and the stream must end with EOF.
func CheckTokenSpans(toks []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		return fmt.Errorf("token stream must end with EOF")
	}
	var prevEnd uint32
	for i, tk := range toks {
		sp := tk.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End < sp.Start || sp.End > size {
			return fmt.Errorf("token %d: span %v out of bounds (size %d)", i, sp, size)
		}
		if sp.Empty() && tk.Kind != token.Newline && tk.Kind != token.EOF {
			return fmt.Errorf("token %d (%v): empty span", i, tk.Kind)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d (%v): span %v overlaps previous end %d", i, tk.Kind, sp, prevEnd)
		}
		prevEnd = sp.End
	}
	return nil
}

// CheckProgramSpans verifies every top-level statement span is non-empty,
// belongs to sf and lies inside the program span.
func CheckProgramSpans(b *ast.Builder, id ast.ProgramID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	p := b.Program(id)
	if p == nil {
		return fmt.Errorf("program %d not found", id)
	}
	for _, sid := range p.Stmts {
		st := b.Stmts.Get(sid)
		if st == nil {
			return fmt.Errorf("nil stmt for id=%d", sid)
		}
		sp := st.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty stmt span: %v (%v)", sp, st.Kind)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("stmt span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if sp.Start < p.Span.Start || sp.End > p.Span.End {
			return fmt.Errorf("stmt span %v is outside program span %v", sp, p.Span)
		}
	}
	return nil
}
