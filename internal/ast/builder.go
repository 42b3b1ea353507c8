package ast

import "myton/internal/source"

type Hints struct{ Stmts, Exprs uint }

// Program is one parsed unit: a script file or a single REPL input.
type Program struct {
	File  source.FileID
	Span  source.Span
	Stmts []StmtID
}

// Builder owns every node of an interpreter session.
type Builder struct {
	Programs *Arena[Program]
	Stmts    *Stmts
	Exprs    *Exprs
	Strings  *source.Interner
}

func NewBuilder(hints Hints) *Builder {
	return &Builder{
		Programs: NewArena[Program](4),
		Stmts:    NewStmts(hints.Stmts),
		Exprs:    NewExprs(hints.Exprs),
		Strings:  source.NewInterner(),
	}
}

func (b *Builder) NewProgram(file source.FileID, span source.Span, stmts []StmtID) ProgramID {
	return ProgramID(b.Programs.Allocate(Program{File: file, Span: span, Stmts: stmts}))
}

func (b *Builder) Program(id ProgramID) *Program {
	return b.Programs.Get(uint32(id))
}

func (b *Builder) Intern(s string) source.StringID {
	return b.Strings.Intern(s)
}

// Name returns the text of an interned identifier.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.Strings.Lookup(id)
	return s
}
