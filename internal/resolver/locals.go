package resolver

import (
	"slices"

	"myton/internal/ast"
)

// Locals maps a resolved expression to its hop count.
type Locals struct {
	hops map[ast.ExprID]int
}

func NewLocals() *Locals {
	return &Locals{hops: make(map[ast.ExprID]int)}
}

func (l *Locals) Set(id ast.ExprID, hop int) {
	if l.hops == nil {
		l.hops = make(map[ast.ExprID]int)
	}
	l.hops[id] = hop
}

// Lookup reports the hop recorded for id.
func (l *Locals) Lookup(id ast.ExprID) (int, bool) {
	if l == nil {
		return 0, false
	}
	hop, ok := l.hops[id]
	return hop, ok
}

// Merge copies every entry of other into l. Later REPL inputs use it to
// extend the table attached to a live root environment.
func (l *Locals) Merge(other *Locals) {
	if other == nil {
		return
	}
	for id, hop := range other.hops {
		l.Set(id, hop)
	}
}

func (l *Locals) Len() int {
	if l == nil {
		return 0
	}
	return len(l.hops)
}

// Entry is one row of the table.
type Entry struct {
	Expr ast.ExprID
	Hop  int
}

// Entries returns the table ordered by expression id.
func (l *Locals) Entries() []Entry {
	if l == nil {
		return nil
	}
	out := make([]Entry, 0, len(l.hops))
	for id, hop := range l.hops {
		out = append(out, Entry{Expr: id, Hop: hop})
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return int(a.Expr) - int(b.Expr)
	})
	return out
}

// Equal reports whether two tables hold the same entries.
func (l *Locals) Equal(other *Locals) bool {
	if l.Len() != other.Len() {
		return false
	}
	for id, hop := range l.hops {
		if h, ok := other.Lookup(id); !ok || h != hop {
			return false
		}
	}
	return true
}
