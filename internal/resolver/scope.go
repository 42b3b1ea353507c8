package resolver

// ScopeKind enumerates what opened a scope.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeFunction           // parameters and body of a def
	ScopeSuper              // holds `super` for a subclass
	ScopeThis               // holds `self` for every class
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFunction:
		return "function"
	case ScopeSuper:
		return "super"
	case ScopeThis:
		return "this"
	default:
		return "invalid"
	}
}

// FunctionKind tracks which kind of function body is being walked.
type FunctionKind uint8

const (
	FunctionNone FunctionKind = iota
	FunctionPlain
	FunctionMethod
	FunctionInitializer
)

func (k FunctionKind) String() string {
	switch k {
	case FunctionPlain:
		return "function"
	case FunctionMethod:
		return "method"
	case FunctionInitializer:
		return "initializer"
	default:
		return "none"
	}
}

// ClassKind tracks the innermost class being walked.
type ClassKind uint8

const (
	ClassNone ClassKind = iota
	ClassPlain
	ClassSub
)

// Reserved binding names. Both are keywords, so no user variable can
// shadow them.
const (
	ThisName  = "self"
	SuperName = "super"

	InitName = "__init__"
)

// scope is one entry of the transient stack. names maps a binding to
// whether it has been defined yet.
type scope struct {
	kind      ScopeKind
	names     map[string]bool
	globals   map[string]struct{}
	nonlocals map[string]struct{}
}

func newScope(kind ScopeKind) *scope {
	return &scope{kind: kind, names: make(map[string]bool)}
}

func (s *scope) isGlobal(name string) bool {
	_, ok := s.globals[name]
	return ok
}

func (s *scope) isNonlocal(name string) bool {
	_, ok := s.nonlocals[name]
	return ok
}

func (s *scope) markGlobal(name string) {
	if s.globals == nil {
		s.globals = make(map[string]struct{})
	}
	s.globals[name] = struct{}{}
}

func (s *scope) markNonlocal(name string) {
	if s.nonlocals == nil {
		s.nonlocals = make(map[string]struct{})
	}
	s.nonlocals[name] = struct{}{}
}
