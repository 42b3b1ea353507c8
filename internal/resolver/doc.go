// Package resolver performs the static scope pass over a parsed program.
//
// The pass walks statements once and records, for every variable read that
// binds to an enclosing function or class scope, how many environment links
// separate the use from its definition. Blocks of if/while/for do not open
// scopes, so a hop counts function and class boundaries only. Names that no
// scope holds are left out of the table and are looked up dynamically at run
// time.
//
// The pass also reports structural errors as SCP diagnostics: return outside
// a function, self or super outside a class, super in a class without a
// superclass, and a class that inherits from itself.
package resolver
