// Package trace is the structured logging layer of myton.
//
// A Tracer receives events: span begin/end pairs, instant points and
// heartbeats. The driver opens one span per pipeline pass (lex, parse,
// resolve, exec) and the interpreter opens one per user-function call at
// debug level.
//
//	myton run --trace=- --trace-level=phase prog.my
//
// Implementations:
//
//   - Nop: tracing disabled
//   - StreamTracer: writes each event as text or NDJSON
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans out to several tracers
//
// Levels gate scopes: phase shows driver and pass events, detail adds
// per-file events, debug adds node events.
//
// The tracer travels in a context:
//
//	ctx = trace.WithTracer(ctx, t)
//	sp := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer sp.End("")
package trace
