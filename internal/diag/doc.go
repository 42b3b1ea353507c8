// Package diag holds the diagnostic model shared by the lexer, parser,
// resolver and interpreter.
//
// Phases never print. They report through a Reporter, usually a BagReporter
// collecting into a Bag, and the driver decides how to render the result
// (see internal/diagfmt for the pretty form, FormatGolden for test files).
//
// Codes are grouped by phase: LEX (1xxx), SYN (2xxx), SCP (3xxx, static
// scope errors) and RUN (4xxx, runtime errors raised while evaluating).
package diag
