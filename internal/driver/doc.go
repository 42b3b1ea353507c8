// Package driver wires the front end and the interpreter into the
// pipelines the CLI runs: a single script, the REPL session and the golden
// suite.
package driver
