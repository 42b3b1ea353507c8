package lexer

import "myton/internal/diag"

type Options struct {
	// Reporter may be nil; errors are then dropped but lexing continues.
	Reporter diag.Reporter
	// TabWidth is the indentation width of a tab. Zero means tabs are
	// rejected in indentation.
	TabWidth uint32
}
