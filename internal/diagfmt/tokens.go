package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"myton/internal/source"
	"myton/internal/token"
)

// TokenOutput is the JSON shape of one token.
type TokenOutput struct {
	Kind   string `json:"kind"`
	Text   string `json:"text,omitempty"`
	Start  uint32 `json:"start"`
	End    uint32 `json:"end"`
	Line   uint32 `json:"line"`
	Col    uint32 `json:"col"`
	Indent uint32 `json:"indent"`
}

// FormatTokensPretty prints one token per line:
//
//	  3: Ident           "x" at 1:7-1:8 indent=0
func FormatTokensPretty(w io.Writer, toks []token.Token, fs *source.FileSet) error {
	for i, tok := range toks {
		start, end := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind); err != nil {
			return err
		}
		if tok.Text != "" && tok.Kind != token.Newline {
			fmt.Fprintf(w, " %q", tok.Text) //nolint:errcheck
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d indent=%d\n", start.Line, start.Col, end.Line, end.Col, tok.Indent) //nolint:errcheck
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, toks []token.Token, fs *source.FileSet) error {
	out := make([]TokenOutput, 0, len(toks))
	for _, tok := range toks {
		start, _ := fs.Resolve(tok.Span)
		to := TokenOutput{
			Kind:   tok.Kind.String(),
			Start:  tok.Span.Start,
			End:    tok.Span.End,
			Line:   start.Line,
			Col:    start.Col,
			Indent: tok.Indent,
		}
		if tok.Kind != token.Newline {
			to.Text = tok.Text
		}
		out = append(out, to)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
