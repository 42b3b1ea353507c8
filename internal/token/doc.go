// Package token defines the lexical token kinds of myton.
// Invariants:
//   - Token.Text is the lexeme as written, except for string literals whose
//     Text holds the decoded value without quotes.
//   - Token.Span covers the lexeme exactly, quotes included.
//   - Token.Indent is the indentation width of the line the token sits on;
//     the parser derives block structure from it.
package token
