// Package token defines lexical token kinds for the fern compiler.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Case selects the identifier kind: a lower-case initial yields Ident,
//     an upper-case initial yields ConIdent (type and data constructors).
//   - "Int" is lexed as a ConIdent; the type layer gives it meaning.
package token
