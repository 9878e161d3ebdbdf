package token

import (
	"fern/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwData, KwLet, KwIn, KwCase, KwOf:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is punctuation or an operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Plus, Minus, Backslash, Arrow, Assign, Colon, Semicolon, Pipe,
		Underscore, LParen, RParen, LBrace, RBrace:
		return true
	default:
		return false
	}
}
