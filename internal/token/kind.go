package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents a lower-case identifier (variables, bindings, type variables).
	Ident
	// ConIdent represents an upper-case identifier (data types, value constructors).
	ConIdent
	// IntLit represents an integer literal token.
	IntLit

	// KwData represents the 'data' keyword.
	KwData // data
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwCase represents the 'case' keyword.
	KwCase // case
	// KwOf represents the 'of' keyword.
	KwOf // of

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Backslash represents the lambda introduction token.
	Backslash // \
	// Arrow represents the arrow token.
	Arrow // ->
	// Assign represents the assign token.
	Assign // =
	// Colon represents the colon token.
	Colon // :
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Pipe represents the pipe token.
	Pipe // |
	// Underscore represents the wildcard pattern token.
	Underscore // _
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
)

// String returns a stable name for dumps and error messages.
func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "eof"
	case Ident:
		return "ident"
	case ConIdent:
		return "conident"
	case IntLit:
		return "int"
	case KwData:
		return "data"
	case KwLet:
		return "let"
	case KwIn:
		return "in"
	case KwCase:
		return "case"
	case KwOf:
		return "of"
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Backslash:
		return "\\"
	case Arrow:
		return "->"
	case Assign:
		return "="
	case Colon:
		return ":"
	case Semicolon:
		return ";"
	case Pipe:
		return "|"
	case Underscore:
		return "_"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	default:
		return "unknown"
	}
}
