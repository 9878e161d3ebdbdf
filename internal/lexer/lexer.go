package lexer

import (
	"fern/internal/diag"
	"fern/internal/source"
	"fern/internal/token"
)

// maxTokenLen caps identifier and number length so a corrupt input cannot
// produce unbounded tokens.
const maxTokenLen = 1024

type Options struct {
	// Reporter receives lexical diagnostics; nil drops them while lexing
	// continues.
	Reporter diag.Reporter
}

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // one-token buffer for Peek
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token. Whitespace and '#' line comments
// are skipped. After the end of input it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Tokenize scans the whole file including the trailing EOF token.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\n', '\r':
			lx.cursor.Bump()
		case '#':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		default:
			return
		}
	}
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	first := lx.cursor.Bump()
	for isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	if sp.Len() > maxTokenLen {
		lx.report(diag.LexTokenTooLong, sp, "identifier is too long")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	if isUpper(first) {
		return token.Token{Kind: token.ConIdent, Span: sp, Text: text}
	}
	if text == "_" {
		return token.Token{Kind: token.Underscore, Span: sp, Text: text}
	}
	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kw, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	if sp.Len() > maxTokenLen {
		lx.report(diag.LexTokenTooLong, sp, "number literal is too long")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	// A digit run immediately followed by identifier characters is one bad
	// token, not two: report it whole so the parser sees a single Invalid.
	if isIdentStart(lx.cursor.Peek()) {
		for isIdentContinue(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp = lx.cursor.SpanFrom(start)
		text = lx.text(sp)
		lx.report(diag.LexBadNumber, sp, "malformed number literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: text}
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Bump()

	kind := token.Invalid
	switch ch {
	case '+':
		kind = token.Plus
	case '-':
		if lx.cursor.Peek() == '>' {
			lx.cursor.Bump()
			kind = token.Arrow
		} else {
			kind = token.Minus
		}
	case '\\':
		kind = token.Backslash
	case '=':
		kind = token.Assign
	case ':':
		kind = token.Colon
	case ';':
		kind = token.Semicolon
	case '|':
		kind = token.Pipe
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '_':
		kind = token.Underscore
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if kind == token.Invalid {
		lx.report(diag.LexUnknownChar, sp, "unknown character "+quoteByte(ch))
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
