package parser

import (
	"strconv"

	"fern/internal/ast"
	"fern/internal/diag"
	"fern/internal/lexer"
	"fern/internal/source"
	"fern/internal/token"
	"fern/internal/types"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is spent.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser holds the state for parsing one file.
type Parser struct {
	lx       *lexer.Lexer
	opts     Options
	lastSpan source.Span

	prog *ast.Program
	sigs map[string]sigDecl
}

type sigDecl struct {
	ty   *types.Type
	span source.Span
	used bool
}

// ParseFile parses one file into a Program. The bool result is false when
// any syntax error was reported; the Program still contains everything that
// could be recovered.
func ParseFile(file *source.File, opts Options) (*ast.Program, bool) {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	p := Parser{
		lx:   lx,
		opts: opts,
		prog: &ast.Program{},
		sigs: make(map[string]sigDecl),
	}
	p.parseDecls()
	p.reportUnusedSigs()
	return p.prog, p.opts.CurrentErrors == 0
}

func (p *Parser) parseDecls() {
	for !p.at(token.EOF) {
		if !p.parseDecl() {
			p.resyncTop()
		}
	}
}

// parseDecl dispatches on the first token: 'data' starts a data
// declaration, an identifier starts a signature or a binding.
func (p *Parser) parseDecl() bool {
	switch p.lx.Peek().Kind {
	case token.KwData:
		return p.parseData()
	case token.Ident:
		return p.parseSigOrBind()
	default:
		p.err(diag.SynUnexpectedToken, "expected declaration, got "+quoteTok(p.lx.Peek()))
		return false
	}
}

// parseData parses: data Name tyVar* = Con atomType* ( '|' Con atomType* )* ';'
func (p *Parser) parseData() bool {
	kw := p.advance() // data
	nameTok, ok := p.expect(token.ConIdent, diag.SynExpectIdentifier, "expected data type name")
	if !ok {
		return false
	}

	var tyVars []string
	for p.at(token.Ident) {
		tyVars = append(tyVars, p.advance().Text)
	}

	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' after data type header"); !ok {
		return false
	}

	ret := dataReturnType(nameTok.Text, tyVars)
	d := &ast.Data{Name: nameTok.Text, TyVars: tyVars, Span: kw.Span.Cover(nameTok.Span)}
	for {
		conTok, ok := p.expect(token.ConIdent, diag.SynExpectIdentifier, "expected constructor name")
		if !ok {
			return false
		}
		conTy := ret
		var argTys []*types.Type
		for p.atTypeAtomStart() {
			argTy, ok := p.parseAtomType()
			if !ok {
				return false
			}
			argTys = append(argTys, argTy)
		}
		for i := len(argTys) - 1; i >= 0; i-- {
			conTy = types.NewFn(argTys[i], conTy)
		}
		for _, c := range d.Cons {
			if c.Name == conTok.Text {
				p.report(diag.SynDuplicateDecl, diag.SevError, conTok.Span,
					"duplicate constructor "+strconv.Quote(conTok.Text))
			}
		}
		d.Cons = append(d.Cons, ast.ConDef{Name: conTok.Text, Ty: conTy, Span: conTok.Span})

		if p.at(token.Pipe) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after data declaration"); !ok {
		return false
	}

	for _, existing := range p.prog.Datas {
		if existing.Name == d.Name {
			p.report(diag.SynDuplicateDecl, diag.SevError, nameTok.Span,
				"duplicate data declaration "+strconv.Quote(d.Name))
		}
	}
	p.prog.Datas = append(p.prog.Datas, d)
	return true
}

func dataReturnType(name string, tyVars []string) *types.Type {
	args := make([]*types.Type, len(tyVars))
	for i, v := range tyVars {
		args[i] = types.NewVar(v)
	}
	return types.NewData(name, args...)
}

// parseSigOrBind parses either `name : type ;` or `name param* = expr ;`.
func (p *Parser) parseSigOrBind() bool {
	nameTok := p.advance()

	if p.at(token.Colon) {
		p.advance()
		ty, ok := p.parseType()
		if !ok {
			return false
		}
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after signature"); !ok {
			return false
		}
		if _, dup := p.sigs[nameTok.Text]; dup {
			p.report(diag.SynDuplicateDecl, diag.SevError, nameTok.Span,
				"duplicate signature for "+strconv.Quote(nameTok.Text))
			return true
		}
		p.sigs[nameTok.Text] = sigDecl{ty: ty, span: nameTok.Span}
		return true
	}

	var params []string
	for p.at(token.Ident) {
		params = append(params, p.advance().Text)
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected ':' or '=' after "+strconv.Quote(nameTok.Text)); !ok {
		return false
	}
	body, ok := p.parseExpr()
	if !ok {
		return false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after binding"); !ok {
		return false
	}

	sig, hasSig := p.sigs[nameTok.Text]
	if !hasSig {
		p.report(diag.SynMissingSignature, diag.SevError, nameTok.Span,
			"binding "+strconv.Quote(nameTok.Text)+" has no type signature")
	} else {
		sig.used = true
		p.sigs[nameTok.Text] = sig
	}
	if _, dup := p.prog.Bind(nameTok.Text); dup {
		p.report(diag.SynDuplicateDecl, diag.SevError, nameTok.Span,
			"duplicate binding "+strconv.Quote(nameTok.Text))
		return true
	}

	p.prog.Binds = append(p.prog.Binds, &ast.Bind{
		Name:   nameTok.Text,
		Params: params,
		Body:   body,
		Ty:     sig.ty,
		Span:   nameTok.Span.Cover(body.Span),
	})
	return true
}

func (p *Parser) reportUnusedSigs() {
	for name, sig := range p.sigs {
		if !sig.used {
			p.report(diag.SynMissingSignature, diag.SevError, sig.span,
				"signature for "+strconv.Quote(name)+" has no binding")
		}
	}
}

// --- types ---

// parseType parses a right-associative arrow type.
func (p *Parser) parseType() (*types.Type, bool) {
	lhs, ok := p.parseAppType()
	if !ok {
		return nil, false
	}
	if p.at(token.Arrow) {
		p.advance()
		rhs, ok := p.parseType()
		if !ok {
			return nil, false
		}
		return types.NewFn(lhs, rhs), true
	}
	return lhs, true
}

// parseAppType parses a data-type application: ConName atomType*.
func (p *Parser) parseAppType() (*types.Type, bool) {
	if p.at(token.ConIdent) {
		nameTok := p.advance()
		var args []*types.Type
		for p.atTypeAtomStart() {
			arg, ok := p.parseAtomType()
			if !ok {
				return nil, false
			}
			args = append(args, arg)
		}
		return conType(nameTok.Text, args), true
	}
	return p.parseAtomType()
}

func (p *Parser) parseAtomType() (*types.Type, bool) {
	switch p.lx.Peek().Kind {
	case token.ConIdent:
		return conType(p.advance().Text, nil), true
	case token.Ident:
		return types.NewVar(p.advance().Text), true
	case token.LParen:
		p.advance()
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' in type"); !ok {
			return nil, false
		}
		return ty, true
	default:
		p.err(diag.SynExpectType, "expected type, got "+quoteTok(p.lx.Peek()))
		return nil, false
	}
}

func (p *Parser) atTypeAtomStart() bool {
	switch p.lx.Peek().Kind {
	case token.ConIdent, token.Ident, token.LParen:
		return true
	default:
		return false
	}
}

// conType maps a ConIdent head to the type it denotes: the Int base type or
// a data-type application.
func conType(name string, args []*types.Type) *types.Type {
	if name == types.IntName && len(args) == 0 {
		return types.Int()
	}
	return types.NewData(name, args...)
}

// --- expressions ---

// parseExpr parses lambda, let, and case at the top; anything else is an
// arithmetic expression.
func (p *Parser) parseExpr() (*ast.Expr, bool) {
	switch p.lx.Peek().Kind {
	case token.Backslash:
		return p.parseLambda()
	case token.KwLet:
		return p.parseLet()
	case token.KwCase:
		return p.parseCase()
	default:
		return p.parseArith()
	}
}

// parseLambda parses: '\' param+ '->' expr, desugaring multiple parameters
// into nested single-parameter lambdas.
func (p *Parser) parseLambda() (*ast.Expr, bool) {
	start := p.advance() // backslash

	var params []token.Token
	for p.at(token.Ident) {
		params = append(params, p.advance())
	}
	if len(params) == 0 {
		p.err(diag.SynExpectIdentifier, "expected lambda parameter")
		return nil, false
	}
	if _, ok := p.expect(token.Arrow, diag.SynExpectArrow, "expected '->' after lambda parameters"); !ok {
		return nil, false
	}
	body, ok := p.parseExpr()
	if !ok {
		return nil, false
	}

	out := body
	for i := len(params) - 1; i >= 0; i-- {
		out = ast.NewLam(start.Span.Cover(body.Span), params[i].Text, out)
	}
	return out, true
}

// parseLet parses: 'let' name '=' expr 'in' expr.
func (p *Parser) parseLet() (*ast.Expr, bool) {
	start := p.advance() // let
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected name after 'let'")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in let binding"); !ok {
		return nil, false
	}
	bound, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in' after let binding"); !ok {
		return nil, false
	}
	body, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return ast.NewLet(start.Span.Cover(body.Span), nameTok.Text, bound, body), true
}

// parseCase parses: 'case' expr 'of' '{' branch (';' branch)* ';'? '}'.
func (p *Parser) parseCase() (*ast.Expr, bool) {
	start := p.advance() // case
	scrut, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwOf, diag.SynUnexpectedToken, "expected 'of' after case scrutinee"); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open case branches"); !ok {
		return nil, false
	}

	var branches []ast.Branch
	for {
		if p.at(token.RBrace) {
			break
		}
		br, ok := p.parseBranch()
		if !ok {
			return nil, false
		}
		branches = append(branches, br)
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		break
	}
	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' after case branches")
	if !ok {
		return nil, false
	}
	if len(branches) == 0 {
		p.report(diag.SynExpectPattern, diag.SevError, closeTok.Span, "case expression has no branches")
		return nil, false
	}
	return ast.NewCase(start.Span.Cover(closeTok.Span), scrut, branches), true
}

func (p *Parser) parseBranch() (ast.Branch, bool) {
	pat, ok := p.parsePattern()
	if !ok {
		return ast.Branch{}, false
	}
	if _, ok := p.expect(token.Arrow, diag.SynExpectArrow, "expected '->' after pattern"); !ok {
		return ast.Branch{}, false
	}
	body, ok := p.parseExpr()
	if !ok {
		return ast.Branch{}, false
	}
	return ast.Branch{Pat: pat, Body: body, Span: pat.Span.Cover(body.Span)}, true
}

func (p *Parser) parsePattern() (ast.Pattern, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		val, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			p.report(diag.LexBadNumber, diag.SevError, tok.Span, "integer literal out of range")
			return ast.Pattern{}, false
		}
		return ast.Pattern{Kind: ast.PatLit, Span: tok.Span, Value: val}, true
	case token.Underscore:
		p.advance()
		return ast.Pattern{Kind: ast.PatWild, Span: tok.Span}, true
	case token.Ident:
		p.advance()
		return ast.Pattern{Kind: ast.PatVar, Span: tok.Span, Name: tok.Text}, true
	case token.ConIdent:
		p.advance()
		pat := ast.Pattern{Kind: ast.PatCon, Span: tok.Span, Name: tok.Text}
		for p.at(token.Ident) || p.at(token.Underscore) {
			fieldTok := p.advance()
			name := fieldTok.Text
			if fieldTok.Kind == token.Underscore {
				name = "_"
			}
			pat.Vars = append(pat.Vars, name)
			pat.Span = pat.Span.Cover(fieldTok.Span)
		}
		return pat, true
	default:
		p.err(diag.SynExpectPattern, "expected pattern, got "+quoteTok(tok))
		return ast.Pattern{}, false
	}
}

// parseArith parses a left-associative chain of '+' and '-'.
func (p *Parser) parseArith() (*ast.Expr, bool) {
	lhs, ok := p.parseApp()
	if !ok {
		return nil, false
	}
	for p.at(token.Plus) || p.at(token.Minus) {
		opTok := p.advance()
		op := ast.OpAdd
		if opTok.Kind == token.Minus {
			op = ast.OpSub
		}
		rhs, ok := p.parseApp()
		if !ok {
			return nil, false
		}
		lhs = ast.NewArith(lhs.Span.Cover(rhs.Span), op, lhs, rhs)
	}
	return lhs, true
}

// parseApp parses left-associative application: atom+.
func (p *Parser) parseApp() (*ast.Expr, bool) {
	fn, ok := p.parseAtom()
	if !ok {
		return nil, false
	}
	for p.atAtomStart() {
		arg, ok := p.parseAtom()
		if !ok {
			return nil, false
		}
		fn = ast.NewApp(fn.Span.Cover(arg.Span), fn, arg)
	}
	return fn, true
}

func (p *Parser) parseAtom() (*ast.Expr, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		val, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			p.report(diag.LexBadNumber, diag.SevError, tok.Span, "integer literal out of range")
			return nil, false
		}
		return ast.NewLit(tok.Span, val), true
	case token.Ident:
		p.advance()
		return ast.NewId(tok.Span, tok.Text), true
	case token.ConIdent:
		p.advance()
		return ast.NewCon(tok.Span, tok.Text), true
	case token.LParen:
		p.advance()
		e, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
			return nil, false
		}
		return e, true
	default:
		p.err(diag.SynExpectExpression, "expected expression, got "+quoteTok(tok))
		return nil, false
	}
}

func (p *Parser) atAtomStart() bool {
	switch p.lx.Peek().Kind {
	case token.IntLit, token.Ident, token.ConIdent, token.LParen:
		return true
	default:
		return false
	}
}
