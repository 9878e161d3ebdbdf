package diag

import (
	"fmt"
)

type Code uint16

const (
	// UnknownCode is the fallback for unclassified failures.
	UnknownCode Code = 0

	// Lexical
	LexInfo         Code = 1000
	LexUnknownChar  Code = 1001
	LexBadNumber    Code = 1002
	LexTokenTooLong Code = 1003

	// Syntax
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectSemicolon  Code = 2002
	SynExpectIdentifier Code = 2003
	SynExpectType       Code = 2004
	SynExpectExpression Code = 2005
	SynExpectPattern    Code = 2006
	SynUnclosedParen    Code = 2007
	SynUnclosedBrace    Code = 2008
	SynMissingSignature Code = 2009
	SynExpectArrow      Code = 2010
	SynDuplicateDecl    Code = 2011

	// Semantic
	SemaInfo                 Code = 3000
	SemaUnboundName          Code = 3001
	SemaCannotUnify          Code = 3002
	SemaOccursCheck          Code = 3003
	SemaSignatureMismatch    Code = 3004
	SemaPatternArity         Code = 3005
	SemaPatternNotSpecific   Code = 3006
	SemaUnknownTypeName      Code = 3007
	SemaConstructorArity     Code = 3008
	SemaMissingMain          Code = 3009
	SemaCaseBranchType       Code = 3010
	SemaDuplicateConstructor Code = 3011

	// IO
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	LexInfo:                  "Lexical information",
	LexUnknownChar:           "Unknown character",
	LexBadNumber:             "Bad number",
	LexTokenTooLong:          "Token too long",
	SynInfo:                  "Syntax information",
	SynUnexpectedToken:       "Unexpected token",
	SynExpectSemicolon:       "Expect semicolon",
	SynExpectIdentifier:      "Expect identifier",
	SynExpectType:            "Expect type",
	SynExpectExpression:      "Expect expression",
	SynExpectPattern:         "Expect pattern",
	SynUnclosedParen:         "Unclosed parenthesis",
	SynUnclosedBrace:         "Unclosed brace",
	SynMissingSignature:      "Missing type signature",
	SynExpectArrow:           "Expect arrow",
	SynDuplicateDecl:         "Duplicate declaration",
	SemaInfo:                 "Semantic information",
	SemaUnboundName:          "Unbound name",
	SemaCannotUnify:          "Cannot unify types",
	SemaOccursCheck:          "Occurs check failed",
	SemaSignatureMismatch:    "Signature mismatch",
	SemaPatternArity:         "Pattern arity mismatch",
	SemaPatternNotSpecific:   "Pattern type not specific enough",
	SemaUnknownTypeName:      "Unknown type name",
	SemaConstructorArity:     "Constructor arity mismatch",
	SemaMissingMain:          "Missing main binding",
	SemaCaseBranchType:       "Case branch type mismatch",
	SemaDuplicateConstructor: "Duplicate constructor",
	IOLoadFileError:          "Cannot load file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
