package token

var keywords = map[string]Kind{
	"data": KwData,
	"let":  KwLet,
	"in":   KwIn,
	"case": KwCase,
	"of":   KwOf,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case-sensitive; only the lower-case spellings count.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
