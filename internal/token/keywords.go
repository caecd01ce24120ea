package token

// Только те ключевые слова, на которых ветвится walker подстановки.
// Остальные остаются Ident.
var keywords = map[string]Kind{
	"impl":   KwImpl,
	"for":    KwFor,
	"fn":     KwFn,
	"let":    KwLet,
	"const":  KwConst,
	"static": KwStatic,
	"type":   KwType,
	"where":  KwWhere,
	"as":     KwAs,
	"mut":    KwMut,
	"dyn":    KwDyn,
	"pub":    KwPub,
	"unsafe": KwUnsafe,
	"in":     KwIn,
}

// LookupKeyword reports whether text is a keyword and returns its kind.
// Keywords are case-sensitive.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}
