package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// RawIdent represents a raw identifier token (`r#type`).
	RawIdent
	// Lifetime represents a lifetime token (`'a`, `'static`).
	Lifetime

	// Keywords. Only the keywords the walker dispatches on get their own
	// kind; the rest of the language's keywords (if, match, loop, ...)
	// stay Ident because no substitution rule ever branches on them.

	// KwImpl represents the 'impl' keyword.
	KwImpl // impl
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwStatic represents the 'static' keyword.
	KwStatic // static
	// KwType represents the 'type' keyword.
	KwType // type
	// KwWhere represents the 'where' keyword.
	KwWhere // where
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwMut represents the 'mut' keyword.
	KwMut // mut
	// KwDyn represents the 'dyn' keyword.
	KwDyn // dyn
	// KwPub represents the 'pub' keyword.
	KwPub // pub
	// KwUnsafe represents the 'unsafe' keyword.
	KwUnsafe // unsafe
	// KwIn represents the 'in' keyword.
	KwIn // in

	// IntLit represents an integer literal, suffix included (10_u32).
	IntLit
	// FloatLit represents a float literal, suffix included (1.0f64).
	FloatLit
	// StringLit represents a string or byte-string literal.
	StringLit
	// RawStringLit represents a raw string literal (r"...", r#"..."#).
	RawStringLit
	// CharLit represents a character or byte literal ('x', b'x').
	CharLit

	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace

	// ColonColon represents '::'.
	ColonColon
	// Colon represents ':'.
	Colon
	// Semicolon represents ';'.
	Semicolon
	// Comma represents ','.
	Comma
	// Dot represents '.'.
	Dot
	// Arrow represents '->'.
	Arrow
	// FatArrow represents '=>'.
	FatArrow

	// Lt represents a single '<'. Angle brackets are always lexed one
	// byte at a time so Vec<Vec<u8>> closes with two Gt tokens and no
	// shift-operator splitting is ever needed.
	Lt
	// Gt represents a single '>'.
	Gt
	// Amp represents a single '&'. '&&T' is two Amp tokens.
	Amp
	// Pipe represents '|'.
	Pipe
	// Caret represents '^'.
	Caret
	// Plus represents '+'.
	Plus
	// Minus represents '-'.
	Minus
	// Star represents '*'.
	Star
	// Slash represents '/'.
	Slash
	// Percent represents '%'.
	Percent
	// Bang represents '!'.
	Bang
	// Question represents '?'.
	Question
	// Eq represents a single '='. '==' is two Eq tokens.
	Eq
	// At represents '@'.
	At
	// Pound represents '#'.
	Pound
	// Dollar represents '$'. Only meaningful inside macro bodies.
	Dollar
	// Underscore represents a lone '_'.
	Underscore
	// Punct is the catch-all for punctuation this tool never dispatches
	// on (~ and friends); the text is preserved verbatim.
	Punct
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Ident:        "Ident",
	RawIdent:     "RawIdent",
	Lifetime:     "Lifetime",
	KwImpl:       "impl",
	KwFor:        "for",
	KwFn:         "fn",
	KwLet:        "let",
	KwConst:      "const",
	KwStatic:     "static",
	KwType:       "type",
	KwWhere:      "where",
	KwAs:         "as",
	KwMut:        "mut",
	KwDyn:        "dyn",
	KwPub:        "pub",
	KwUnsafe:     "unsafe",
	KwIn:         "in",
	IntLit:       "IntLit",
	FloatLit:     "FloatLit",
	StringLit:    "StringLit",
	RawStringLit: "RawStringLit",
	CharLit:      "CharLit",
	LParen:       "LParen",
	RParen:       "RParen",
	LBracket:     "LBracket",
	RBracket:     "RBracket",
	LBrace:       "LBrace",
	RBrace:       "RBrace",
	ColonColon:   "ColonColon",
	Colon:        "Colon",
	Semicolon:    "Semicolon",
	Comma:        "Comma",
	Dot:          "Dot",
	Arrow:        "Arrow",
	FatArrow:     "FatArrow",
	Lt:           "Lt",
	Gt:           "Gt",
	Amp:          "Amp",
	Pipe:         "Pipe",
	Caret:        "Caret",
	Plus:         "Plus",
	Minus:        "Minus",
	Star:         "Star",
	Slash:        "Slash",
	Percent:      "Percent",
	Bang:         "Bang",
	Question:     "Question",
	Eq:           "Eq",
	At:           "At",
	Pound:        "Pound",
	Dollar:       "Dollar",
	Underscore:   "Underscore",
	Punct:        "Punct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
