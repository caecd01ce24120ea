package token

import (
	"implgen/internal/source"
)

// Token represents a single source token with its location and leading trivia.
// Text is the exact source slice; rendering a token stream back to text is
// the concatenation of every token's Leading trivia and Text.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsIdentLike reports whether the token can start a type path segment.
func (t Token) IsIdentLike() bool {
	return t.Kind == Ident || t.Kind == RawIdent || t.Kind == Underscore
}

// IsStringLike reports whether the token carries string content the
// template substituter scans for markers.
func (t Token) IsStringLike() bool {
	return t.Kind == StringLit || t.Kind == RawStringLit
}

// IsOpenDelim reports whether the token opens a delimited group.
func (t Token) IsOpenDelim() bool {
	switch t.Kind {
	case LParen, LBracket, LBrace:
		return true
	default:
		return false
	}
}

// IsCloseDelim reports whether the token closes a delimited group.
func (t Token) IsCloseDelim() bool {
	switch t.Kind {
	case RParen, RBracket, RBrace:
		return true
	default:
		return false
	}
}

// LeadingText returns the concatenated text of all leading trivia.
func (t Token) LeadingText() string {
	if len(t.Leading) == 0 {
		return ""
	}
	var n int
	for _, tr := range t.Leading {
		n += len(tr.Text)
	}
	buf := make([]byte, 0, n)
	for _, tr := range t.Leading {
		buf = append(buf, tr.Text...)
	}
	return string(buf)
}
