package lexer

import (
	"implgen/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор и проверяет через LookupKeyword.
// Token.Text — ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		// возможен Unicode-хвост
		for {
			r2, sz2 := lx.peekRune()
			if sz2 <= 1 || !isIdentContinueRune(r2) {
				break
			}
			lx.bumpRune()
			for isIdentContinueByte(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	} else {
		if !isIdentStartRune(r) {
			return lx.scanOperatorOrPunct()
		}
		lx.bumpRune()
		for {
			r2, sz2 := lx.peekRune()
			if sz2 == 0 || !isIdentContinueRune(r2) {
				break
			}
			lx.bumpRune()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	if text == "_" {
		return token.Token{Kind: token.Underscore, Span: sp, Text: text}
	}
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanRawOrIdent обрабатывает токены, начинающиеся с 'r' или 'b':
// raw-строки r"..." r#"..."#, raw-идентификаторы r#ident,
// байтовые строки/символы b"..." b'x' br"...".
// Если префикс не образует литерал — это обычный идентификатор.
func (lx *Lexer) scanRawOrIdent() token.Token {
	b0 := lx.cursor.Peek()
	b1 := lx.cursor.PeekAt(1)

	switch {
	case b0 == 'r' && b1 == '"':
		return lx.scanRawString(1)
	case b0 == 'r' && b1 == '#':
		// r#"..."# либо r#ident
		if lx.cursor.PeekAt(2) == '"' || lx.cursor.PeekAt(2) == '#' {
			return lx.scanRawString(1)
		}
		return lx.scanRawIdent()
	case b0 == 'b' && b1 == '"':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		return lx.scanStringFrom(start)
	case b0 == 'b' && b1 == '\'':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		return lx.scanCharOrLifetimeFrom(start)
	case b0 == 'b' && b1 == 'r' && (lx.cursor.PeekAt(2) == '"' || lx.cursor.PeekAt(2) == '#'):
		return lx.scanRawString(2)
	default:
		return lx.scanIdentOrKeyword()
	}
}

// scanRawIdent сканирует r#ident. Text включает префикс "r#".
func (lx *Lexer) scanRawIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // 'r'
	lx.cursor.Bump() // '#'
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.RawIdent, Span: sp, Text: lx.text(sp)}
}
