package lexer

import (
	"implgen/internal/diag"
	"implgen/internal/token"
)

func (lx *Lexer) scanString() token.Token {
	return lx.scanStringFrom(lx.cursor.Mark())
}

// scanStringFrom сканирует "..." с escape-последовательностями.
// start может лежать раньше открывающей кавычки (префикс b).
// Многострочные строки допустимы (Rust-совместимо).
func (lx *Lexer) scanStringFrom(start Mark) token.Token {
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		}
		if b == '\\' {
			// съесть '\' и следующий байт; глубокая валидация escape не наша забота
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanRawString сканирует r"..." / r#"..."# / br#"..."#.
// prefixLen — число байт до начала решёток/кавычки ('r' == 1, 'br' == 2).
func (lx *Lexer) scanRawString(prefixLen int) token.Token {
	start := lx.cursor.Mark()
	for range prefixLen {
		lx.cursor.Bump()
	}

	hashes := 0
	for lx.cursor.Peek() == '#' {
		lx.cursor.Bump()
		hashes++
	}
	if !lx.cursor.Eat('"') {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedRaw, sp, "malformed raw string literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		// '"' найдена: проверяем хвост из hashes решёток
		matched := true
		save := lx.cursor.Off
		for range hashes {
			if !lx.cursor.Eat('#') {
				matched = false
				break
			}
		}
		if matched {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.RawStringLit, Span: sp, Text: lx.text(sp)}
		}
		lx.cursor.Off = save
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedRaw, sp, "unterminated raw string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) scanCharOrLifetime() token.Token {
	return lx.scanCharOrLifetimeFrom(lx.cursor.Mark())
}

// scanCharOrLifetimeFrom различает 'x' (CharLit) и 'a (Lifetime).
// Lifetime: за кавычкой идёт идентификатор БЕЗ закрывающей кавычки.
func (lx *Lexer) scanCharOrLifetimeFrom(start Mark) token.Token {
	lx.cursor.Bump() // opening '\''

	b := lx.cursor.Peek()
	if isIdentStartByte(b) && lx.cursor.PeekAt(1) != '\'' {
		// lifetime: 'a, 'static, '_
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Lifetime, Span: sp, Text: lx.text(sp)}
	}

	// char-литерал: '\n', '\'', 'x', 'β'
	if b == '\\' {
		lx.cursor.Bump()
		if !lx.cursor.EOF() {
			lx.cursor.Bump()
		}
		// \u{...} и \x41 дочитываем до закрывающей кавычки ниже
	} else {
		lx.bumpRune()
	}
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\'' && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	if lx.cursor.Eat('\'') {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.CharLit, Span: sp, Text: lx.text(sp)}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
