package lexer

import (
	"implgen/internal/token"
)

// scanNumber сканирует числовой литерал вместе с суффиксом типа:
// 10, 10_u32, 0xFF, 0b1010, 1.5, 1.0f64, 1e9.
// Точка съедается только если за ней идёт цифра — это сохраняет
// корректными диапазоны (1..2) и вызовы методов (1.max(2)).
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	isFloat := false

	// префикс основания: 0x / 0o / 0b
	if lx.cursor.Peek() == '0' {
		b1 := lx.cursor.PeekAt(1)
		if b1 == 'x' || b1 == 'X' || b1 == 'o' || b1 == 'O' || b1 == 'b' || b1 == 'B' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			for isHexOrSep(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.eatSuffix()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
		}
	}

	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	// дробная часть
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		isFloat = true
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	// экспонента
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		b1 := lx.cursor.PeekAt(1)
		if isDec(b1) || ((b1 == '+' || b1 == '-') && isDec(lx.cursor.PeekAt(2))) {
			isFloat = true
			lx.cursor.Bump()
			if b1 == '+' || b1 == '-' {
				lx.cursor.Bump()
			}
			for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
		}
	}

	// суффикс типа: u32, i64, f32, usize...
	if suffix := lx.eatSuffix(); suffix != "" {
		if suffix[0] == 'f' {
			isFloat = true
		}
	}

	sp := lx.cursor.SpanFrom(start)
	kind := token.IntLit
	if isFloat {
		kind = token.FloatLit
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) eatSuffix() string {
	start := lx.cursor.Mark()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.text(lx.cursor.SpanFrom(start))
}

func isHexOrSep(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F') ||
		b == '_'
}
