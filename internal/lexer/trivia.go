package lexer

import (
	"implgen/internal/diag"
	"implgen/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном:
//   - ' ' и '\t' коалесцируются в один TriviaSpace
//   - последовательные '\n' коалесцируются в один TriviaNewline
//   - // и /* */ — обычные комментарии
//   - ///, //!, /** */, /*! */ — doc-комментарии; они получают собственные
//     виды, потому что template-подстановка переписывает только их
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		}

		if b == '\r' {
			// одиночный \r (не нормализованный): относим к пробелам
			lx.cursor.Bump()
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		}

		if b == '/' {
			if lx.scanCommentIntoHold() {
				continue
			}
		}

		break
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: lx.text(sp),
	})
}

// scanCommentIntoHold разбирает // /// //! и /* */ /** */ /*! */.
// Возвращает false, если '/' не начинает комментарий (это оператор деления).
func (lx *Lexer) scanCommentIntoHold() bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' || (b1 != '/' && b1 != '*') {
		return false
	}
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'

	if b1 == '/' {
		lx.cursor.Bump() // второй '/'
		kind := token.TriviaLineComment
		switch lx.cursor.Peek() {
		case '/':
			// "////" это обычный комментарий-разделитель, не doc
			if lx.cursor.PeekAt(1) != '/' {
				kind = token.TriviaDocLine
			}
		case '!':
			kind = token.TriviaDocInner
		}
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.pushTrivia(kind, start)
		return true
	}

	// блочный комментарий, с поддержкой вложенности
	lx.cursor.Bump() // '*'
	kind := token.TriviaBlockComment
	switch lx.cursor.Peek() {
	case '*':
		// "/**/" и "/***/" это не doc; doc-блок требует содержимого после "**"
		if lx.cursor.PeekAt(1) != '/' {
			kind = token.TriviaDocBlock
		}
	case '!':
		kind = token.TriviaDocBlock
	}

	depth := 1
	for depth > 0 {
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedBlock, sp, "unterminated block comment")
			lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
			return true
		}
		b0, b1, ok := lx.cursor.Peek2()
		switch {
		case ok && b0 == '/' && b1 == '*':
			lx.cursor.Bump()
			lx.cursor.Bump()
			depth++
		case ok && b0 == '*' && b1 == '/':
			lx.cursor.Bump()
			lx.cursor.Bump()
			depth--
		default:
			lx.cursor.Bump()
		}
	}
	lx.pushTrivia(kind, start)
	return true
}
