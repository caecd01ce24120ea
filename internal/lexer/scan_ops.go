package lexer

import (
	"implgen/internal/token"
)

// scanOperatorOrPunct сканирует пунктуацию.
// Многобайтовые токены распознаются только там, где этого требует walker:
// '::', '->', '=>'. Угловые скобки, амперсанды и '=' всегда лексятся
// по одному байту, поэтому Vec<Vec<u8>> и '&&T' не требуют расщепления.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	switch {
	case lx.try2(':', ':'):
		return emit(token.ColonColon)
	case lx.try2('-', '>'):
		return emit(token.Arrow)
	case lx.try2('=', '>'):
		return emit(token.FatArrow)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case ':':
		return emit(token.Colon)
	case ';':
		return emit(token.Semicolon)
	case ',':
		return emit(token.Comma)
	case '.':
		return emit(token.Dot)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '&':
		return emit(token.Amp)
	case '|':
		return emit(token.Pipe)
	case '^':
		return emit(token.Caret)
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '!':
		return emit(token.Bang)
	case '?':
		return emit(token.Question)
	case '=':
		return emit(token.Eq)
	case '@':
		return emit(token.At)
	case '#':
		return emit(token.Pound)
	case '$':
		return emit(token.Dollar)
	default:
		// редкая пунктуация (~ и прочее): текст сохраняем как есть
		return emit(token.Punct)
	}
}
