package typepath

import (
	"fmt"

	"implgen/internal/lexer"
	"implgen/internal/source"
	"implgen/internal/token"
)

// Cursor parses types sequentially from a token slice. The binding parser
// drives it across commas and arrows; trivia on the tokens is ignored.
type Cursor struct {
	toks []token.Token
	pos  int
}

func NewCursor(toks []token.Token) *Cursor {
	return &Cursor{toks: toks}
}

func (c *Cursor) Peek() token.Token {
	if c.pos >= len(c.toks) {
		return token.Token{Kind: token.EOF}
	}
	return c.toks[c.pos]
}

func (c *Cursor) Next() token.Token {
	t := c.Peek()
	if c.pos < len(c.toks) {
		c.pos++
	}
	return t
}

// AtEnd reports whether all tokens are consumed.
func (c *Cursor) AtEnd() bool {
	return c.Peek().Kind == token.EOF
}

// ParseType разбирает prefix-обёртки и путь: &T, &'a mut T, *const T,
// dyn T, a::b::C<D, E>.
func (c *Cursor) ParseType() (Type, error) {
	var prefix []byte

loop:
	for {
		switch c.Peek().Kind {
		case token.Amp:
			c.Next()
			prefix = append(prefix, '&')
			if c.Peek().Kind == token.Lifetime {
				prefix = append(prefix, c.Next().Text...)
				prefix = append(prefix, ' ')
			}
			if c.Peek().Kind == token.KwMut {
				c.Next()
				prefix = append(prefix, "mut "...)
			}
		case token.Star:
			c.Next()
			switch c.Peek().Kind {
			case token.KwConst:
				c.Next()
				prefix = append(prefix, "*const "...)
			case token.KwMut:
				c.Next()
				prefix = append(prefix, "*mut "...)
			default:
				return Type{}, fmt.Errorf("expected 'const' or 'mut' after '*', got %q", c.Peek().Text)
			}
		case token.KwDyn:
			c.Next()
			prefix = append(prefix, "dyn "...)
		default:
			break loop
		}
	}

	path, err := c.parsePath()
	if err != nil {
		return Type{}, err
	}
	return Type{Prefix: string(prefix), Path: path}, nil
}

func (c *Cursor) parsePath() (Path, error) {
	var segs []Segment
	for {
		tok := c.Peek()
		if !tok.IsIdentLike() {
			if len(segs) == 0 {
				return Path{}, fmt.Errorf("expected type path, got %q", tok.Text)
			}
			return Path{}, fmt.Errorf("expected identifier after '::', got %q", tok.Text)
		}
		c.Next()
		seg := Segment{Name: tok.Text}

		// generic-аргументы; турбофиш (::<...>) тоже принимаем
		if c.Peek().Kind == token.Lt {
			args, err := c.parseGenericArgs()
			if err != nil {
				return Path{}, err
			}
			seg.Args = args
		}
		segs = append(segs, seg)

		if c.Peek().Kind != token.ColonColon {
			return Path{Segments: segs}, nil
		}
		c.Next()
		if c.Peek().Kind == token.Lt {
			if len(segs[len(segs)-1].Args) > 0 {
				return Path{}, fmt.Errorf("duplicate generic argument list")
			}
			args, err := c.parseGenericArgs()
			if err != nil {
				return Path{}, err
			}
			segs[len(segs)-1].Args = args
			if c.Peek().Kind != token.ColonColon {
				return Path{Segments: segs}, nil
			}
			c.Next()
		}
	}
}

func (c *Cursor) parseGenericArgs() ([]Type, error) {
	c.Next() // '<'
	var args []Type
	for {
		switch c.Peek().Kind {
		case token.Gt:
			c.Next()
			return args, nil
		case token.EOF:
			return nil, fmt.Errorf("unclosed generic argument list")
		case token.Comma:
			c.Next()
			continue
		case token.Lifetime, token.IntLit, token.Underscore:
			// lifetime и const-generic аргументы храним текстом
			tok := c.Next()
			args = append(args, Type{Path: Path{Segments: []Segment{{Name: tok.Text}}}})
		default:
			arg, err := c.ParseType()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}
}

// ParseText parses a single type from raw text (used by tests and by the
// override-marker parser). Trailing tokens are an error.
func ParseText(text string) (Type, error) {
	toks := lexText(text)
	c := NewCursor(toks)
	ty, err := c.ParseType()
	if err != nil {
		return Type{}, err
	}
	if !c.AtEnd() {
		return Type{}, fmt.Errorf("unexpected trailing tokens after type: %q", c.Peek().Text)
	}
	return ty, nil
}

// MustParse is ParseText, panicking on error. Test helper.
func MustParse(text string) Type {
	ty, err := ParseText(text)
	if err != nil {
		panic(err)
	}
	return ty
}

// lexText превращает строку в токены через виртуальный файл.
func lexText(text string) []token.Token {
	fset := source.NewFileSet()
	id := fset.AddVirtual("<typepath>", []byte(text))
	toks := lexer.Tokenize(fset.Get(id), lexer.Options{})
	if len(toks) > 0 && toks[len(toks)-1].Kind == token.EOF {
		toks = toks[:len(toks)-1]
	}
	return toks
}
