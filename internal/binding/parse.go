package binding

import (
	"fmt"

	"implgen/internal/diag"
	"implgen/internal/lexer"
	"implgen/internal/source"
	"implgen/internal/token"
	"implgen/internal/typepath"
)

// Parse разбирает токены аргументов одного атрибута в Binding.
// Все ошибки репортятся с span атрибута и фатальны для разворачивания
// этого объявления; частичного результата не бывает.
func Parse(toks []token.Token, span source.Span, r diag.Reporter) (Binding, bool) {
	c := typepath.NewCursor(toks)

	if c.AtEnd() {
		diag.ReportError(r, diag.BindEmptyArgs, span, "attribute has an empty argument list")
		return Binding{}, false
	}

	first, err := c.ParseType()
	if err != nil {
		diag.ReportError(r, diag.BindMalformed, span, fmt.Sprintf("malformed binding: %v", err))
		return Binding{}, false
	}

	switch c.Peek().Kind {
	case token.Arrow:
		// канонический вид: symbol -> arg1, arg2, ...
		c.Next()
		return parseCanonical(c, first, span, r)
	case token.KwIn:
		// вид со скобками: symbol in [arg1, arg2, ...]
		c.Next()
		return parseBracketed(c, first, span, r)
	case token.Comma, token.EOF:
		// legacy: placeholder := первый аргумент
		return parseLegacy(c, first, span, r)
	default:
		diag.ReportError(r, diag.BindMalformed, span,
			fmt.Sprintf("malformed binding: unexpected %q after first type", c.Peek().Text))
		return Binding{}, false
	}
}

func placeholderPath(first typepath.Type, span source.Span, r diag.Reporter) (typepath.Path, bool) {
	if !first.IsBare() {
		diag.ReportError(r, diag.BindBadPlaceholder, span,
			fmt.Sprintf("placeholder must be a bare type path, got %q", first.String()))
		return typepath.Path{}, false
	}
	return first.Path, true
}

func parseCanonical(c *typepath.Cursor, first typepath.Type, span source.Span, r diag.Reporter) (Binding, bool) {
	ph, ok := placeholderPath(first, span, r)
	if !ok {
		return Binding{}, false
	}
	args, ok := parseArgList(c, span, r, token.EOF)
	if !ok {
		return Binding{}, false
	}
	return Binding{Placeholder: ph, Args: args, Span: span}, true
}

func parseBracketed(c *typepath.Cursor, first typepath.Type, span source.Span, r diag.Reporter) (Binding, bool) {
	ph, ok := placeholderPath(first, span, r)
	if !ok {
		return Binding{}, false
	}
	if c.Peek().Kind != token.LBracket {
		diag.ReportError(r, diag.BindMalformed, span, "expected '[' after 'in'")
		return Binding{}, false
	}
	c.Next()
	args, ok := parseArgList(c, span, r, token.RBracket)
	if !ok {
		return Binding{}, false
	}
	c.Next() // ']'
	if !c.AtEnd() {
		diag.ReportError(r, diag.BindMalformed, span,
			fmt.Sprintf("unexpected %q after ']'", c.Peek().Text))
		return Binding{}, false
	}
	return Binding{Placeholder: ph, Args: args, Span: span}, true
}

func parseLegacy(c *typepath.Cursor, first typepath.Type, span source.Span, r diag.Reporter) (Binding, bool) {
	ph, ok := placeholderPath(first, span, r)
	if !ok {
		return Binding{}, false
	}
	args := []typepath.Type{first}
	for c.Peek().Kind == token.Comma {
		c.Next()
		if c.AtEnd() {
			break // допускаем завершающую запятую
		}
		arg, err := c.ParseType()
		if err != nil {
			diag.ReportError(r, diag.BindMalformed, span, fmt.Sprintf("malformed binding: %v", err))
			return Binding{}, false
		}
		args = append(args, arg)
	}
	if !c.AtEnd() {
		diag.ReportError(r, diag.BindMalformed, span,
			fmt.Sprintf("unexpected %q in argument list", c.Peek().Text))
		return Binding{}, false
	}
	return Binding{Placeholder: ph, Args: args, Span: span}, true
}

// parseArgList разбирает "arg1, arg2, ..." до stop-токена.
func parseArgList(c *typepath.Cursor, span source.Span, r diag.Reporter, stop token.Kind) ([]typepath.Type, bool) {
	var args []typepath.Type
	for {
		switch c.Peek().Kind {
		case stop:
			if len(args) == 0 {
				diag.ReportError(r, diag.BindEmptyArgs, span, "binding has an empty argument list")
				return nil, false
			}
			return args, true
		case token.Comma:
			c.Next()
		case token.RBracket, token.EOF:
			// не наш stop: незакрытый список или мусор
			diag.ReportError(r, diag.BindMalformed, span, "malformed argument list")
			return nil, false
		default:
			arg, err := c.ParseType()
			if err != nil {
				diag.ReportError(r, diag.BindMalformed, span, fmt.Sprintf("malformed binding: %v", err))
				return nil, false
			}
			args = append(args, arg)
		}
	}
}

// ParseText is a convenience for tests and tooling: it lexes text through a
// virtual file and parses a single binding, returning an error instead of
// reporting diagnostics.
func ParseText(text string) (Binding, error) {
	fset := source.NewFileSet()
	id := fset.AddVirtual("<binding>", []byte(text))
	toks := lexer.Tokenize(fset.Get(id), lexer.Options{})
	if len(toks) > 0 && toks[len(toks)-1].Kind == token.EOF {
		toks = toks[:len(toks)-1]
	}

	bag := diag.NewBag(8)
	b, ok := Parse(toks, source.Span{File: id}, diag.BagReporter{Bag: bag})
	if !ok {
		if bag.Len() > 0 {
			d := bag.Items()[0]
			return Binding{}, fmt.Errorf("%s: %s", d.Code, d.Message)
		}
		return Binding{}, fmt.Errorf("malformed binding")
	}
	return b, nil
}
