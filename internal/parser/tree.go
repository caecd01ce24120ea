package parser

import (
	"implgen/internal/ast"
	"implgen/internal/diag"
	"implgen/internal/source"
	"implgen/internal/token"
)

// BuildTree folds a flat token slice into a delimiter-matched node list.
// The EOF token, if present, is dropped (its leading trivia lives on in the
// source text and is re-emitted from raw spans by the driver).
//
// Mismatched delimiters are reported and recovered from: a stray closer is
// skipped, an unclosed group is closed at end of input. Recovery keeps file
// scanning alive so later declarations still get their diagnostics.
func BuildTree(toks []token.Token, r diag.Reporter) []*ast.Node {
	b := treeBuilder{toks: toks, reporter: r}
	return b.parse(token.Invalid)
}

type treeBuilder struct {
	toks     []token.Token
	pos      int
	reporter diag.Reporter
}

func (b *treeBuilder) parse(close token.Kind) []*ast.Node {
	var out []*ast.Node
	for b.pos < len(b.toks) {
		t := b.toks[b.pos]
		switch t.Kind {
		case token.EOF:
			b.pos++
		case token.LParen, token.LBracket, token.LBrace:
			b.pos++
			children := b.parse(matchingClose(t.Kind))
			group := ast.NewGroup(delimOf(t.Kind), t, b.takeClose(t, matchingClose(t.Kind)), children)
			out = append(out, group)
		case token.RParen, token.RBracket, token.RBrace:
			if t.Kind == close {
				return out
			}
			if close == token.Invalid {
				diag.ReportError(b.reporter, diag.SynStrayCloseDelim, t.Span,
					"closing delimiter without a matching opener")
				b.pos++
				continue
			}
			// закрывашка не нашего уровня: закрываем группу, пусть
			// родитель разбирается
			return out
		default:
			out = append(out, ast.NewLeaf(t))
			b.pos++
		}
	}
	return out
}

// takeClose consumes the expected closing token, synthesizing one when the
// group ran off the end of input.
func (b *treeBuilder) takeClose(open token.Token, close token.Kind) token.Token {
	if b.pos < len(b.toks) && b.toks[b.pos].Kind == close {
		t := b.toks[b.pos]
		b.pos++
		return t
	}
	diag.ReportError(b.reporter, diag.SynUnclosedDelim, open.Span,
		"unclosed delimiter")
	return token.Token{Kind: close, Span: endSpan(b.toks), Text: closeText(close)}
}

func matchingClose(open token.Kind) token.Kind {
	switch open {
	case token.LParen:
		return token.RParen
	case token.LBracket:
		return token.RBracket
	default:
		return token.RBrace
	}
}

func delimOf(open token.Kind) ast.Delim {
	switch open {
	case token.LParen:
		return ast.DelimParen
	case token.LBracket:
		return ast.DelimBracket
	default:
		return ast.DelimBrace
	}
}

func closeText(k token.Kind) string {
	switch k {
	case token.RParen:
		return ")"
	case token.RBracket:
		return "]"
	default:
		return "}"
	}
}

func endSpan(toks []token.Token) source.Span {
	if len(toks) == 0 {
		return source.Span{}
	}
	last := toks[len(toks)-1].Span
	return source.Span{File: last.File, Start: last.End, End: last.End}
}
