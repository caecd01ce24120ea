package subst

import (
	"implgen/internal/ast"
	"implgen/internal/token"
)

// walker rewrites one cloned fragment's node lists for one matcher.
//
// Two walking modes cover the whole grammar surface:
//
//   - code: statements and expressions. Idents are only candidates when
//     they start an expression path strictly longer than the placeholder
//     (so `T::default()` rewrites but a bare value `T` does not); keyword
//     dispatch hands sub-ranges over to type mode.
//   - type: every path here is a type reference, matched by leading-segment
//     equality with trailing generics carried over.
//
// Macro invocation bodies are copied verbatim; only the template pass
// touches them.
type walker struct {
	m *Matcher
}

func (w *walker) code(nodes []*ast.Node) []*ast.Node {
	out := make([]*ast.Node, 0, len(nodes))
	i := 0
	for i < len(nodes) {
		n := nodes[i]

		if n.IsGroup {
			n.Children = w.code(n.Children)
			out = append(out, n)
			i++
			continue
		}

		switch n.Kind() {
		case token.KwImpl:
			out = append(out, n)
			i++
			j := seekDeclBody(nodes, i)
			out = append(out, w.typeList(nodes[i:j])...)
			i = j
			if i < len(nodes) && nodes[i].IsGroup {
				body := nodes[i]
				body.Children = w.code(body.Children)
				out = append(out, body)
				i++
			}

		case token.KwFn:
			var k int
			out, k = w.fnDecl(nodes, i, out)
			i = k

		case token.KwLet:
			out = append(out, n)
			i++
			// паттерн до ':' или '='
			for i < len(nodes) && !nodes[i].IsGroup &&
				nodes[i].Kind() != token.Colon &&
				nodes[i].Kind() != token.Eq &&
				nodes[i].Kind() != token.Semicolon {
				out = append(out, nodes[i])
				i++
			}
			if i < len(nodes) && nodes[i].Kind() == token.Colon {
				out = append(out, nodes[i])
				i++
				j := seekTypeEnd(nodes, i, token.Eq, token.Semicolon)
				out = append(out, w.typeList(nodes[i:j])...)
				i = j
			}

		case token.KwConst, token.KwStatic:
			out = append(out, n)
			i++
			if i < len(nodes) && nodes[i].Kind() == token.KwFn {
				continue // `const fn`: модификатор, дальше обычный fn
			}
			for i < len(nodes) && !nodes[i].IsGroup &&
				(nodes[i].Tok.IsIdentLike() || nodes[i].Kind() == token.KwMut) &&
				nodes[i].Kind() != token.Colon {
				out = append(out, nodes[i])
				i++
			}
			if i < len(nodes) && nodes[i].Kind() == token.Colon {
				out = append(out, nodes[i])
				i++
				j := seekTypeEnd(nodes, i, token.Eq, token.Semicolon)
				out = append(out, w.typeList(nodes[i:j])...)
				i = j
			}

		case token.KwType:
			out = append(out, n)
			i++
			if i < len(nodes) && nodes[i].Tok.IsIdentLike() {
				out = append(out, nodes[i])
				i++
			}
			j := seekTypeEnd(nodes, i, token.Semicolon)
			out = append(out, w.typeList(nodes[i:j])...)
			i = j

		case token.KwAs:
			out = append(out, n)
			i++
			j := seekCastEnd(nodes, i)
			out = append(out, w.typeList(nodes[i:j])...)
			i = j

		case token.ColonColon:
			out = append(out, n)
			i++
			// turbofish: аргументы — типы
			if i < len(nodes) && nodes[i].Kind() == token.Lt {
				if end, ok := angleEnd(nodes, i); ok {
					out = append(out, nodes[i])
					out = append(out, w.typeList(nodes[i+1:end])...)
					out = append(out, nodes[end])
					i = end + 1
				}
			}

		case token.Lt:
			// qualified path в выражении: <T as Trait>::item
			if end, ok := angleEnd(nodes, i); ok &&
				end+1 < len(nodes) && nodes[end+1].Kind() == token.ColonColon {
				out = append(out, nodes[i])
				out = append(out, w.typeList(nodes[i+1:end])...)
				out = append(out, nodes[end])
				i = end + 1
				continue
			}
			out = append(out, n)
			i++

		case token.Ident, token.RawIdent:
			// macro body: не трогаем дерево, только template-проход
			if i+2 < len(nodes) && nodes[i+1].Kind() == token.Bang && nodes[i+2].IsGroup {
				out = append(out, nodes[i], nodes[i+1], nodes[i+2])
				i += 3
				continue
			}
			if prevIsPathSep(out) {
				out = append(out, n)
				i++
				continue
			}
			if end, ok := w.matchPath(nodes, i); ok &&
				end < len(nodes) && nodes[end].Kind() == token.ColonColon {
				// путь строго длиннее placeholder: T::default(), T::CONST
				out = append(out, leafNodes(w.m.ExprReplacement(n.Tok.Leading))...)
				i = end
				continue
			}
			out = append(out, n)
			i++

		default:
			out = append(out, n)
			i++
		}
	}
	return out
}

// fnDecl walks `fn name <generics> (params) -> ret where ... { body }`.
func (w *walker) fnDecl(nodes []*ast.Node, i int, out []*ast.Node) ([]*ast.Node, int) {
	out = append(out, nodes[i]) // fn
	i++
	if i < len(nodes) && nodes[i].Tok.IsIdentLike() {
		out = append(out, nodes[i]) // имя не матчится
		i++
	}
	for i < len(nodes) {
		n := nodes[i]
		if n.IsGroup {
			if n.Delim == ast.DelimBrace {
				n.Children = w.code(n.Children)
				out = append(out, n)
				i++
				return out, i
			}
			if n.Delim == ast.DelimParen {
				n.Children = w.params(n.Children)
				out = append(out, n)
				i++
				continue
			}
			n.Children = w.code(n.Children)
			out = append(out, n)
			i++
			continue
		}
		switch n.Kind() {
		case token.Semicolon:
			out = append(out, n)
			i++
			return out, i
		case token.Lt:
			if end, ok := angleEnd(nodes, i); ok {
				out = append(out, nodes[i])
				out = append(out, w.typeList(nodes[i+1:end])...)
				out = append(out, nodes[end])
				i = end + 1
				continue
			}
			out = append(out, n)
			i++
		case token.Arrow:
			out = append(out, n)
			i++
			j := seekDeclBody(nodes, i)
			j2 := seekStop(nodes, i, j, token.KwWhere, token.Semicolon)
			out = append(out, w.typeList(nodes[i:j2])...)
			i = j2
		case token.KwWhere:
			out = append(out, n)
			i++
			j := seekDeclBody(nodes, i)
			j2 := seekStop(nodes, i, j, token.Semicolon)
			out = append(out, w.typeList(nodes[i:j2])...)
			i = j2
		default:
			out = append(out, n)
			i++
		}
	}
	return out, i
}

// params walks a fn parameter list: patterns stay code, ascriptions are
// types. Commas inside generic arguments do not end a parameter.
func (w *walker) params(nodes []*ast.Node) []*ast.Node {
	out := make([]*ast.Node, 0, len(nodes))
	i := 0
	for i < len(nodes) {
		for i < len(nodes) && (nodes[i].IsGroup ||
			(nodes[i].Kind() != token.Colon && nodes[i].Kind() != token.Comma)) {
			n := nodes[i]
			if n.IsGroup {
				n.Children = w.code(n.Children)
			}
			out = append(out, n)
			i++
		}
		if i < len(nodes) && nodes[i].Kind() == token.Colon {
			out = append(out, nodes[i])
			i++
			j := seekTypeEnd(nodes, i, token.Comma)
			out = append(out, w.typeList(nodes[i:j])...)
			i = j
		}
		if i < len(nodes) && nodes[i].Kind() == token.Comma {
			out = append(out, nodes[i])
			i++
		}
	}
	return out
}

// typeList walks a run of nodes that are all in type position.
func (w *walker) typeList(nodes []*ast.Node) []*ast.Node {
	out := make([]*ast.Node, 0, len(nodes))
	i := 0
	for i < len(nodes) {
		n := nodes[i]
		if n.IsGroup {
			n.Children = w.typeList(n.Children)
			out = append(out, n)
			i++
			continue
		}
		if n.Tok.IsIdentLike() && !prevIsPathSep(out) {
			if end, ok := w.matchPath(nodes, i); ok {
				out = append(out, leafNodes(w.m.TypeReplacement(n.Tok.Leading))...)
				i = end
				continue
			}
		}
		out = append(out, n)
		i++
	}
	return out
}

// matchPath matches the placeholder's segments starting at nodes[i].
// Returns the index one past the last matched ident. Generic arguments on a
// non-final placeholder segment break the match; on the final one they are
// left in place and carried over.
func (w *walker) matchPath(nodes []*ast.Node, i int) (int, bool) {
	j := i
	for k := 0; k < len(w.m.segs); k++ {
		if k > 0 {
			if j >= len(nodes) || nodes[j].Kind() != token.ColonColon {
				return 0, false
			}
			j++
		}
		if j >= len(nodes) || nodes[j].IsGroup || !nodes[j].Tok.IsIdentLike() {
			return 0, false
		}
		if nodes[j].Tok.Text != w.m.segs[k] {
			return 0, false
		}
		j++
		if k < len(w.m.segs)-1 && j < len(nodes) && nodes[j].Kind() == token.Lt {
			return 0, false
		}
	}
	return j, true
}

// prevIsPathSep reports whether the last emitted node is `::`; an ident
// right after a path separator is a continuation (`super::T`), never the
// start of a placeholder occurrence.
func prevIsPathSep(out []*ast.Node) bool {
	return len(out) > 0 && out[len(out)-1].Kind() == token.ColonColon
}

func leafNodes(toks []token.Token) []*ast.Node {
	out := make([]*ast.Node, len(toks))
	for i, t := range toks {
		out[i] = ast.NewLeaf(t)
	}
	return out
}

// seekDeclBody finds the first top-level brace group, or a ';' at zero
// angle depth, whichever comes first.
func seekDeclBody(nodes []*ast.Node, i int) int {
	depth := 0
	for ; i < len(nodes); i++ {
		n := nodes[i]
		if n.IsGroup {
			if n.Delim == ast.DelimBrace && depth == 0 {
				return i
			}
			continue
		}
		switch n.Kind() {
		case token.Lt:
			depth++
		case token.Gt:
			if depth > 0 {
				depth--
			}
		case token.Semicolon:
			if depth == 0 {
				return i
			}
		}
	}
	return i
}

// seekTypeEnd finds the first stop kind at zero angle depth.
func seekTypeEnd(nodes []*ast.Node, i int, stops ...token.Kind) int {
	depth := 0
	for ; i < len(nodes); i++ {
		n := nodes[i]
		if n.IsGroup {
			continue
		}
		switch n.Kind() {
		case token.Lt:
			depth++
			continue
		case token.Gt:
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth == 0 && kindIn(n.Kind(), stops) {
			return i
		}
	}
	return i
}

// seekStop scans [i, limit) for the first stop kind at zero angle depth.
func seekStop(nodes []*ast.Node, i, limit int, stops ...token.Kind) int {
	depth := 0
	for ; i < limit; i++ {
		n := nodes[i]
		if n.IsGroup {
			continue
		}
		switch n.Kind() {
		case token.Lt:
			depth++
			continue
		case token.Gt:
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth == 0 && kindIn(n.Kind(), stops) {
			return i
		}
	}
	return limit
}

// seekCastEnd finds the end of the single type after `as`: prefix tokens,
// one path with balanced generics, optional tuple or slice group.
func seekCastEnd(nodes []*ast.Node, i int) int {
	// префиксы
	for i < len(nodes) && !nodes[i].IsGroup {
		k := nodes[i].Kind()
		if k == token.Amp || k == token.Star || k == token.KwMut ||
			k == token.KwConst || k == token.KwDyn || k == token.Lifetime {
			i++
			continue
		}
		break
	}
	if i < len(nodes) && nodes[i].IsGroup {
		return i + 1
	}
	// путь с generics
	for i < len(nodes) {
		n := nodes[i]
		if n.IsGroup {
			break
		}
		switch n.Kind() {
		case token.Ident, token.RawIdent, token.Underscore, token.ColonColon:
			i++
		case token.Lt:
			if end, ok := angleEnd(nodes, i); ok {
				i = end + 1
				continue
			}
			return i
		default:
			return i
		}
	}
	return i
}

// angleEnd finds the Gt leaf matching the Lt at nodes[i].
func angleEnd(nodes []*ast.Node, i int) (int, bool) {
	depth := 0
	for ; i < len(nodes); i++ {
		if nodes[i].IsGroup {
			continue
		}
		switch nodes[i].Kind() {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
			if depth == 0 {
				return i, true
			}
		case token.Semicolon:
			return 0, false
		}
	}
	return 0, false
}

func kindIn(k token.Kind, kinds []token.Kind) bool {
	for _, c := range kinds {
		if k == c {
			return true
		}
	}
	return false
}
