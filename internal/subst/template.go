package subst

import (
	"strings"

	"implgen/internal/ast"
	"implgen/internal/token"
)

// TemplateSubstitute rewrites `${placeholder}` occurrences in the
// text-bearing parts of a fragment: doc comments, string literals, and
// token splices inside macro bodies. It runs after the tree pass, on the
// same copy, so in-place mutation is safe.
func TemplateSubstitute(frag *ast.Fragment, m *Matcher) {
	frag.Nodes = templateNodes(frag.Nodes, m)
}

func templateNodes(nodes []*ast.Node, m *Matcher) []*ast.Node {
	out := make([]*ast.Node, 0, len(nodes))
	i := 0
	for i < len(nodes) {
		n := nodes[i]
		// `${T}` как токены: Dollar + фигурная группа с именем placeholder
		if !n.IsGroup && n.Kind() == token.Dollar &&
			i+1 < len(nodes) && nodes[i+1].IsGroup && nodes[i+1].Delim == ast.DelimBrace &&
			m.MatchesTemplateName(ast.Flatten(nodes[i+1].Children)) {
			out = append(out, leafNodes(m.TypeReplacement(n.Tok.Leading))...)
			i += 2
			continue
		}
		if n.IsGroup {
			n.Open = templateToken(n.Open, m)
			n.Close = templateToken(n.Close, m)
			n.Children = templateNodes(n.Children, m)
		} else {
			n.Tok = templateToken(n.Tok, m)
		}
		out = append(out, n)
		i++
	}
	return out
}

func templateToken(t token.Token, m *Matcher) token.Token {
	pat := m.TemplatePattern()
	if len(t.Leading) > 0 {
		var lead []token.Trivia
		for i, tr := range t.Leading {
			if !tr.IsDoc() || !strings.Contains(tr.Text, pat) {
				if lead != nil {
					lead = append(lead, tr)
				}
				continue
			}
			if lead == nil {
				lead = append([]token.Trivia(nil), t.Leading[:i]...)
			}
			tr.Text = strings.ReplaceAll(tr.Text, pat, m.TemplateText())
			lead = append(lead, tr)
		}
		if lead != nil {
			t.Leading = lead
		}
	}
	if t.IsStringLike() && strings.Contains(t.Text, pat) {
		t.Text = strings.ReplaceAll(t.Text, pat, m.TemplateText())
	}
	return t
}
