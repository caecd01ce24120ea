package parser

import (
	"fmt"

	"implgen/internal/ast"
	"implgen/internal/diag"
	"implgen/internal/token"
	"implgen/internal/typepath"
)

// resolveMembers strips per-member override attributes out of the impl body,
// scans the remaining children into members, и валидирует цели overrides.
// Returns false when any override is malformed or names a missing member.
func (s *scanner) resolveMembers(frag *ast.Fragment) bool {
	body := frag.Body()
	if body == nil {
		return true
	}

	type pending struct {
		at int // index in the stripped children where the member starts
		ov ast.Override
	}
	var pend []pending
	ok := true

	kept := body.Children[:0:0]
	i := 0
	for i < len(body.Children) {
		if isAttrPair(body.Children, i) && attrName(body.Children[i+1]) == s.cfg.OverrideAttr {
			ov, good := s.parseOverride(body.Children[i+1])
			if good {
				pend = append(pend, pending{at: len(kept), ov: ov})
			} else {
				ok = false
			}
			i += 2
			continue
		}
		kept = append(kept, body.Children[i])
		i++
	}
	body.Children = kept

	frag.Members = nil
	for _, sc := range ast.ScanMembers(body) {
		frag.Members = append(frag.Members, ast.Member{
			Kind:      sc.Kind,
			Name:      sc.Name,
			NameIndex: sc.NameIndex,
			Start:     sc.Start,
			End:       sc.End,
		})
	}

	for _, p := range pend {
		m := memberAt(frag.Members, p.at)
		if m == nil || m.Name == "" {
			diag.ReportError(s.reporter, diag.BindMalformedOverride, p.ov.Span,
				"override attribute is not attached to a named member")
			ok = false
			continue
		}
		ov := p.ov
		m.Overrides = append(m.Overrides, ov)

		target := frag.MemberByName(ov.Alt)
		if target == nil || target == m {
			diag.ReportError(s.reporter, diag.BindUnresolvedOverride, ov.Span,
				fmt.Sprintf("override target %q is not a member of this impl block", ov.Alt))
			ok = false
			continue
		}
		target.IsAlternate = true
	}
	return ok
}

// memberAt finds the member whose child range contains index at.
func memberAt(members []ast.Member, at int) *ast.Member {
	for i := range members {
		if members[i].Start <= at && at < members[i].End {
			return &members[i]
		}
	}
	return nil
}

// parseOverride reads `name(Type -> alt_member)` out of an attribute group.
func (s *scanner) parseOverride(group *ast.Node) (ast.Override, bool) {
	span := group.Open.Span.Cover(group.Close.Span)
	fail := func(msg string) (ast.Override, bool) {
		diag.ReportError(s.reporter, diag.BindMalformedOverride, span,
			fmt.Sprintf("malformed override attribute: %s", msg))
		return ast.Override{}, false
	}

	if len(group.Children) != 2 || !group.Children[1].IsGroup ||
		group.Children[1].Delim != ast.DelimParen {
		return fail(fmt.Sprintf("expected %s(Type -> member)", s.cfg.OverrideAttr))
	}

	c := typepath.NewCursor(ast.Flatten(group.Children[1].Children))
	ty, err := c.ParseType()
	if err != nil {
		return fail(err.Error())
	}
	if c.Next().Kind != token.Arrow {
		return fail("expected '->' after the type")
	}
	name := c.Next()
	if !name.IsIdentLike() {
		return fail("expected a member name after '->'")
	}
	if !c.AtEnd() {
		return fail(fmt.Sprintf("unexpected %q after the member name", c.Peek().Text))
	}
	return ast.Override{Type: ty, Alt: name.Text, Span: span}, true
}
