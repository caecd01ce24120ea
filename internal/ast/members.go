package ast

import (
	"implgen/internal/token"
)

// AttrRef points at one `#[...]` attribute inside a member: the index of the
// '#' leaf and of the following bracket group.
type AttrRef struct {
	PoundIndex int
	GroupIndex int
}

// MemberScan is the structural result of scanning one impl-body member.
type MemberScan struct {
	Kind      MemberKind
	Name      string
	NameIndex int
	Start     int
	End       int
	Attrs     []AttrRef
}

// ScanMembers splits an impl body's top-level children into members.
// The scan is purely structural (attributes, visibility, modifiers, then
// fn/type/const plus a name) and deliberately forgiving: anything it cannot
// classify becomes MemberOther running to the next ';' or brace group.
//
// Substitution preserves member count and order, so re-scanning after a
// substitution pass yields ranges aligned with the pre-pass member list.
func ScanMembers(body *Node) []MemberScan {
	if body == nil {
		return nil
	}
	children := body.Children
	var out []MemberScan

	i := 0
	for i < len(children) {
		start := i
		var attrs []AttrRef

		// атрибуты члена
		for i+1 < len(children) &&
			children[i].Kind() == token.Pound &&
			children[i+1].IsGroup && children[i+1].Delim == DelimBracket {
			attrs = append(attrs, AttrRef{PoundIndex: i, GroupIndex: i + 1})
			i += 2
		}

		// видимость и модификаторы
		if i < len(children) && children[i].Kind() == token.KwPub {
			i++
			if i < len(children) && children[i].IsGroup && children[i].Delim == DelimParen {
				i++ // pub(crate)
			}
		}
		for i < len(children) {
			k := children[i].Kind()
			if k == token.KwUnsafe || (k == token.Ident && (children[i].Tok.Text == "async" || children[i].Tok.Text == "default")) {
				i++
				continue
			}
			// `const fn` — это модификатор, `const NAME` — член
			if k == token.KwConst && i+1 < len(children) && children[i+1].Kind() == token.KwFn {
				i++
				continue
			}
			break
		}

		if i >= len(children) {
			out = append(out, MemberScan{Kind: MemberOther, Start: start, End: i, Attrs: attrs})
			break
		}

		m := MemberScan{Start: start, Attrs: attrs, NameIndex: -1}
		switch children[i].Kind() {
		case token.KwFn:
			m.Kind = MemberFn
			i++
			if i < len(children) && children[i].Tok.IsIdentLike() {
				m.Name = children[i].Tok.Text
				m.NameIndex = i
				i++
			}
			i = seekMemberEnd(children, i, true)
		case token.KwType:
			m.Kind = MemberType
			i++
			if i < len(children) && children[i].Tok.IsIdentLike() {
				m.Name = children[i].Tok.Text
				m.NameIndex = i
				i++
			}
			i = seekMemberEnd(children, i, false)
		case token.KwConst:
			m.Kind = MemberConst
			i++
			if i < len(children) && children[i].Tok.IsIdentLike() {
				m.Name = children[i].Tok.Text
				m.NameIndex = i
				i++
			}
			i = seekMemberEnd(children, i, false)
		default:
			m.Kind = MemberOther
			i = seekMemberEnd(children, i, true)
		}
		m.End = i
		out = append(out, m)
	}
	return out
}

// seekMemberEnd advances past the member terminator: a ';' leaf, or — when
// braceEnds is set — the first brace group at this level (a fn body).
func seekMemberEnd(children []*Node, i int, braceEnds bool) int {
	for i < len(children) {
		n := children[i]
		if n.IsGroup {
			i++
			if braceEnds && n.Delim == DelimBrace {
				return i
			}
			continue
		}
		i++
		if n.Tok.Kind == token.Semicolon {
			return i
		}
	}
	return i
}
