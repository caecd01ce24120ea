// Package ast holds the token-tree representation the expansion engine
// rewrites. The tree is deliberately grammar-agnostic: leaves are tokens,
// groups are delimiter-matched subtrees, and nothing else is committed to.
// The substituter layers its own contextual classification (type position,
// expression path, macro body) on top while walking.
package ast

import (
	"strings"

	"implgen/internal/source"
	"implgen/internal/token"
)

// Delim identifies the delimiter of a group node.
type Delim uint8

const (
	DelimParen Delim = iota
	DelimBracket
	DelimBrace
)

// Node is either a leaf token or a delimited group.
// A fragment is never mutated in place: substitution passes deep-copy
// whatever they touch, so earlier outputs are referentially independent
// from later ones.
type Node struct {
	// Tok is the leaf token; meaningful only when IsGroup is false.
	Tok token.Token

	IsGroup bool
	Delim   Delim
	// Open and Close carry the delimiter tokens with their trivia.
	Open, Close token.Token
	Children    []*Node
}

// NewLeaf wraps a token into a leaf node.
func NewLeaf(tok token.Token) *Node {
	return &Node{Tok: tok}
}

// NewGroup wraps children into a delimited group.
func NewGroup(delim Delim, open, close token.Token, children []*Node) *Node {
	return &Node{
		IsGroup:  true,
		Delim:    delim,
		Open:     open,
		Close:    close,
		Children: children,
	}
}

// Span returns the source extent of the node, leading trivia excluded.
func (n *Node) Span() source.Span {
	if !n.IsGroup {
		return n.Tok.Span
	}
	return n.Open.Span.Cover(n.Close.Span)
}

// Kind returns the leaf token kind, or Invalid for groups.
func (n *Node) Kind() token.Kind {
	if n.IsGroup {
		return token.Invalid
	}
	return n.Tok.Kind
}

// Clone deep-copies the node.
func (n *Node) Clone() *Node {
	out := &Node{
		Tok:     cloneToken(n.Tok),
		IsGroup: n.IsGroup,
		Delim:   n.Delim,
		Open:    cloneToken(n.Open),
		Close:   cloneToken(n.Close),
	}
	if n.Children != nil {
		out.Children = CloneNodes(n.Children)
	}
	return out
}

// CloneNodes deep-copies a node list.
func CloneNodes(nodes []*Node) []*Node {
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

func cloneToken(t token.Token) token.Token {
	if len(t.Leading) > 0 {
		lead := make([]token.Trivia, len(t.Leading))
		copy(lead, t.Leading)
		t.Leading = lead
	}
	return t
}

// RenderNodes writes the exact text of a node list: leading trivia plus
// token text for every leaf and delimiter.
func RenderNodes(nodes []*Node, sb *strings.Builder) {
	for _, n := range nodes {
		n.render(sb)
	}
}

func (n *Node) render(sb *strings.Builder) {
	if !n.IsGroup {
		writeToken(n.Tok, sb)
		return
	}
	writeToken(n.Open, sb)
	RenderNodes(n.Children, sb)
	writeToken(n.Close, sb)
}

func writeToken(t token.Token, sb *strings.Builder) {
	for _, tr := range t.Leading {
		sb.WriteString(tr.Text)
	}
	sb.WriteString(t.Text)
}

// Flatten expands a node list back into a flat token slice, reinserting
// group delimiters. The binding parser consumes attribute arguments this way.
func Flatten(nodes []*Node) []token.Token {
	var out []token.Token
	flattenInto(nodes, &out)
	return out
}

func flattenInto(nodes []*Node, out *[]token.Token) {
	for _, n := range nodes {
		if !n.IsGroup {
			*out = append(*out, n.Tok)
			continue
		}
		*out = append(*out, n.Open)
		flattenInto(n.Children, out)
		*out = append(*out, n.Close)
	}
}
