// Package parser turns a source file into the scanner's view of it: a
// sequence of raw text regions interleaved with annotated declarations.
// Each declaration carries its binding stack, its token-tree fragment with
// member overrides resolved, and the byte span the driver splices output
// into. Everything between annotated declarations passes through untouched.
package parser

import (
	"fmt"

	"implgen/internal/ast"
	"implgen/internal/binding"
	"implgen/internal/diag"
	"implgen/internal/lexer"
	"implgen/internal/source"
	"implgen/internal/token"
)

// Decl is one annotated declaration found in a file.
type Decl struct {
	Frag  *ast.Fragment
	Stack binding.Stack
	// Span runs from the first binding attribute's '#' to the end of the
	// declaration; the driver replaces these bytes with the expansion.
	Span source.Span
	// Bad declarations had fatal diagnostics; their span is re-emitted
	// verbatim and all other declarations still expand.
	Bad bool
}

// Region is either a raw byte span or an annotated declaration.
type Region struct {
	Raw  source.Span
	Decl *Decl
}

// File is the scan result for one source file.
type File struct {
	Source  *source.File
	Regions []Region
}

// Decls returns the declarations in file order.
func (f *File) Decls() []*Decl {
	var out []*Decl
	for _, r := range f.Regions {
		if r.Decl != nil {
			out = append(out, r.Decl)
		}
	}
	return out
}

// ScanSource lexes and scans one file. Diagnostics go to r; declarations
// whose attributes fail to parse are kept as Bad regions.
func ScanSource(file *source.File, cfg Config, r diag.Reporter) *File {
	toks := lexer.Tokenize(file, lexer.Options{Reporter: r})
	nodes := BuildTree(toks, r)

	s := scanner{file: file, cfg: cfg, reporter: r}
	return s.scan(nodes)
}

type scanner struct {
	file     *source.File
	cfg      Config
	reporter diag.Reporter
}

func (s *scanner) scan(nodes []*ast.Node) *File {
	out := &File{Source: s.file}
	rawStart := uint32(0)

	i := 0
	for i < len(nodes) {
		if !s.isBindingAttr(nodes, i) {
			i++
			continue
		}

		declStart := nodes[i].Tok.Span.Start
		decl, next := s.scanDecl(nodes, i, declStart)
		if rawStart < declStart {
			out.Regions = append(out.Regions, Region{
				Raw: source.Span{File: s.file.ID, Start: rawStart, End: declStart},
			})
		}
		out.Regions = append(out.Regions, Region{Decl: decl})
		rawStart = decl.Span.End
		i = next
	}

	end := uint32(len(s.file.Content))
	if rawStart < end {
		out.Regions = append(out.Regions, Region{
			Raw: source.Span{File: s.file.ID, Start: rawStart, End: end},
		})
	}
	return out
}

// isAttrPair reports whether nodes[i] starts a `#[...]` pair.
func isAttrPair(nodes []*ast.Node, i int) bool {
	return i+1 < len(nodes) &&
		nodes[i].Kind() == token.Pound &&
		nodes[i+1].IsGroup && nodes[i+1].Delim == ast.DelimBracket
}

// attrName returns the leading identifier of an attribute group, if any.
func attrName(group *ast.Node) string {
	if len(group.Children) == 0 {
		return ""
	}
	first := group.Children[0]
	if first.IsGroup || !first.Tok.IsIdentLike() {
		return ""
	}
	return first.Tok.Text
}

func (s *scanner) isBindingAttr(nodes []*ast.Node, i int) bool {
	return isAttrPair(nodes, i) && attrName(nodes[i+1]) == s.cfg.Attr
}

// scanDecl consumes the attribute stack and the declaration that follows,
// starting at the first binding attribute. Returns the declaration and the
// index of the first node after it.
func (s *scanner) scanDecl(nodes []*ast.Node, i int, declStart uint32) (*Decl, int) {
	decl := &Decl{}
	var frag []*ast.Node

	// стек атрибутов: свои разбираем в биндинги, чужие остаются в копиях
	for isAttrPair(nodes, i) {
		group := nodes[i+1]
		if attrName(group) != s.cfg.Attr {
			frag = append(frag, nodes[i], nodes[i+1])
			i += 2
			continue
		}
		b, ok := s.parseAttrBinding(group)
		if ok {
			decl.Stack = append(decl.Stack, b)
		} else {
			decl.Bad = true
		}
		i += 2
	}

	// само объявление: до первой фигурной группы или ';' на этом уровне
	bodyIndex := -1
	firstLeaf := -1
	for i < len(nodes) {
		n := nodes[i]
		frag = append(frag, n)
		i++
		if n.IsGroup {
			if n.Delim == ast.DelimBrace {
				bodyIndex = len(frag) - 1
				break
			}
			continue
		}
		if firstLeaf < 0 {
			firstLeaf = len(frag) - 1
		}
		if n.Kind() == token.Semicolon {
			break
		}
	}

	if firstLeaf < 0 || frag[firstLeaf].Kind() != token.KwImpl {
		at := source.Span{File: s.file.ID}
		if len(frag) > 0 {
			at = frag[len(frag)-1].Span()
		}
		if firstLeaf >= 0 {
			at = frag[firstLeaf].Span()
		}
		diag.ReportError(s.reporter, diag.SynExpectImplBlock, at,
			"binding attribute must annotate an impl block")
		decl.Bad = true
	}

	if len(decl.Stack) == 0 {
		decl.Bad = true
	}

	decl.Frag = &ast.Fragment{Nodes: frag, BodyIndex: bodyIndex}
	stripFragmentLeading(decl.Frag)

	declEnd := declStart
	if len(frag) > 0 {
		declEnd = frag[len(frag)-1].Span().End
	}
	decl.Span = source.Span{File: s.file.ID, Start: declStart, End: declEnd}

	if !decl.Bad && bodyIndex >= 0 {
		if !s.resolveMembers(decl.Frag) {
			decl.Bad = true
		}
	}
	return decl, i
}

// parseAttrBinding extracts `name(args)` and parses args into a binding.
func (s *scanner) parseAttrBinding(group *ast.Node) (binding.Binding, bool) {
	if len(group.Children) != 2 || !group.Children[1].IsGroup ||
		group.Children[1].Delim != ast.DelimParen {
		diag.ReportError(s.reporter, diag.SynMalformedAttr, group.Span(),
			fmt.Sprintf("expected %s(...) with an argument list", s.cfg.Attr))
		return binding.Binding{}, false
	}
	args := group.Children[1]
	span := args.Open.Span.Cover(args.Close.Span)
	return binding.Parse(ast.Flatten(args.Children), span, s.reporter)
}

// stripFragmentLeading drops blank-line trivia from the fragment's first
// token so copies do not inherit the newline that followed the attribute.
// Comments and doc comments attached there are kept.
func stripFragmentLeading(frag *ast.Fragment) {
	if len(frag.Nodes) == 0 {
		return
	}
	n := frag.Nodes[0]
	lead := n.Tok.Leading
	if n.IsGroup {
		lead = n.Open.Leading
	}
	cut := 0
	for cut < len(lead) &&
		(lead[cut].Kind == token.TriviaSpace || lead[cut].Kind == token.TriviaNewline) {
		cut++
	}
	if cut == 0 {
		return
	}
	rest := append([]token.Trivia(nil), lead[cut:]...)
	if n.IsGroup {
		n.Open.Leading = rest
	} else {
		n.Tok.Leading = rest
	}
}
