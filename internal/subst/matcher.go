// Package subst implements one substitution pass: given a fragment and one
// (placeholder, argument) pair, produce a new fragment with every
// type-position occurrence of the placeholder rewritten to the argument.
// Classification of type positions is a token-level state machine layered on
// the grammar-agnostic tree; it is purely structural and performs no scope
// resolution, so a local redeclaration spelled like the placeholder is still
// rewritten wherever it lands in a type position.
package subst

import (
	"strings"

	"implgen/internal/lexer"
	"implgen/internal/source"
	"implgen/internal/token"
	"implgen/internal/typepath"
)

// Matcher holds one (placeholder, argument) pair in the shapes the walker
// needs: segment names for path matching and pre-lexed replacement tokens
// for splicing.
type Matcher struct {
	segs []string // placeholder path segment names
	arg  typepath.Type

	// repl is the argument lexed back into tokens, trivia attached, so a
	// splice renders exactly as the argument was written.
	repl []token.Token
	// qualRepl is `<arg>`-wrapped, for expression paths whose substitute
	// is not a plain path (wrappers or generic arguments).
	qualRepl []token.Token
	// plainPath is set when the argument is a bare path without generics
	// on its last segment; expression paths can splice it directly.
	plainPath bool
}

// NewMatcher builds a matcher for one binding layer's placeholder and one
// argument from its list.
func NewMatcher(placeholder typepath.Path, arg typepath.Type) *Matcher {
	m := &Matcher{arg: arg}
	for _, s := range placeholder.Segments {
		m.segs = append(m.segs, s.Name)
	}
	text := arg.String()
	m.repl = lexReplacement(text)
	m.qualRepl = lexReplacement("<" + text + ">")
	m.plainPath = arg.IsBare() && len(arg.Path.Segments) > 0 &&
		len(arg.Path.Segments[len(arg.Path.Segments)-1].Args) == 0
	return m
}

// Arg returns the concrete argument this matcher substitutes in.
func (m *Matcher) Arg() typepath.Type { return m.arg }

// SegCount returns the number of placeholder path segments.
func (m *Matcher) SegCount() int { return len(m.segs) }

// MatchesPrefix reports whether the occurrence's leading segments equal the
// placeholder's. Comparison starts at segment zero, so a scoped spelling
// like `super::T` never matches a bare `T`.
func (m *Matcher) MatchesPrefix(occurrence []string) bool {
	if len(occurrence) < len(m.segs) {
		return false
	}
	for i, s := range m.segs {
		if occurrence[i] != s {
			return false
		}
	}
	return true
}

// TypeReplacement returns splice tokens for a type-position occurrence.
// Leading trivia of the first replaced token is carried onto the splice.
func (m *Matcher) TypeReplacement(lead []token.Trivia) []token.Token {
	return withLeading(m.repl, lead)
}

// ExprReplacement returns splice tokens for an expression-path occurrence.
// Non-path arguments come back in qualified `<...>` form so the remaining
// `::member` tail stays well-formed.
func (m *Matcher) ExprReplacement(lead []token.Trivia) []token.Token {
	if m.plainPath {
		return withLeading(m.repl, lead)
	}
	return withLeading(m.qualRepl, lead)
}

// TemplateText is the argument's canonical rendering, for `${...}` splices
// in documentation and string literals.
func (m *Matcher) TemplateText() string {
	return m.arg.String()
}

// TemplatePattern is the literal `${placeholder}` text this matcher rewrites
// in text-bearing leaves.
func (m *Matcher) TemplatePattern() string {
	return "${" + strings.Join(m.segs, "::") + "}"
}

// MatchesTemplateName reports whether the identifier tokens inside a
// `${...}` group spell the placeholder path.
func (m *Matcher) MatchesTemplateName(toks []token.Token) bool {
	var names []string
	for i, t := range toks {
		switch {
		case t.Kind == token.Ident || t.Kind == token.RawIdent:
			names = append(names, t.Text)
		case t.Kind == token.ColonColon && i > 0 && i < len(toks)-1:
		default:
			return false
		}
	}
	if len(names) != len(m.segs) {
		return false
	}
	for i, n := range names {
		if n != m.segs[i] {
			return false
		}
	}
	return true
}

// lexReplacement tokenizes replacement text through a virtual file. Spans on
// the result are meaningless and never reach diagnostics; only text and
// trivia matter for rendering.
func lexReplacement(text string) []token.Token {
	fset := source.NewFileSet()
	id := fset.AddVirtual("<subst>", []byte(text))
	toks := lexer.Tokenize(fset.Get(id), lexer.Options{})
	if n := len(toks); n > 0 && toks[n-1].Kind == token.EOF {
		toks = toks[:n-1]
	}
	return toks
}

// withLeading deep-copies the splice tokens and puts lead on the first one.
func withLeading(toks []token.Token, lead []token.Trivia) []token.Token {
	out := make([]token.Token, len(toks))
	copy(out, toks)
	for i := range out {
		if len(out[i].Leading) > 0 {
			l := make([]token.Trivia, len(out[i].Leading))
			copy(l, out[i].Leading)
			out[i].Leading = l
		}
	}
	if len(out) > 0 {
		out[0].Leading = append([]token.Trivia(nil), lead...)
	}
	return out
}
