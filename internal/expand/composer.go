// Package expand composes binding layers into the Cartesian product of
// substituted copies of one declaration.
package expand

import (
	"strings"

	"implgen/internal/ast"
	"implgen/internal/binding"
	"implgen/internal/subst"
)

// Compose runs every layer of the stack over the fragment. The result
// length is the product of the layers' argument counts; enumeration varies
// the last-declared layer fastest. The input fragment is left untouched.
func Compose(frag *ast.Fragment, stack binding.Stack) []*ast.Fragment {
	frags := []*ast.Fragment{frag}
	for _, layer := range stack {
		matchers := make([]*subst.Matcher, len(layer.Args))
		for j, arg := range layer.Args {
			matchers[j] = subst.NewMatcher(layer.Placeholder, arg)
		}
		next := make([]*ast.Fragment, 0, len(frags)*len(layer.Args))
		for _, f := range frags {
			for _, m := range matchers {
				out := subst.Substitute(f, m)
				subst.TemplateSubstitute(out, m)
				next = append(next, out)
			}
		}
		frags = next
	}
	for _, f := range frags {
		subst.DropUnclaimedAlternates(f)
	}
	return frags
}

// Render concatenates the copies into the text blob that replaces the
// original declaration.
func Render(frags []*ast.Fragment) string {
	var sb strings.Builder
	for i, f := range frags {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(f.Render())
	}
	return sb.String()
}
