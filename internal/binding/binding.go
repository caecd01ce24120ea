// Package binding parses one attribute's argument text into a generic
// binding: a placeholder path plus an ordered list of concrete type
// arguments. Three surface syntaxes normalize to the same shape:
//
//	T -> Meter, Foot, Mile     (canonical)
//	T in [Meter, Foot, Mile]   (bracketed)
//	Meter, Foot, Mile          (legacy: placeholder is the first argument)
//
// In the legacy form substituting argument 0 is an identity transform by
// construction, which is what makes the original type's copy come out
// byte-identical.
package binding

import (
	"implgen/internal/source"
	"implgen/internal/typepath"
)

// Binding is one attribute layer: a placeholder and its concrete arguments.
// The placeholder is always a bare path; arguments may carry wrapper
// prefixes (&U, &mut U, *const U).
type Binding struct {
	Placeholder typepath.Path
	Args        []typepath.Type
	// Span covers the attribute's argument text, for diagnostics.
	Span source.Span
}

// Stack is the ordered list of bindings attached to one declaration,
// outermost-listed first. It is consumed once to produce the Cartesian
// product of expansion copies and then discarded.
type Stack []Binding

// NumCopies returns the product of all layers' argument counts.
func (s Stack) NumCopies() int {
	n := 1
	for _, b := range s {
		n *= len(b.Args)
	}
	return n
}
