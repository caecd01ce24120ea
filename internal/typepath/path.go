// Package typepath models dotted/scoped type references with optional
// generic arguments: the placeholder symbols and concrete arguments of a
// binding both parse into this shape.
//
// A Path is immutable once parsed. Wrapper forms around a path (&T, &mut T,
// *const T, dyn T) are carried as canonical prefix text on Type: they are
// preserved in rendering but never participate in occurrence matching.
// Only a bare path (empty prefix) may serve as a placeholder; arguments may
// carry any prefix.
package typepath

import (
	"strings"
)

// Segment is one name in a path, optionally carrying generic arguments
// (`Vec<u8>` is one segment with one argument).
//
// Lifetimes and const generics inside an argument list are stored as
// single-segment paths whose name is the literal spelling ('a, 42); they
// compare and render textually, which is all the engine ever needs.
type Segment struct {
	Name string
	Args []Type
}

// Path is an ordered, non-empty sequence of segments (`a::b::C<D>`).
type Path struct {
	Segments []Segment
}

// Type is a path together with an optional wrapper prefix (`&mut `, `*const `).
type Type struct {
	Prefix string
	Path   Path
}

// LeadName returns the identifier of the first segment. This is the name the
// template substituter matches inside ${...} markers.
func (p Path) LeadName() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[0].Name
}

// IsBare reports whether the type is a plain path with no wrapper prefix.
func (t Type) IsBare() bool {
	return t.Prefix == ""
}

// Equal reports recursive structural equality of two paths: same segment
// count, same names, same generic-argument structure.
func (p Path) Equal(other Path) bool {
	if len(p.Segments) != len(other.Segments) {
		return false
	}
	for i := range p.Segments {
		if !p.Segments[i].equal(other.Segments[i]) {
			return false
		}
	}
	return true
}

func (s Segment) equal(other Segment) bool {
	if s.Name != other.Name || len(s.Args) != len(other.Args) {
		return false
	}
	for i := range s.Args {
		if !s.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

// Equal reports equality of two types, wrapper prefix included.
func (t Type) Equal(other Type) bool {
	return t.Prefix == other.Prefix && t.Path.Equal(other.Path)
}

// String renders the path back to canonical text: segments joined by '::',
// generic arguments separated by ", ".
func (p Path) String() string {
	var sb strings.Builder
	p.render(&sb)
	return sb.String()
}

func (p Path) render(sb *strings.Builder) {
	for i, seg := range p.Segments {
		if i > 0 {
			sb.WriteString("::")
		}
		sb.WriteString(seg.Name)
		if len(seg.Args) > 0 {
			sb.WriteByte('<')
			for j, arg := range seg.Args {
				if j > 0 {
					sb.WriteString(", ")
				}
				arg.render(sb)
			}
			sb.WriteByte('>')
		}
	}
}

// String renders the type, wrapper prefix included.
func (t Type) String() string {
	var sb strings.Builder
	t.render(&sb)
	return sb.String()
}

func (t Type) render(sb *strings.Builder) {
	sb.WriteString(t.Prefix)
	t.Path.render(sb)
}
