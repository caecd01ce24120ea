package ast

import (
	"strings"

	"implgen/internal/source"
	"implgen/internal/typepath"
)

// MemberKind classifies a member of an implementation block.
type MemberKind uint8

const (
	MemberFn MemberKind = iota
	MemberType
	MemberConst
	MemberOther
)

// Override is a per-member override marker: when the active layer's concrete
// argument equals Type, the member this marker sits on is dropped from that
// copy and the member named Alt is renamed to take its place.
type Override struct {
	Type typepath.Type
	Alt  string
	Span source.Span
}

// Member is a view into an impl body's top-level children.
// Indices refer to the body group's Children slice.
type Member struct {
	Kind      MemberKind
	Name      string
	NameIndex int // index of the name leaf
	Start     int // first child of the member (attrs included)
	End       int // one past the last child

	Overrides []Override

	// IsAlternate marks a member that is some override's target: it only
	// ever appears in output renamed into a matching copy.
	IsAlternate bool
	// Claimed is set on an alternate once a layer renamed it in.
	Claimed bool
	// Dropped members are skipped when rendering.
	Dropped bool
}

// Fragment is one annotated declaration with its binding attributes already
// stripped. It is the unit the substituter copies and rewrites; the original
// is left untouched so it can seed the next argument or the next layer.
type Fragment struct {
	Nodes []*Node
	// BodyIndex is the index in Nodes of the impl body brace group, or -1.
	BodyIndex int
	Members   []Member
}

// Body returns the impl body group, or nil.
func (f *Fragment) Body() *Node {
	if f.BodyIndex < 0 || f.BodyIndex >= len(f.Nodes) {
		return nil
	}
	return f.Nodes[f.BodyIndex]
}

// Clone deep-copies the fragment, member state included.
func (f *Fragment) Clone() *Fragment {
	out := &Fragment{
		Nodes:     CloneNodes(f.Nodes),
		BodyIndex: f.BodyIndex,
	}
	if f.Members != nil {
		out.Members = make([]Member, len(f.Members))
		copy(out.Members, f.Members)
		for i := range out.Members {
			if ovs := out.Members[i].Overrides; len(ovs) > 0 {
				out.Members[i].Overrides = append([]Override(nil), ovs...)
			}
		}
	}
	return out
}

// Render writes the fragment back to text, skipping dropped members.
func (f *Fragment) Render() string {
	var sb strings.Builder
	if f.Body() == nil || !f.hasDropped() {
		RenderNodes(f.Nodes, &sb)
		return sb.String()
	}

	skip := make(map[int]bool)
	for _, m := range f.Members {
		if !m.Dropped {
			continue
		}
		for i := m.Start; i < m.End; i++ {
			skip[i] = true
		}
	}

	for idx, n := range f.Nodes {
		if idx != f.BodyIndex {
			n.render(&sb)
			continue
		}
		writeToken(n.Open, &sb)
		for i, child := range n.Children {
			if skip[i] {
				continue
			}
			child.render(&sb)
		}
		writeToken(n.Close, &sb)
	}
	return sb.String()
}

func (f *Fragment) hasDropped() bool {
	for i := range f.Members {
		if f.Members[i].Dropped {
			return true
		}
	}
	return false
}

// MemberByName returns the first non-dropped member with the given name.
func (f *Fragment) MemberByName(name string) *Member {
	for i := range f.Members {
		if !f.Members[i].Dropped && f.Members[i].Name == name {
			return &f.Members[i]
		}
	}
	return nil
}
