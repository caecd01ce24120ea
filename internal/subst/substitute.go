package subst

import (
	"implgen/internal/ast"
	"implgen/internal/typepath"
)

// Substitute produces a new fragment with one (placeholder, argument) pair
// applied: member overrides for this argument first, then the tree walk.
// The input fragment is never touched; it seeds the other arguments of the
// same layer.
func Substitute(frag *ast.Fragment, m *Matcher) *ast.Fragment {
	out := frag.Clone()
	applyOverrides(out, m.Arg())
	body := out.Body()
	w := &walker{m: m}
	out.Nodes = w.code(out.Nodes)
	// многотокенная замена в заголовке сдвигает индекс тела
	out.BodyIndex = indexOfNode(out.Nodes, body)
	rescanMembers(out)
	return out
}

// indexOfNode finds a node by identity; the walker reuses group nodes, so
// the body group survives the walk as the same pointer.
func indexOfNode(nodes []*ast.Node, n *ast.Node) int {
	if n == nil {
		return -1
	}
	for i, c := range nodes {
		if c == n {
			return i
		}
	}
	return -1
}

// applyOverrides fires every override marker whose type equals the argument
// being substituted in: the default member is dropped from this copy and the
// alternate takes over its name.
func applyOverrides(frag *ast.Fragment, arg typepath.Type) {
	body := frag.Body()
	if body == nil {
		return
	}
	for i := range frag.Members {
		m := &frag.Members[i]
		for _, ov := range m.Overrides {
			if !ov.Type.Equal(arg) {
				continue
			}
			target := frag.MemberByName(ov.Alt)
			if target == nil {
				continue // scanner validated; unreachable after a clean scan
			}
			m.Dropped = true
			if target.NameIndex >= 0 {
				body.Children[target.NameIndex].Tok.Text = m.Name
			}
			target.Name = m.Name
			target.Claimed = true
			break
		}
	}
}

// rescanMembers realigns member child ranges after a walk. Substitution
// preserves member count and order, so ordinals carry the override state.
func rescanMembers(frag *ast.Fragment) {
	body := frag.Body()
	if body == nil || len(frag.Members) == 0 {
		return
	}
	scans := ast.ScanMembers(body)
	if len(scans) != len(frag.Members) {
		return
	}
	for i, sc := range scans {
		m := &frag.Members[i]
		m.Kind = sc.Kind
		m.Name = sc.Name
		m.NameIndex = sc.NameIndex
		m.Start = sc.Start
		m.End = sc.End
	}
}

// DropUnclaimedAlternates removes alternate members that no layer renamed
// in; they are templates and never appear in output under their own name.
func DropUnclaimedAlternates(frag *ast.Fragment) {
	for i := range frag.Members {
		m := &frag.Members[i]
		if m.IsAlternate && !m.Claimed {
			m.Dropped = true
		}
	}
}
