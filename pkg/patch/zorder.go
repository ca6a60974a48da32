package patch

import (
	"cmp"
	"slices"

	"github.com/matzehuels/scenepatch/pkg/scene"
	"github.com/matzehuels/scenepatch/pkg/surface"
)

// DrawOrder returns node ids in the order their groups should be drawn:
// roots first, each followed by its children, every sibling group stably
// sorted by zIndex. Nodes unreachable from a root (parent cycles) are
// appended in the same manner.
func DrawOrder(nodes []scene.Node) []string {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}
	children := make(map[string][]*scene.Node)
	var roots []*scene.Node
	for i := range nodes {
		n := &nodes[i]
		if n.ParentID == "" || !known[n.ParentID] {
			roots = append(roots, n)
			continue
		}
		children[n.ParentID] = append(children[n.ParentID], n)
	}

	byZ := func(a, b *scene.Node) int { return cmp.Compare(a.ZIndex, b.ZIndex) }
	out := make([]string, 0, len(nodes))
	seen := make(map[string]bool, len(nodes))
	var visit func(group []*scene.Node)
	visit = func(group []*scene.Node) {
		group = slices.Clone(group)
		slices.SortStableFunc(group, byZ)
		for _, n := range group {
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			out = append(out, n.ID)
			visit(children[n.ID])
		}
	}
	visit(roots)

	if len(out) < len(nodes) {
		var rest []*scene.Node
		for i := range nodes {
			if !seen[nodes[i].ID] {
				rest = append(rest, &nodes[i])
			}
		}
		visit(rest)
	}
	return out
}

// reorder restores node draw order in the nodes layer, moving only
// elements whose next managed sibling is wrong.
func (p *pass) reorder() int {
	layer, ok := p.surface.Layer(surface.LayerNodes)
	if !ok {
		return 0
	}
	current := layer.Children()
	present := make(map[string]bool, len(current))
	for _, id := range current {
		present[id] = true
	}

	var want []string
	for _, id := range DrawOrder(p.scene.Nodes) {
		if gid := scene.NodeID(id); present[gid] {
			want = append(want, gid)
		}
	}
	managed := make(map[string]bool, len(want))
	for _, id := range want {
		managed[id] = true
	}
	var cur []string
	for _, id := range current {
		if managed[id] {
			cur = append(cur, id)
		}
	}
	if slices.Equal(cur, want) {
		return 0
	}

	// Walk from the back so that after step i the tail of cur equals
	// want[i:].
	moves := 0
	for i := len(want) - 1; i >= 0; i-- {
		id := want[i]
		ref := ""
		if i+1 < len(want) {
			ref = want[i+1]
		}
		at := slices.Index(cur, id)
		next := ""
		if at+1 < len(cur) {
			next = cur[at+1]
		}
		if next == ref {
			continue
		}
		layer.InsertBefore(id, ref)
		cur = slices.Delete(cur, at, at+1)
		to := len(cur)
		if ref != "" {
			to = slices.Index(cur, ref)
		}
		cur = slices.Insert(cur, to, id)
		moves++
	}
	return moves
}
