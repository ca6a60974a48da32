package scene

import (
	"fmt"
	"math"

	"github.com/matzehuels/scenepatch/pkg/errors"
)

// Validate checks the hard invariants of a scene: unique, well-formed ids,
// known shape kinds, parent references to existing nodes and an acyclic
// parent chain. It reports every problem it finds, joined into a single
// coded error.
func (s *Scene) Validate() error {
	var errs []error
	add := func(err error) { errs = append(errs, err) }

	if s.ViewBox.W < 0 || s.ViewBox.H < 0 {
		add(errors.New(errors.ErrCodeInvalidScene, "viewBox must not be negative"))
	}

	nodes := make(map[string]*Node, len(s.Nodes))
	for i := range s.Nodes {
		n := &s.Nodes[i]
		if err := errors.ValidateElementID(n.ID); err != nil {
			add(errors.Wrap(errors.ErrCodeInvalidScene, err, "node %d", i))
			continue
		}
		if _, dup := nodes[n.ID]; dup {
			add(errors.New(errors.ErrCodeInvalidScene, "duplicate node id %q", n.ID))
			continue
		}
		nodes[n.ID] = n
		if !n.Shape.Valid() {
			add(errors.New(errors.ErrCodeInvalidScene, "node %q: unknown shape kind %q", n.ID, n.Shape.Kind))
		}
		if !finite(n.Pos.X) || !finite(n.Pos.Y) {
			add(errors.New(errors.ErrCodeInvalidScene, "node %q: position is not finite", n.ID))
		}
		ports := make(map[string]bool, len(n.Ports))
		for _, p := range n.Ports {
			if err := errors.ValidateElementID(p.ID); err != nil {
				add(errors.Wrap(errors.ErrCodeInvalidScene, err, "node %q port", n.ID))
				continue
			}
			if ports[p.ID] {
				add(errors.New(errors.ErrCodeInvalidScene, "node %q: duplicate port id %q", n.ID, p.ID))
			}
			ports[p.ID] = true
		}
	}

	for _, n := range s.Nodes {
		if n.ParentID == "" {
			continue
		}
		if _, ok := nodes[n.ParentID]; !ok {
			add(errors.New(errors.ErrCodeInvalidScene, "node %q: unknown parent %q", n.ID, n.ParentID))
		}
	}
	for _, id := range parentCycles(s.Nodes, nodes) {
		add(errors.New(errors.ErrCodeInvalidScene, "node %q: parent chain forms a cycle", id))
	}

	edges := make(map[string]bool, len(s.Edges))
	for i, e := range s.Edges {
		if err := errors.ValidateElementID(e.ID); err != nil {
			add(errors.Wrap(errors.ErrCodeInvalidScene, err, "edge %d", i))
			continue
		}
		if edges[e.ID] {
			add(errors.New(errors.ErrCodeInvalidScene, "duplicate edge id %q", e.ID))
		}
		edges[e.ID] = true
		if len(e.CollectLabels()) > MaxEdgeLabels {
			add(errors.New(errors.ErrCodeInvalidScene, "edge %q: at most %d labels are supported", e.ID, MaxEdgeLabels))
		}
	}

	overlays := make(map[string]bool, len(s.Overlays))
	for i, o := range s.Overlays {
		if err := errors.ValidateElementID(o.ID); err != nil {
			add(errors.Wrap(errors.ErrCodeInvalidScene, err, "overlay %d", i))
			continue
		}
		if overlays[o.ID] {
			add(errors.New(errors.ErrCodeInvalidScene, "duplicate overlay id %q", o.ID))
		}
		overlays[o.ID] = true
	}

	for _, err := range elementCollisions(s) {
		add(err)
	}

	for i, spec := range s.AnimationSpecs {
		if spec.Version != AnimationVersion {
			add(errors.New(errors.ErrCodeInvalidAnimation, "animation %d: unsupported version %q", i, spec.Version))
		}
	}

	return errors.Join(errors.ErrCodeInvalidScene, errs)
}

// elementCollisions reports authored ids whose derived element ids clash
// with those of another node or edge, such as node "a-shape" against
// the outline of node "a". Ids that are malformed or duplicated are reported
// elsewhere and skipped here.
func elementCollisions(s *Scene) []error {
	claims := make(map[string]string)
	var errs []error
	claim := func(owner string, ids []string) {
		for _, id := range ids {
			if prev, taken := claims[id]; taken {
				errs = append(errs, errors.New(errors.ErrCodeInvalidScene,
					"%s: element id %q collides with %s", owner, id, prev))
				return
			}
		}
		for _, id := range ids {
			claims[id] = owner
		}
	}

	seen := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if seen[n.ID] || errors.ValidateElementID(n.ID) != nil {
			continue
		}
		seen[n.ID] = true
		ids := []string{
			NodeID(n.ID), NodeShapeID(n.ID), NodeLabelID(n.ID), NodeImageID(n.ID),
			NodeIconID(n.ID), NodeSVGID(n.ID), NodeHeaderID(n.ID),
		}
		for _, p := range n.Ports {
			ids = append(ids, NodePortID(n.ID, p.ID))
		}
		claim(fmt.Sprintf("node %q", n.ID), ids)
	}

	clear(seen)
	for _, e := range s.Edges {
		if seen[e.ID] || errors.ValidateElementID(e.ID) != nil {
			continue
		}
		seen[e.ID] = true
		ids := []string{EdgeID(e.ID), EdgePathID(e.ID), EdgeHitID(e.ID)}
		for i := range MaxEdgeLabels {
			ids = append(ids, EdgeLabelID(e.ID, i))
		}
		claim(fmt.Sprintf("edge %q", e.ID), ids)
	}
	return errs
}

// DanglingEdges returns the ids of edges whose from or to node is missing.
// Such edges are not errors; the patch engine skips them.
func (s *Scene) DanglingEdges() []string {
	idx := s.NodeIndex()
	var out []string
	for _, e := range s.Edges {
		_, okFrom := idx[e.From]
		_, okTo := idx[e.To]
		if !okFrom || !okTo {
			out = append(out, e.ID)
		}
	}
	return out
}

// parentCycles returns, in scene order, the id of every node that sits on a
// parent cycle.
func parentCycles(ns []Node, byID map[string]*Node) []string {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(ns))
	onCycle := make(map[string]bool)

	for _, n := range ns {
		if state[n.ID] != unvisited {
			continue
		}
		var chain []string
		id := n.ID
		for id != "" && state[id] == unvisited {
			state[id] = visiting
			chain = append(chain, id)
			p, ok := byID[id]
			if !ok {
				break
			}
			id = p.ParentID
		}
		if id != "" && state[id] == visiting {
			for i := len(chain) - 1; i >= 0; i-- {
				onCycle[chain[i]] = true
				if chain[i] == id {
					break
				}
			}
		}
		for _, c := range chain {
			state[c] = done
		}
	}

	var out []string
	for _, n := range ns {
		if onCycle[n.ID] {
			out = append(out, n.ID)
			delete(onCycle, n.ID)
		}
	}
	return out
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
