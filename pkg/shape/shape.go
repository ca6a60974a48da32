package shape

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/scenepatch/pkg/geom"
	"github.com/matzehuels/scenepatch/pkg/scene"
)

// maxDepth bounds the ancestor walk so parent cycles cannot hang a patch.
const maxDepth = 64

// Offsets maps a node id to the displacement inherited from its ancestors.
type Offsets map[string]geom.Vec2

// Displacements computes, for every node, the sum of (runtime - base)
// positions over its ancestor chain. Nodes without moved ancestors are
// absent from the map.
func Displacements(nodes []scene.Node) Offsets {
	byID := make(map[string]*scene.Node, len(nodes))
	own := make(map[string]geom.Vec2)
	for i := range nodes {
		n := &nodes[i]
		byID[n.ID] = n
		if d := ownDelta(n); d != (geom.Vec2{}) {
			own[n.ID] = d
		}
	}
	if len(own) == 0 {
		return Offsets{}
	}

	out := make(Offsets)
	for i := range nodes {
		var sum geom.Vec2
		parent := nodes[i].ParentID
		for depth := 0; parent != "" && depth < maxDepth; depth++ {
			sum = sum.Add(own[parent])
			p, ok := byID[parent]
			if !ok {
				break
			}
			parent = p.ParentID
		}
		if sum != (geom.Vec2{}) {
			out[nodes[i].ID] = sum
		}
	}
	return out
}

func ownDelta(n *scene.Node) geom.Vec2 {
	if n.Runtime == nil {
		return geom.Vec2{}
	}
	var d geom.Vec2
	if n.Runtime.X != nil {
		d.X = *n.Runtime.X - n.Pos.X
	}
	if n.Runtime.Y != nil {
		d.Y = *n.Runtime.Y - n.Pos.Y
	}
	return d
}

// Position returns the effective center of n: runtime x/y when present,
// else Pos, plus the displacement inherited from its containers.
func Position(n *scene.Node, off Offsets) geom.Vec2 {
	p := n.Pos.Vec()
	if rt := n.Runtime; rt != nil {
		if rt.X != nil {
			p.X = *rt.X
		}
		if rt.Y != nil {
			p.Y = *rt.Y
		}
	}
	return p.Add(off[n.ID])
}

// Bounds returns the axis-aligned box of the effective shape around the
// effective position.
func Bounds(n *scene.Node, off Offsets) gg.Rect {
	c := Position(n, off)
	w, h := n.EffectiveShape().Size()
	half := geom.V(w/2, h/2)
	return gg.NewRect(c.Sub(half), c.Add(half))
}

// PortAnchor returns the absolute position of the named port.
func PortAnchor(n *scene.Node, portID string, off Offsets) (geom.Vec2, bool) {
	if portID == "" {
		return geom.Vec2{}, false
	}
	p, ok := n.Port(portID)
	if !ok {
		return geom.Vec2{}, false
	}
	return Position(n, off).Add(geom.V(p.X, p.Y)), true
}

// Boundary returns the point where the ray from center toward target leaves
// the outline of s. When target coincides with center the center itself is
// returned.
func Boundary(s scene.Shape, center, target geom.Vec2) geom.Vec2 {
	d := target.Sub(center)
	if d.X == 0 && d.Y == 0 {
		return center
	}
	t := rayScale(s, d)
	if math.IsInf(t, 0) || math.IsNaN(t) {
		return center
	}
	return center.Add(d.Mul(t))
}

// rayScale returns t such that d*t lies on the outline of s centered at the
// origin.
func rayScale(s scene.Shape, d geom.Vec2) float64 {
	switch s.Kind {
	case scene.ShapeCircle:
		return s.R / d.Length()
	case scene.ShapeEllipse:
		if s.RX <= 0 || s.RY <= 0 {
			return 0
		}
		return 1 / math.Hypot(d.X/s.RX, d.Y/s.RY)
	case scene.ShapeDiamond, scene.ShapeHexagon, scene.ShapeTriangle:
		return polygonScale(polygon(s), d)
	default:
		hw, hh := s.W/2, s.H/2
		t := math.Inf(1)
		if d.X != 0 {
			t = math.Min(t, hw/math.Abs(d.X))
		}
		if d.Y != 0 {
			t = math.Min(t, hh/math.Abs(d.Y))
		}
		return t
	}
}

// polygon returns the outline vertices of a polygon-like kind, centered on
// the origin, clockwise in screen coordinates.
func polygon(s scene.Shape) []geom.Vec2 {
	hw, hh := s.W/2, s.H/2
	switch s.Kind {
	case scene.ShapeDiamond:
		return []geom.Vec2{geom.V(0, -hh), geom.V(hw, 0), geom.V(0, hh), geom.V(-hw, 0)}
	case scene.ShapeHexagon:
		q := hw / 2
		return []geom.Vec2{
			geom.V(-hw, 0), geom.V(-q, -hh), geom.V(q, -hh),
			geom.V(hw, 0), geom.V(q, hh), geom.V(-q, hh),
		}
	case scene.ShapeTriangle:
		return []geom.Vec2{geom.V(0, -hh), geom.V(hw, hh), geom.V(-hw, hh)}
	}
	return nil
}

// Polygon returns the absolute outline vertices for polygon-like shapes
// centered at c, or nil for other kinds.
func Polygon(s scene.Shape, c geom.Vec2) []geom.Vec2 {
	pts := polygon(s)
	for i := range pts {
		pts[i] = pts[i].Add(c)
	}
	return pts
}

// polygonScale intersects the ray d*t (t >= 0) with every polygon edge and
// returns the smallest positive t.
func polygonScale(pts []geom.Vec2, d geom.Vec2) float64 {
	best := math.Inf(1)
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		e := b.Sub(a)
		den := d.Cross(e)
		if den == 0 {
			continue
		}
		t := a.Cross(e) / den
		u := a.Cross(d) / den
		if t > 0 && u >= -1e-9 && u <= 1+1e-9 && t < best {
			best = t
		}
	}
	return best
}
