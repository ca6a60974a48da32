package route

import (
	"github.com/gogpu/gg"

	"github.com/matzehuels/scenepatch/pkg/geom"
	"github.com/matzehuels/scenepatch/pkg/scene"
	"github.com/matzehuels/scenepatch/pkg/shape"
)

const (
	// maxLoopSpread caps the distance between a loop's exit and entry.
	maxLoopSpread = 20.0
	// loopControl scales the loop size into the control-point offset.
	loopControl = 1.5
)

// SelfLoop synthesizes a cubic loop on one side of n. Exit and entry
// straddle the side midpoint, spread by min(20, 0.8 * side length), and the
// controls are pushed outward by 1.5 times the loop size. Anchors are exact
// curve evaluations, so all three lie outside the node and the middle one
// is the furthest out.
func SelfLoop(n *scene.Node, e *scene.Edge, off shape.Offsets) Result {
	c := shape.Position(n, off)
	w, h := n.EffectiveShape().Size()
	size := e.EffectiveLoopSize()

	var mid, out, along geom.Vec2
	var dim float64
	switch e.EffectiveLoopSide() {
	case scene.SideBottom:
		mid, out, along, dim = geom.V(c.X, c.Y+h/2), geom.V(0, 1), geom.V(1, 0), w
	case scene.SideLeft:
		mid, out, along, dim = geom.V(c.X-w/2, c.Y), geom.V(-1, 0), geom.V(0, 1), h
	case scene.SideRight:
		mid, out, along, dim = geom.V(c.X+w/2, c.Y), geom.V(1, 0), geom.V(0, 1), h
	default:
		mid, out, along, dim = geom.V(c.X, c.Y-h/2), geom.V(0, -1), geom.V(1, 0), w
	}

	spread := min(maxLoopSpread, dim*0.8)
	exit := mid.Sub(along.Mul(spread / 2))
	entry := mid.Add(along.Mul(spread / 2))
	push := out.Mul(size * loopControl)
	c1, c2 := exit.Add(push), entry.Add(push)

	curve := gg.NewCubicBez(exit, c1, c2, entry)
	var d geom.PathData
	d.MoveTo(exit).CubicTo(c1, c2, entry)
	return Result{
		D:     d.String(),
		Start: curve.Eval(StartFrac),
		Mid:   curve.Eval(MidFrac),
		End:   curve.Eval(EndFrac),
	}
}
