package route

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/scenepatch/pkg/geom"
	"github.com/matzehuels/scenepatch/pkg/scene"
	"github.com/matzehuels/scenepatch/pkg/shape"
)

// Anchor fractions along the drawn geometry.
const (
	StartFrac = 0.15
	MidFrac   = 0.5
	EndFrac   = 0.85
)

const (
	// curveBend is the perpendicular offset of the quadratic control point
	// as a fraction of chord length.
	curveBend = 0.2
	// tension scales Catmull-Rom tangents into cubic control points.
	tension = 0.3
)

// Result is the derived geometry of one edge. It is recomputed on every
// patch call and never cached.
type Result struct {
	D     string
	Start geom.Vec2
	Mid   geom.Vec2
	End   geom.Vec2
}

// Anchor returns the label anchor for pos.
func (r Result) Anchor(pos scene.LabelPosition) geom.Vec2 {
	switch pos {
	case scene.LabelStart:
		return r.Start
	case scene.LabelEnd:
		return r.End
	default:
		return r.Mid
	}
}

// Endpoints resolves where an edge leaves from and arrives at to.
//
// A named port wins. A port that does not exist falls back to anchor
// resolution: AnchorCenter uses the effective position, AnchorBoundary
// (the default) projects onto the shape outline toward the opposite end.
func Endpoints(from, to *scene.Node, e *scene.Edge, off shape.Offsets) (start, end geom.Vec2) {
	fromPort, fromOK := shape.PortAnchor(from, e.FromPort, off)
	toPort, toOK := shape.PortAnchor(to, e.ToPort, off)

	fromRef := shape.Position(from, off)
	if fromOK {
		fromRef = fromPort
	}
	toRef := shape.Position(to, off)
	if toOK {
		toRef = toPort
	}

	start, end = fromRef, toRef
	if e.Anchor == scene.AnchorCenter {
		return start, end
	}
	if !fromOK {
		start = shape.Boundary(from.EffectiveShape(), fromRef, toRef)
	}
	if !toOK {
		end = shape.Boundary(to.EffectiveShape(), toRef, fromRef)
	}
	return start, end
}

// Resolve computes the full geometry of e, delegating to [SelfLoop] when
// the edge starts and ends on the same node.
func Resolve(from, to *scene.Node, e *scene.Edge, off shape.Offsets) Result {
	if e.IsSelfLoop() {
		return SelfLoop(from, e, off)
	}
	start, end := Endpoints(from, to, e, off)
	return Path(start, end, e.Routing, scene.Points(e.Waypoints))
}

// Path builds the path between two resolved endpoints. Unknown routing
// values behave as straight.
func Path(start, end geom.Vec2, routing scene.Routing, waypoints []geom.Vec2) Result {
	switch routing {
	case scene.RoutingCurved:
		if len(waypoints) == 0 {
			return quadratic(start, end)
		}
		return catmullRom(through(start, end, waypoints))
	case scene.RoutingOrthogonal:
		if len(waypoints) == 0 {
			return polyline(elbow(start, end))
		}
		return polyline(staircase(through(start, end, waypoints)))
	default:
		return polyline(through(start, end, waypoints))
	}
}

func through(start, end geom.Vec2, waypoints []geom.Vec2) []geom.Vec2 {
	pts := make([]geom.Vec2, 0, len(waypoints)+2)
	pts = append(pts, start)
	pts = append(pts, waypoints...)
	return append(pts, end)
}

func polyline(pts []geom.Vec2) Result {
	return Result{
		D:     geom.Polyline(pts),
		Start: geom.PointAt(pts, StartFrac),
		Mid:   geom.PointAt(pts, MidFrac),
		End:   geom.PointAt(pts, EndFrac),
	}
}

// quadratic bends the chord by a fixed fraction of its length, always to
// the +90 degree side of the travel direction.
func quadratic(start, end geom.Vec2) Result {
	chord := end.Sub(start)
	length := geom.SafeLength(chord)
	unit := chord.Div(length)
	cp := start.Lerp(end, 0.5).Add(geom.Perp(unit).Mul(curveBend * length))

	q := gg.NewQuadBez(start, cp, end)
	var d geom.PathData
	d.MoveTo(start).QuadTo(cp, end)
	return Result{
		D:     d.String(),
		Start: q.Eval(StartFrac),
		Mid:   q.Eval(MidFrac),
		End:   q.Eval(EndFrac),
	}
}

// catmullRom emits one cubic per consecutive pair of pts, with tangents
// taken from the neighbors. The sequence is clamped at both ends.
func catmullRom(pts []geom.Vec2) Result {
	if len(pts) < 3 {
		return quadratic(pts[0], pts[len(pts)-1])
	}
	var d geom.PathData
	d.MoveTo(pts[0])
	last := len(pts) - 1
	for i := 0; i < last; i++ {
		p0 := pts[max(i-1, 0)]
		p1 := pts[i]
		p2 := pts[i+1]
		p3 := pts[min(i+2, last)]
		c1 := p1.Add(p2.Sub(p0).Mul(tension))
		c2 := p2.Sub(p3.Sub(p1).Mul(tension))
		d.CubicTo(c1, c2, p2)
	}
	return Result{
		D:     d.String(),
		Start: geom.PointAt(pts, StartFrac),
		Mid:   geom.PointAt(pts, MidFrac),
		End:   geom.PointAt(pts, EndFrac),
	}
}

// elbow returns a single-turn orthogonal route. The longer axis is
// travelled first and the turn happens halfway along it.
func elbow(start, end geom.Vec2) []geom.Vec2 {
	if HorizontalFirst(start, end) {
		mx := (start.X + end.X) / 2
		return []geom.Vec2{start, geom.V(mx, start.Y), geom.V(mx, end.Y), end}
	}
	my := (start.Y + end.Y) / 2
	return []geom.Vec2{start, geom.V(start.X, my), geom.V(end.X, my), end}
}

// HorizontalFirst reports whether an auto-routed orthogonal edge leaves
// horizontally.
func HorizontalFirst(start, end geom.Vec2) bool {
	return math.Abs(end.X-start.X) >= math.Abs(end.Y-start.Y)
}

// staircase inserts a horizontal-then-vertical corner between every pair
// of consecutive points that are not already axis aligned.
func staircase(pts []geom.Vec2) []geom.Vec2 {
	out := make([]geom.Vec2, 0, 2*len(pts))
	out = append(out, pts[0])
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		corner := geom.V(b.X, a.Y)
		if corner != a && corner != b {
			out = append(out, corner)
		}
		out = append(out, b)
	}
	return out
}
