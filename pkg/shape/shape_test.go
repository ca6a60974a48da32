package shape

import (
	"math"
	"testing"

	"github.com/matzehuels/scenepatch/pkg/geom"
	"github.com/matzehuels/scenepatch/pkg/scene"
)

const eps = 1e-9

func TestBoundary(t *testing.T) {
	c := geom.V(100, 100)
	tests := []struct {
		name   string
		shape  scene.Shape
		target geom.Vec2
		want   geom.Vec2
	}{
		{"circle east", scene.Circle(10), geom.V(200, 100), geom.V(110, 100)},
		{"circle diagonal", scene.Circle(10), geom.V(200, 200), geom.V(100+10/math.Sqrt2, 100+10/math.Sqrt2)},
		{"ellipse north", scene.Ellipse(20, 10), geom.V(100, 0), geom.V(100, 90)},
		{"ellipse east", scene.Ellipse(20, 10), geom.V(300, 100), geom.V(120, 100)},
		{"rect east", scene.Rect(40, 20), geom.V(300, 100), geom.V(120, 100)},
		{"rect steep", scene.Rect(40, 20), geom.V(110, 200), geom.V(101, 110)},
		{"rect corner", scene.Rect(40, 20), geom.V(140, 120), geom.V(120, 110)},
		{"cylinder south", scene.Box(scene.ShapeCylinder, 40, 20), geom.V(100, 300), geom.V(100, 110)},
		{"diamond east", scene.Box(scene.ShapeDiamond, 40, 20), geom.V(300, 100), geom.V(120, 100)},
		{"diamond diagonal", scene.Box(scene.ShapeDiamond, 40, 40), geom.V(200, 200), geom.V(110, 110)},
		{"hexagon north", scene.Box(scene.ShapeHexagon, 40, 20), geom.V(100, 0), geom.V(100, 90)},
		{"hexagon west", scene.Box(scene.ShapeHexagon, 40, 20), geom.V(0, 100), geom.V(80, 100)},
		{"triangle north", scene.Box(scene.ShapeTriangle, 40, 20), geom.V(100, 0), geom.V(100, 90)},
		{"triangle south", scene.Box(scene.ShapeTriangle, 40, 20), geom.V(100, 300), geom.V(100, 110)},
		{"coincident", scene.Rect(40, 20), c, c},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Boundary(tt.shape, c, tt.target)
			if !geom.Approx(got, tt.want, 1e-6) {
				t.Errorf("Boundary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundaryZeroSize(t *testing.T) {
	c := geom.V(5, 5)
	for _, s := range []scene.Shape{scene.Rect(0, 0), scene.Circle(0), scene.Ellipse(0, 0), scene.Box(scene.ShapeDiamond, 0, 0)} {
		got := Boundary(s, c, geom.V(50, 50))
		if math.IsNaN(got.X) || math.IsNaN(got.Y) || math.IsInf(got.X, 0) {
			t.Errorf("%s: Boundary() = %v, want finite", s.Kind, got)
		}
	}
}

func TestDisplacements(t *testing.T) {
	nodes := []scene.Node{
		{ID: "outer", Pos: scene.Point{X: 0, Y: 0}, Runtime: &scene.NodeRuntime{X: scene.Float(10)}},
		{ID: "inner", ParentID: "outer", Pos: scene.Point{X: 5, Y: 5}, Runtime: &scene.NodeRuntime{Y: scene.Float(8)}},
		{ID: "leaf", ParentID: "inner", Pos: scene.Point{X: 6, Y: 6}},
		{ID: "free", Pos: scene.Point{X: 1, Y: 1}},
	}
	off := Displacements(nodes)

	if got := off["inner"]; got != geom.V(10, 0) {
		t.Errorf("inner displacement = %v, want (10, 0)", got)
	}
	if got := off["leaf"]; got != geom.V(10, 3) {
		t.Errorf("leaf displacement = %v, want (10, 3)", got)
	}
	if _, ok := off["free"]; ok {
		t.Error("free node has a displacement")
	}

	if got := Position(&nodes[2], off); got != geom.V(16, 9) {
		t.Errorf("leaf Position = %v, want (16, 9)", got)
	}
	// inner has its own runtime y plus the outer x delta.
	if got := Position(&nodes[1], off); got != geom.V(15, 8) {
		t.Errorf("inner Position = %v, want (15, 8)", got)
	}
}

func TestDisplacementsToleratesCycles(t *testing.T) {
	nodes := []scene.Node{
		{ID: "a", ParentID: "b", Runtime: &scene.NodeRuntime{X: scene.Float(1)}},
		{ID: "b", ParentID: "a"},
	}
	off := Displacements(nodes)
	if got := off["b"].X; got <= 0 {
		t.Errorf("b displacement = %v, want positive", got)
	}
}

func TestPortAnchor(t *testing.T) {
	n := scene.Node{
		ID:      "n",
		Pos:     scene.Point{X: 10, Y: 10},
		Ports:   []scene.Port{{ID: "out", X: 20, Y: -5}},
		Runtime: &scene.NodeRuntime{X: scene.Float(30)},
	}
	got, ok := PortAnchor(&n, "out", nil)
	if !ok || got != geom.V(50, 5) {
		t.Errorf("PortAnchor(out) = (%v, %v), want ((50, 5), true)", got, ok)
	}
	if _, ok := PortAnchor(&n, "missing", nil); ok {
		t.Error("PortAnchor(missing) reported ok")
	}
}

func TestBounds(t *testing.T) {
	n := scene.Node{Pos: scene.Point{X: 50, Y: 50}, Shape: scene.Rect(20, 10), Runtime: &scene.NodeRuntime{W: scene.Float(40)}}
	b := Bounds(&n, nil)
	if b.Width() != 40 || b.Height() != 10 || b.Min != geom.V(30, 45) {
		t.Errorf("Bounds() = %+v, want 40x10 at (30, 45)", b)
	}
}
