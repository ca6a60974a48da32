package scene

// ShapeKind discriminates the [Shape] union.
type ShapeKind string

// Shape kinds.
const (
	ShapeRect     ShapeKind = "rect"
	ShapeCircle   ShapeKind = "circle"
	ShapeEllipse  ShapeKind = "ellipse"
	ShapeDiamond  ShapeKind = "diamond"
	ShapeHexagon  ShapeKind = "hexagon"
	ShapeTriangle ShapeKind = "triangle"
	ShapeCylinder ShapeKind = "cylinder"
	ShapeCustom   ShapeKind = "custom"
)

// ShapeKinds lists every valid kind.
var ShapeKinds = []ShapeKind{
	ShapeRect, ShapeCircle, ShapeEllipse, ShapeDiamond,
	ShapeHexagon, ShapeTriangle, ShapeCylinder, ShapeCustom,
}

// Shape is the outline of a node, centered on the node position.
type Shape struct {
	Kind ShapeKind `json:"kind" bson:"kind"`

	// Box kinds (rect, diamond, hexagon, triangle, cylinder, custom).
	W      float64 `json:"w,omitempty" bson:"w,omitempty"`
	H      float64 `json:"h,omitempty" bson:"h,omitempty"`
	Corner float64 `json:"corner,omitempty" bson:"corner,omitempty"` // rect corner radius

	// circle
	R float64 `json:"r,omitempty" bson:"r,omitempty"`

	// ellipse
	RX float64 `json:"rx,omitempty" bson:"rx,omitempty"`
	RY float64 `json:"ry,omitempty" bson:"ry,omitempty"`
}

// Rect returns a rectangle shape.
func Rect(w, h float64) Shape { return Shape{Kind: ShapeRect, W: w, H: h} }

// Circle returns a circle shape.
func Circle(r float64) Shape { return Shape{Kind: ShapeCircle, R: r} }

// Ellipse returns an ellipse shape.
func Ellipse(rx, ry float64) Shape { return Shape{Kind: ShapeEllipse, RX: rx, RY: ry} }

// Box returns a box-sized shape of the given kind.
func Box(kind ShapeKind, w, h float64) Shape { return Shape{Kind: kind, W: w, H: h} }

// Size returns the rendered width and height of the shape.
func (s Shape) Size() (w, h float64) {
	switch s.Kind {
	case ShapeCircle:
		return 2 * s.R, 2 * s.R
	case ShapeEllipse:
		return 2 * s.RX, 2 * s.RY
	case ShapeRect, ShapeDiamond, ShapeHexagon, ShapeTriangle, ShapeCylinder, ShapeCustom:
		return s.W, s.H
	default:
		return 0, 0
	}
}

// Resized returns a copy of s with the runtime size overrides in rt applied.
// W and H resize box kinds and ellipses; R resizes circles.
func (s Shape) Resized(rt *NodeRuntime) Shape {
	if rt == nil {
		return s
	}
	switch s.Kind {
	case ShapeCircle:
		if rt.R != nil {
			s.R = *rt.R
		}
	case ShapeEllipse:
		if rt.W != nil {
			s.RX = *rt.W / 2
		}
		if rt.H != nil {
			s.RY = *rt.H / 2
		}
	default:
		if rt.W != nil {
			s.W = *rt.W
		}
		if rt.H != nil {
			s.H = *rt.H
		}
	}
	return s
}

// Valid reports whether Kind is a known shape kind.
func (s Shape) Valid() bool {
	for _, k := range ShapeKinds {
		if s.Kind == k {
			return true
		}
	}
	return false
}
