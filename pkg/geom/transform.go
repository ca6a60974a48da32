package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// Pivot is a rotation and uniform scale pinned at Center.
// Rotation is in degrees. Scale is used as given, so callers wanting the
// identity must set it to 1.
type Pivot struct {
	Center   Vec2
	Rotation float64
	Scale    float64
}

// Matrix returns the affine matrix equivalent to p.String().
func (p Pivot) Matrix() gg.Matrix {
	s := p.Scale
	return gg.Translate(p.Center.X, p.Center.Y).
		Multiply(gg.Rotate(p.Rotation * math.Pi / 180)).
		Multiply(gg.Scale(s, s)).
		Multiply(gg.Translate(-p.Center.X, -p.Center.Y))
}

// String renders p as a single translate-rotate-scale-translate-back
// transform list.
func (p Pivot) String() string {
	c := p.Center
	return "translate(" + Num(c.X) + " " + Num(c.Y) + ")" +
		" rotate(" + Num(p.Rotation) + ")" +
		" scale(" + Num(p.Scale) + ")" +
		" translate(" + Num(-c.X) + " " + Num(-c.Y) + ")"
}
