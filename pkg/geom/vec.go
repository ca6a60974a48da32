package geom

import (
	"math"
	"strconv"

	"github.com/gogpu/gg"
)

// Vec2 is a point or direction in surface coordinates.
type Vec2 = gg.Point

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 { return gg.Pt(x, y) }

// SafeLength returns the length of v, or 1 when v has zero length.
// Use it wherever the length ends up in a denominator.
func SafeLength(v Vec2) float64 {
	if l := v.Length(); l > 0 {
		return l
	}
	return 1
}

// Perp returns v rotated by +90 degrees.
func Perp(v Vec2) Vec2 { return V(-v.Y, v.X) }

// Approx reports whether a and b are within eps of each other on both axes.
func Approx(a, b Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

// Num formats v with the shortest decimal representation.
// Negative zero is printed as "0".
func Num(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
