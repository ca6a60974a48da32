package geom

// Length returns the total length of the polyline.
func Length(pts []Vec2) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].Distance(pts[i])
	}
	return total
}

// PointAt returns the point at fraction frac of the polyline's total length.
// frac is clamped to [0, 1]. A polyline with zero total length returns its
// first point; an empty one returns the origin.
func PointAt(pts []Vec2, frac float64) Vec2 {
	switch len(pts) {
	case 0:
		return Vec2{}
	case 1:
		return pts[0]
	}
	frac = max(0, min(frac, 1))

	total := Length(pts)
	if total == 0 {
		return pts[0]
	}

	target := total * frac
	var walked float64
	for i := 1; i < len(pts); i++ {
		seg := pts[i-1].Distance(pts[i])
		if seg > 0 && walked+seg >= target {
			return pts[i-1].Lerp(pts[i], (target-walked)/seg)
		}
		walked += seg
	}
	return pts[len(pts)-1]
}
