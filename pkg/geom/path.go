package geom

import "strings"

// PathData accumulates path commands. The zero value is ready to use.
type PathData struct {
	b strings.Builder
}

func (p *PathData) sep() {
	if p.b.Len() > 0 {
		p.b.WriteByte(' ')
	}
}

func (p *PathData) pt(v Vec2) {
	p.b.WriteString(Num(v.X))
	p.b.WriteByte(' ')
	p.b.WriteString(Num(v.Y))
}

// MoveTo starts a new subpath at v.
func (p *PathData) MoveTo(v Vec2) *PathData {
	p.sep()
	p.b.WriteString("M ")
	p.pt(v)
	return p
}

// LineTo adds a straight segment to v.
func (p *PathData) LineTo(v Vec2) *PathData {
	p.sep()
	p.b.WriteString("L ")
	p.pt(v)
	return p
}

// QuadTo adds a quadratic curve with control point c ending at v.
func (p *PathData) QuadTo(c, v Vec2) *PathData {
	p.sep()
	p.b.WriteString("Q ")
	p.pt(c)
	p.b.WriteByte(' ')
	p.pt(v)
	return p
}

// CubicTo adds a cubic curve with control points c1, c2 ending at v.
func (p *PathData) CubicTo(c1, c2, v Vec2) *PathData {
	p.sep()
	p.b.WriteString("C ")
	p.pt(c1)
	p.b.WriteString(", ")
	p.pt(c2)
	p.b.WriteString(", ")
	p.pt(v)
	return p
}

// String returns the accumulated path description.
func (p *PathData) String() string { return p.b.String() }

// Polyline returns "M p0 L p1 L p2 ..." for pts.
func Polyline(pts []Vec2) string {
	var p PathData
	for i, v := range pts {
		if i == 0 {
			p.MoveTo(v)
			continue
		}
		p.LineTo(v)
	}
	return p.String()
}
