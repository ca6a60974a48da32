package patch

import (
	"strings"

	"github.com/matzehuels/scenepatch/pkg/geom"
	"github.com/matzehuels/scenepatch/pkg/resource"
	"github.com/matzehuels/scenepatch/pkg/scene"
	"github.com/matzehuels/scenepatch/pkg/shape"
	"github.com/matzehuels/scenepatch/pkg/surface"
)

// Node defaults applied when the authored style leaves a value unset.
const (
	DefaultNodeFill        = "#ffffff"
	DefaultNodeStroke      = "#333333"
	DefaultNodeStrokeWidth = 1.5
)

func (p *pass) node(n *scene.Node) {
	group, ok := p.get(scene.NodeID(n.ID))
	if !ok {
		return
	}
	p.stats.Nodes++

	c := shape.Position(n, p.off)
	s := n.EffectiveShape()
	w, h := s.Size()

	style := n.Style
	if style == nil {
		style = &scene.NodeStyle{}
	}
	rt := n.Runtime
	if rt == nil {
		rt = &scene.NodeRuntime{}
	}

	if el, ok := p.get(scene.NodeShapeID(n.ID)); ok {
		writeShape(el, s, c)
		p.styleShape(el, style, rt)
	}
	p.label(n, c, h)
	p.media(n, c, w, h)
	p.header(n, c, w, h)

	// Opacity: runtime on the group, else style on the shape.
	if rt.Opacity != nil {
		group.SetAttr("opacity", geom.Num(*rt.Opacity))
		if el, ok := p.optional(scene.NodeShapeID(n.ID)); ok {
			el.RemoveAttr("opacity")
		}
	} else {
		group.RemoveAttr("opacity")
		if el, ok := p.optional(scene.NodeShapeID(n.ID)); ok {
			setOrRemove(el, "opacity", style.Opacity)
		}
	}

	if rt.Scale != nil || rt.Rotation != nil {
		pv := geom.Pivot{Center: c, Scale: 1}
		if rt.Scale != nil {
			pv.Scale = *rt.Scale
		}
		if rt.Rotation != nil {
			pv.Rotation = *rt.Rotation
		}
		group.SetAttr("transform", pv.String())
	} else {
		group.RemoveAttr("transform")
	}

	on, seed := p.sketch(scene.NodeID(n.ID), style.Sketch, style.SketchSeed)
	p.applySketch(group, on, seed)

	for _, port := range n.Ports {
		el, ok := p.get(scene.NodePortID(n.ID, port.ID))
		if !ok {
			continue
		}
		el.SetAttr("cx", geom.Num(c.X+port.X))
		el.SetAttr("cy", geom.Num(c.Y+port.Y))
	}
}

// styleShape applies authored paint, dash and shadow to the outline.
func (p *pass) styleShape(el surface.Element, style *scene.NodeStyle, rt *scene.NodeRuntime) {
	el.SetAttr("fill", or(style.Fill, DefaultNodeFill))
	el.SetAttr("stroke", or(style.Stroke, DefaultNodeStroke))
	width := DefaultNodeStrokeWidth
	if style.StrokeWidth > 0 {
		width = style.StrokeWidth
	}
	el.SetAttr("stroke-width", geom.Num(width))
	setString(el, "stroke-dasharray", DashArray(style.StrokeDasharray))
	setOrRemove(el, "stroke-dashoffset", rt.StrokeDashoffset)

	if style.Shadow != nil {
		id := p.resources.Ensure(resource.ShadowFrom(style.Shadow))
		el.SetAttr("filter", resource.FilterURL(id))
	} else if v, ok := el.Attr("filter"); ok && resource.IsShadowFilter(v) {
		el.RemoveAttr("filter")
	}
}

// label positions the node label at the center, or in the middle of the
// header band for containers whose label has no explicit vertical offset.
func (p *pass) label(n *scene.Node, c geom.Vec2, h float64) {
	if n.Label == nil {
		return
	}
	el, ok := p.get(scene.NodeLabelID(n.ID))
	if !ok {
		return
	}
	x, y := c.X+n.Label.DX, c.Y
	switch {
	case n.Label.DY != nil:
		y += *n.Label.DY
	case n.Container != nil && n.Container.HeaderHeight > 0:
		y = c.Y - h/2 + n.Container.HeaderHeight/2
	}
	el.SetAttr("x", geom.Num(x))
	el.SetAttr("y", geom.Num(y))
	el.SetText(n.Label.Text)
}

// header redraws the divider under a container's header band.
func (p *pass) header(n *scene.Node, c geom.Vec2, w, h float64) {
	if n.Container == nil || n.Container.HeaderHeight <= 0 {
		return
	}
	el, ok := p.get(scene.NodeHeaderID(n.ID))
	if !ok {
		return
	}
	y := c.Y - h/2 + n.Container.HeaderHeight
	el.SetAttr("x1", geom.Num(c.X-w/2))
	el.SetAttr("x2", geom.Num(c.X+w/2))
	el.SetAttr("y1", geom.Num(y))
	el.SetAttr("y2", geom.Num(y))
}

// media places image, icon and inline markup relative to the node.
func (p *pass) media(n *scene.Node, c geom.Vec2, w, h float64) {
	for _, m := range []struct {
		id    string
		media *scene.Media
		href  bool
	}{
		{scene.NodeImageID(n.ID), n.Image, true},
		{scene.NodeIconID(n.ID), n.Icon, false},
		{scene.NodeSVGID(n.ID), n.SVGContent, false},
	} {
		if m.media == nil {
			continue
		}
		el, ok := p.get(m.id)
		if !ok {
			continue
		}
		tl := MediaOrigin(m.media, c, w, h)
		el.SetAttr("x", geom.Num(tl.X))
		el.SetAttr("y", geom.Num(tl.Y))
		el.SetAttr("width", geom.Num(m.media.W))
		el.SetAttr("height", geom.Num(m.media.H))
		if m.href {
			el.SetAttr("href", m.media.Href)
		}
	}
}

// MediaOrigin returns the top-left corner of media placed on a node of
// size w x h centered at c.
func MediaOrigin(m *scene.Media, c geom.Vec2, w, h float64) geom.Vec2 {
	center := c
	switch m.Position {
	case scene.MediaAbove:
		center.Y -= h/2 + m.H/2
	case scene.MediaBelow:
		center.Y += h/2 + m.H/2
	case scene.MediaLeft:
		center.X -= w/2 + m.W/2
	case scene.MediaRight:
		center.X += w/2 + m.W/2
	}
	return geom.V(center.X-m.W/2+m.DX, center.Y-m.H/2+m.DY)
}

// writeShape pushes the geometry of s centered at c onto el.
func writeShape(el surface.Element, s scene.Shape, c geom.Vec2) {
	w, h := s.Size()
	switch s.Kind {
	case scene.ShapeCircle:
		el.SetAttr("cx", geom.Num(c.X))
		el.SetAttr("cy", geom.Num(c.Y))
		el.SetAttr("r", geom.Num(s.R))
	case scene.ShapeEllipse:
		el.SetAttr("cx", geom.Num(c.X))
		el.SetAttr("cy", geom.Num(c.Y))
		el.SetAttr("rx", geom.Num(s.RX))
		el.SetAttr("ry", geom.Num(s.RY))
	case scene.ShapeDiamond, scene.ShapeHexagon, scene.ShapeTriangle:
		el.SetAttr("points", points(shape.Polygon(s, c)))
	case scene.ShapeCylinder:
		el.SetAttr("d", cylinder(c, w, h))
	default:
		el.SetAttr("x", geom.Num(c.X-w/2))
		el.SetAttr("y", geom.Num(c.Y-h/2))
		el.SetAttr("width", geom.Num(w))
		el.SetAttr("height", geom.Num(h))
		if s.Corner > 0 {
			el.SetAttr("rx", geom.Num(s.Corner))
		} else {
			el.RemoveAttr("rx")
		}
	}
}

// ShapeTag returns the element name used to draw a shape kind.
func ShapeTag(k scene.ShapeKind) string {
	switch k {
	case scene.ShapeCircle:
		return "circle"
	case scene.ShapeEllipse:
		return "ellipse"
	case scene.ShapeDiamond, scene.ShapeHexagon, scene.ShapeTriangle:
		return "polygon"
	case scene.ShapeCylinder:
		return "path"
	default:
		return "rect"
	}
}

func points(pts []geom.Vec2) string {
	parts := make([]string, len(pts))
	for i, v := range pts {
		parts[i] = geom.Num(v.X) + "," + geom.Num(v.Y)
	}
	return strings.Join(parts, " ")
}

// kappa approximates a quarter ellipse with one cubic.
const kappa = 0.5522847498

// cylinder draws a body with elliptical caps: the outline first, then the
// front lip of the top cap as a second subpath.
func cylinder(c geom.Vec2, w, h float64) string {
	rx := w / 2
	ry := min(h*0.1, 10)
	top := c.Y - h/2 + ry
	bot := c.Y + h/2 - ry
	kx, ky := kappa*rx, kappa*ry
	left, right := c.X-rx, c.X+rx

	var d geom.PathData
	d.MoveTo(geom.V(left, top)).
		CubicTo(geom.V(left, top-ky), geom.V(c.X-kx, top-ry), geom.V(c.X, top-ry)).
		CubicTo(geom.V(c.X+kx, top-ry), geom.V(right, top-ky), geom.V(right, top)).
		LineTo(geom.V(right, bot)).
		CubicTo(geom.V(right, bot+ky), geom.V(c.X+kx, bot+ry), geom.V(c.X, bot+ry)).
		CubicTo(geom.V(c.X-kx, bot+ry), geom.V(left, bot+ky), geom.V(left, bot)).
		LineTo(geom.V(left, top)).
		MoveTo(geom.V(left, top)).
		CubicTo(geom.V(left, top+ky), geom.V(c.X-kx, top+ry), geom.V(c.X, top+ry)).
		CubicTo(geom.V(c.X+kx, top+ry), geom.V(right, top+ky), geom.V(right, top))
	return d.String()
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
