package patch

import (
	"github.com/matzehuels/scenepatch/pkg/geom"
	"github.com/matzehuels/scenepatch/pkg/resource"
	"github.com/matzehuels/scenepatch/pkg/route"
	"github.com/matzehuels/scenepatch/pkg/scene"
	"github.com/matzehuels/scenepatch/pkg/surface"
)

// Edge defaults applied when the authored style leaves a value unset.
const (
	DefaultEdgeStroke      = resource.DefaultMarkerColor
	DefaultEdgeStrokeWidth = 1.5
)

func (p *pass) edge(e *scene.Edge) {
	from, okFrom := p.nodes[e.From]
	to, okTo := p.nodes[e.To]
	if !okFrom || !okTo {
		p.stats.Skipped++
		p.logger.Debug("edge endpoint not found", "edge", e.ID, "from", e.From, "to", e.To)
		return
	}
	group, ok := p.get(scene.EdgeID(e.ID))
	if !ok {
		return
	}
	p.stats.Edges++

	res := route.Resolve(from, to, e, p.off)
	d := res.D
	if p.opts.PathResolver != nil {
		start, end := res.Start, res.End
		if !e.IsSelfLoop() {
			start, end = route.Endpoints(from, to, e, p.off)
		}
		d = p.resolvePath(PathRequest{Edge: e, From: from, To: to, Start: start, End: end, Default: res})
	}

	style := e.Style
	if style == nil {
		style = &scene.EdgeStyle{}
	}
	rt := e.Runtime
	if rt == nil {
		rt = &scene.EdgeRuntime{}
	}

	if path, ok := p.get(scene.EdgePathID(e.ID)); ok {
		path.SetAttr("d", d)
		path.SetAttr("stroke", or(style.Stroke, DefaultEdgeStroke))
		width := DefaultEdgeStrokeWidth
		if style.StrokeWidth > 0 {
			width = style.StrokeWidth
		}
		path.SetAttr("stroke-width", geom.Num(width))
		path.SetAttr("fill", or(style.Fill, "none"))
		setString(path, "stroke-dasharray", DashArray(style.StrokeDasharray))
		setOrRemove(path, "stroke-dashoffset", rt.StrokeDashoffset)
		p.marker(path, "marker-start", e.StartMarker(), resource.AtStart, style.Stroke)
		p.marker(path, "marker-end", e.EndMarker(), resource.AtEnd, style.Stroke)

		if rt.Opacity != nil {
			group.SetAttr("opacity", geom.Num(*rt.Opacity))
			path.RemoveAttr("opacity")
		} else {
			group.RemoveAttr("opacity")
			setOrRemove(path, "opacity", style.Opacity)
		}
	}

	if hit, ok := p.get(scene.EdgeHitID(e.ID)); ok {
		hit.SetAttr("d", d)
	}

	p.edgeLabels(e, res)

	on, seed := p.sketch(scene.EdgeID(e.ID), style.Sketch, style.SketchSeed)
	p.applySketch(group, on, seed)
}

// marker attaches the marker resource for one edge end, or removes it when
// the end is undecorated. Unknown marker types draw as arrows.
func (p *pass) marker(el surface.Element, attr string, typ scene.MarkerType, pos resource.Position, color string) {
	switch typ {
	case scene.MarkerNone, "":
		el.RemoveAttr(attr)
		return
	case scene.MarkerArrow, scene.MarkerOpenArrow, scene.MarkerDiamond, scene.MarkerCircle:
	default:
		typ = scene.MarkerArrow
	}
	id := p.resources.Ensure(resource.Marker{Type: typ, Position: pos, Color: color})
	el.SetAttr(attr, resource.FilterURL(id))
}

// edgeLabels distributes labels over the three anchors and blanks slots
// that are no longer used.
func (p *pass) edgeLabels(e *scene.Edge, res route.Result) {
	labels := e.CollectLabels()
	slots := LabelSlots(labels)
	for i := range scene.MaxEdgeLabels {
		if i >= len(labels) {
			if el, ok := p.optional(scene.EdgeLabelID(e.ID, i)); ok {
				el.SetText("")
			}
			continue
		}
		el, ok := p.get(scene.EdgeLabelID(e.ID, i))
		if !ok {
			continue
		}
		at := res.Anchor(slots[i])
		el.SetAttr("x", geom.Num(at.X))
		el.SetAttr("y", geom.Num(at.Y))
		el.SetText(labels[i].Text)
	}
}

// LabelSlots assigns an anchor to each label. Explicit positions win;
// otherwise one label sits at the middle, two at start and end, and three
// at start, middle and end.
func LabelSlots(labels []scene.EdgeLabel) []scene.LabelPosition {
	var byIndex []scene.LabelPosition
	switch len(labels) {
	case 0:
		return nil
	case 1:
		byIndex = []scene.LabelPosition{scene.LabelMid}
	case 2:
		byIndex = []scene.LabelPosition{scene.LabelStart, scene.LabelEnd}
	default:
		byIndex = []scene.LabelPosition{scene.LabelStart, scene.LabelMid, scene.LabelEnd}
	}
	out := make([]scene.LabelPosition, len(labels))
	for i, l := range labels {
		switch {
		case l.Position != "":
			out[i] = l.Position
		case i < len(byIndex):
			out[i] = byIndex[i]
		default:
			out[i] = scene.LabelMid
		}
	}
	return out
}
