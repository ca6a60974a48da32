package patch

import (
	"github.com/matzehuels/scenepatch/pkg/geom"
	"github.com/matzehuels/scenepatch/pkg/resource"
	"github.com/matzehuels/scenepatch/pkg/scene"
	"github.com/matzehuels/scenepatch/pkg/surface"
)

// LayerGrid holds the background grid, below every other layer.
const LayerGrid = "grid"

// Mount builds the element tree for sc on a fresh [surface.Tree], then runs
// a first patch. The returned engine keeps the tree in sync on later calls.
//
// Structure is fixed at mount time: patches move, restyle and reorder
// elements but never create them. Adding nodes, edges, ports, media or
// label slots, or changing a node's shape kind, needs a new Mount.
func Mount(sc *scene.Scene, opts Options) (*surface.Tree, *Engine) {
	tree := surface.NewTree(sc.ViewBox.W, sc.ViewBox.H)
	eng := New(tree, opts)

	if sc.Grid != nil && sc.Grid.Size > 0 {
		id := eng.resources.Ensure(resource.Grid{Size: sc.Grid.Size, Stroke: sc.Grid.Stroke})
		bg := tree.AddLayer(LayerGrid).Append("rect", "")
		bg.SetAttr("width", geom.Num(sc.ViewBox.W))
		bg.SetAttr("height", geom.Num(sc.ViewBox.H))
		bg.SetAttr("fill", resource.FilterURL(id))
	}

	edges := tree.AddLayer(surface.LayerEdges)
	nodes := tree.AddLayer(surface.LayerNodes)
	overlays := tree.AddLayer(surface.LayerOverlays)

	for i := range sc.Nodes {
		mountNode(nodes, &sc.Nodes[i], opts.Icons, eng)
	}
	for i := range sc.Edges {
		mountEdge(edges, &sc.Edges[i])
	}
	for _, o := range sc.Overlays {
		mountOverlay(overlays, o)
	}

	stats := eng.Patch(sc)
	eng.logger.Debug("mounted scene",
		"nodes", stats.Nodes,
		"edges", stats.Edges,
		"overlays", len(sc.Overlays),
		"defs", len(tree.DefIDs()))
	return tree, eng
}

func mountNode(layer *surface.TreeElement, n *scene.Node, icons *scene.IconRegistry, eng *Engine) {
	g := layer.Append("g", scene.NodeID(n.ID))
	g.Append(ShapeTag(n.Shape.Kind), scene.NodeShapeID(n.ID))

	if n.Container != nil && n.Container.HeaderHeight > 0 {
		line := g.Append("line", scene.NodeHeaderID(n.ID))
		line.SetAttr("stroke", DefaultNodeStroke)
	}
	if n.Image != nil {
		g.Append("image", scene.NodeImageID(n.ID))
	}
	if n.Icon != nil {
		el := g.Append("svg", scene.NodeIconID(n.ID))
		if markup, ok := icons.Lookup(n.Icon.Name); ok {
			el.SetMarkup(markup)
		} else {
			eng.logger.Warn("icon not registered", "node", n.ID, "icon", n.Icon.Name)
		}
	}
	if n.SVGContent != nil {
		g.Append("svg", scene.NodeSVGID(n.ID)).SetMarkup(n.SVGContent.Markup)
	}
	if n.Label != nil {
		t := g.Append("text", scene.NodeLabelID(n.ID))
		t.SetAttr("text-anchor", "middle")
		t.SetAttr("dominant-baseline", "middle")
	}
	for _, port := range n.Ports {
		el := g.Append("circle", scene.NodePortID(n.ID, port.ID))
		el.SetAttr("r", "3")
		el.SetAttr("fill", DefaultNodeStroke)
	}
}

func mountEdge(layer *surface.TreeElement, e *scene.Edge) {
	g := layer.Append("g", scene.EdgeID(e.ID))
	g.Append("path", scene.EdgePathID(e.ID))

	hit := g.Append("path", scene.EdgeHitID(e.ID))
	hit.SetAttr("fill", "none")
	hit.SetAttr("stroke", "#000000")
	hit.SetAttr("stroke-opacity", "0")
	hit.SetAttr("stroke-width", "12")
	hit.SetAttr("pointer-events", "stroke")

	for i := range min(len(e.CollectLabels()), scene.MaxEdgeLabels) {
		t := g.Append("text", scene.EdgeLabelID(e.ID, i))
		t.SetAttr("text-anchor", "middle")
		t.SetAttr("dominant-baseline", "middle")
	}
}

func mountOverlay(layer *surface.TreeElement, o scene.Overlay) {
	switch o.Kind {
	case scene.OverlayText:
		t := layer.Append("text", scene.OverlayID(o.ID))
		t.SetAttr("x", geom.Num(o.X))
		t.SetAttr("y", geom.Num(o.Y))
		setString(t, "fill", o.Fill)
		setString(t, "class", o.Class)
		t.SetText(o.Text)
	default:
		r := layer.Append("rect", scene.OverlayID(o.ID))
		r.SetAttr("x", geom.Num(o.X))
		r.SetAttr("y", geom.Num(o.Y))
		r.SetAttr("width", geom.Num(o.W))
		r.SetAttr("height", geom.Num(o.H))
		r.SetAttr("fill", or(o.Fill, "none"))
		setString(r, "class", o.Class)
	}
}
