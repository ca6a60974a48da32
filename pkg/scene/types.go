package scene

import "github.com/matzehuels/scenepatch/pkg/geom"

// =============================================================================
// Scene
// =============================================================================

// Scene is a declarative description of everything drawn on a surface.
type Scene struct {
	ViewBox        ViewBox         `json:"viewBox" bson:"view_box"`
	Nodes          []Node          `json:"nodes" bson:"nodes"`
	Edges          []Edge          `json:"edges" bson:"edges"`
	Overlays       []Overlay       `json:"overlays,omitempty" bson:"overlays,omitempty"`
	AnimationSpecs []AnimationSpec `json:"animationSpecs,omitempty" bson:"animation_specs,omitempty"`
	Grid           *Grid           `json:"grid,omitempty" bson:"grid,omitempty"`
	Sketch         *SketchConfig   `json:"sketch,omitempty" bson:"sketch,omitempty"`
}

// ViewBox is the drawing area in surface units.
type ViewBox struct {
	W float64 `json:"w" bson:"w"`
	H float64 `json:"h" bson:"h"`
}

// Grid draws a background grid once at mount time.
type Grid struct {
	Size   float64 `json:"size" bson:"size"`
	Stroke string  `json:"stroke,omitempty" bson:"stroke,omitempty"`
}

// SketchConfig enables the hand-drawn filter for every node and edge.
// Seed, when set, is mixed into every per-element seed.
type SketchConfig struct {
	Enabled bool   `json:"enabled" bson:"enabled"`
	Seed    uint32 `json:"seed,omitempty" bson:"seed,omitempty"`
}

// Overlay is a static annotation drawn above nodes and edges.
type Overlay struct {
	ID    string  `json:"id" bson:"id"`
	Kind  string  `json:"kind" bson:"kind"` // "rect" or "text"
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
	W     float64 `json:"w,omitempty" bson:"w,omitempty"`
	H     float64 `json:"h,omitempty" bson:"h,omitempty"`
	Text  string  `json:"text,omitempty" bson:"text,omitempty"`
	Fill  string  `json:"fill,omitempty" bson:"fill,omitempty"`
	Class string  `json:"class,omitempty" bson:"class,omitempty"`
}

// Overlay kinds.
const (
	OverlayRect = "rect"
	OverlayText = "text"
)

// Point is a serializable 2D coordinate.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Vec converts p to a geometry vector.
func (p Point) Vec() geom.Vec2 { return geom.V(p.X, p.Y) }

// Points converts a slice of points to geometry vectors.
func Points(ps []Point) []geom.Vec2 {
	if len(ps) == 0 {
		return nil
	}
	out := make([]geom.Vec2, len(ps))
	for i, p := range ps {
		out[i] = p.Vec()
	}
	return out
}

// Float returns a pointer to v, for optional fields.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for optional fields.
func Bool(v bool) *bool { return &v }

// =============================================================================
// Node
// =============================================================================

// Node is a shape at a position, optionally nested in a container.
// Pos is the center of the shape.
type Node struct {
	ID         string       `json:"id" bson:"id"`
	Pos        Point        `json:"pos" bson:"pos"`
	Shape      Shape        `json:"shape" bson:"shape"`
	ParentID   string       `json:"parentId,omitempty" bson:"parent_id,omitempty"`
	Container  *Container   `json:"container,omitempty" bson:"container,omitempty"`
	Ports      []Port       `json:"ports,omitempty" bson:"ports,omitempty"`
	Label      *Label       `json:"label,omitempty" bson:"label,omitempty"`
	Image      *Media       `json:"image,omitempty" bson:"image,omitempty"`
	Icon       *Media       `json:"icon,omitempty" bson:"icon,omitempty"`
	SVGContent *Media       `json:"svgContent,omitempty" bson:"svg_content,omitempty"`
	Style      *NodeStyle   `json:"style,omitempty" bson:"style,omitempty"`
	Runtime    *NodeRuntime `json:"runtime,omitempty" bson:"runtime,omitempty"`
	ZIndex     int          `json:"zIndex,omitempty" bson:"z_index,omitempty"`
}

// Container marks a node as a group box with an optional header band.
type Container struct {
	HeaderHeight float64 `json:"headerHeight,omitempty" bson:"header_height,omitempty"`
}

// Port is a named attachment point at an offset from the node center.
type Port struct {
	ID string  `json:"id" bson:"id"`
	X  float64 `json:"x" bson:"x"`
	Y  float64 `json:"y" bson:"y"`
}

// Label is the text drawn on a node. DY, when set, is an explicit vertical
// offset from the node center and disables header recentering.
type Label struct {
	Text string   `json:"text" bson:"text"`
	DX   float64  `json:"dx,omitempty" bson:"dx,omitempty"`
	DY   *float64 `json:"dy,omitempty" bson:"dy,omitempty"`
}

// MediaPosition places embedded media relative to the node.
type MediaPosition string

// Media placements.
const (
	MediaCenter MediaPosition = "center"
	MediaAbove  MediaPosition = "above"
	MediaBelow  MediaPosition = "below"
	MediaLeft   MediaPosition = "left"
	MediaRight  MediaPosition = "right"
)

// Media describes an embedded image, registry icon or inline markup.
// Exactly one of Href (image), Name (icon) or Markup (svgContent) is used,
// depending on which Node field holds it.
type Media struct {
	Href     string        `json:"href,omitempty" bson:"href,omitempty"`
	Name     string        `json:"name,omitempty" bson:"name,omitempty"`
	Markup   string        `json:"markup,omitempty" bson:"markup,omitempty"`
	W        float64       `json:"w" bson:"w"`
	H        float64       `json:"h" bson:"h"`
	Position MediaPosition `json:"position,omitempty" bson:"position,omitempty"`
	DX       float64       `json:"dx,omitempty" bson:"dx,omitempty"`
	DY       float64       `json:"dy,omitempty" bson:"dy,omitempty"`
}

// Shadow configures a drop shadow. Unset fields take defaults; an explicit
// zero offset or blur is kept.
type Shadow struct {
	DX    *float64 `json:"dx,omitempty" bson:"dx,omitempty"`
	DY    *float64 `json:"dy,omitempty" bson:"dy,omitempty"`
	Blur  *float64 `json:"blur,omitempty" bson:"blur,omitempty"`
	Color string   `json:"color,omitempty" bson:"color,omitempty"`
}

// NodeStyle is the persistent authored appearance of a node.
type NodeStyle struct {
	Fill            string   `json:"fill,omitempty" bson:"fill,omitempty"`
	Stroke          string   `json:"stroke,omitempty" bson:"stroke,omitempty"`
	StrokeWidth     float64  `json:"strokeWidth,omitempty" bson:"stroke_width,omitempty"`
	StrokeDasharray string   `json:"strokeDasharray,omitempty" bson:"stroke_dasharray,omitempty"`
	Opacity         *float64 `json:"opacity,omitempty" bson:"opacity,omitempty"`
	Shadow          *Shadow  `json:"shadow,omitempty" bson:"shadow,omitempty"`
	Sketch          *bool    `json:"sketch,omitempty" bson:"sketch,omitempty"`
	SketchSeed      *uint32  `json:"sketchSeed,omitempty" bson:"sketch_seed,omitempty"`
}

// NodeRuntime holds transient overrides for the current frame only.
type NodeRuntime struct {
	X                *float64 `json:"x,omitempty" bson:"x,omitempty"`
	Y                *float64 `json:"y,omitempty" bson:"y,omitempty"`
	W                *float64 `json:"w,omitempty" bson:"w,omitempty"`
	H                *float64 `json:"h,omitempty" bson:"h,omitempty"`
	R                *float64 `json:"r,omitempty" bson:"r,omitempty"`
	Opacity          *float64 `json:"opacity,omitempty" bson:"opacity,omitempty"`
	Scale            *float64 `json:"scale,omitempty" bson:"scale,omitempty"`
	Rotation         *float64 `json:"rotation,omitempty" bson:"rotation,omitempty"`
	StrokeDashoffset *float64 `json:"strokeDashoffset,omitempty" bson:"stroke_dashoffset,omitempty"`
}

// IsContainer reports whether n is drawn as a container box.
func (n *Node) IsContainer() bool { return n.Container != nil }

// EffectiveShape returns the shape with runtime size overrides applied.
func (n *Node) EffectiveShape() Shape { return n.Shape.Resized(n.Runtime) }

// Port returns the port with the given id.
func (n *Node) Port(id string) (Port, bool) {
	for _, p := range n.Ports {
		if p.ID == id {
			return p, true
		}
	}
	return Port{}, false
}

// =============================================================================
// Edge
// =============================================================================

// AnchorMode selects how an endpoint without a port attaches to its node.
type AnchorMode string

// Anchor modes. The zero value behaves as AnchorBoundary.
const (
	AnchorCenter   AnchorMode = "center"
	AnchorBoundary AnchorMode = "boundary"
)

// Routing selects the path construction algorithm.
type Routing string

// Routing modes. The zero value behaves as RoutingStraight.
const (
	RoutingStraight   Routing = "straight"
	RoutingCurved     Routing = "curved"
	RoutingOrthogonal Routing = "orthogonal"
)

// Side is a side of a node's bounding box, used for self-loops.
type Side string

// Sides. The zero value behaves as SideTop.
const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// MarkerType is the decoration drawn at an edge end.
type MarkerType string

// Marker types.
const (
	MarkerNone      MarkerType = "none"
	MarkerArrow     MarkerType = "arrow"
	MarkerOpenArrow MarkerType = "open-arrow"
	MarkerDiamond   MarkerType = "diamond"
	MarkerCircle    MarkerType = "circle"
)

// DefaultLoopSize is the bulge of a self-loop when Edge.LoopSize is unset.
const DefaultLoopSize = 30.0

// LabelPosition pins an edge label to one of the three label anchors.
type LabelPosition string

// Label positions.
const (
	LabelStart LabelPosition = "start"
	LabelMid   LabelPosition = "mid"
	LabelEnd   LabelPosition = "end"
)

// EdgeLabel is one label along an edge.
type EdgeLabel struct {
	Text     string        `json:"text" bson:"text"`
	Position LabelPosition `json:"position,omitempty" bson:"position,omitempty"`
}

// EdgeStyle is the persistent authored appearance of an edge.
type EdgeStyle struct {
	Stroke          string   `json:"stroke,omitempty" bson:"stroke,omitempty"`
	StrokeWidth     float64  `json:"strokeWidth,omitempty" bson:"stroke_width,omitempty"`
	Fill            string   `json:"fill,omitempty" bson:"fill,omitempty"`
	StrokeDasharray string   `json:"strokeDasharray,omitempty" bson:"stroke_dasharray,omitempty"`
	Opacity         *float64 `json:"opacity,omitempty" bson:"opacity,omitempty"`
	Sketch          *bool    `json:"sketch,omitempty" bson:"sketch,omitempty"`
	SketchSeed      *uint32  `json:"sketchSeed,omitempty" bson:"sketch_seed,omitempty"`
}

// EdgeRuntime holds transient overrides for the current frame only.
type EdgeRuntime struct {
	Opacity          *float64 `json:"opacity,omitempty" bson:"opacity,omitempty"`
	StrokeDashoffset *float64 `json:"strokeDashoffset,omitempty" bson:"stroke_dashoffset,omitempty"`
}

// Edge connects two nodes. From == To denotes a self-loop.
type Edge struct {
	ID          string       `json:"id" bson:"id"`
	From        string       `json:"from" bson:"from"`
	To          string       `json:"to" bson:"to"`
	Anchor      AnchorMode   `json:"anchor,omitempty" bson:"anchor,omitempty"`
	FromPort    string       `json:"fromPort,omitempty" bson:"from_port,omitempty"`
	ToPort      string       `json:"toPort,omitempty" bson:"to_port,omitempty"`
	Routing     Routing      `json:"routing,omitempty" bson:"routing,omitempty"`
	Waypoints   []Point      `json:"waypoints,omitempty" bson:"waypoints,omitempty"`
	LoopSide    Side         `json:"loopSide,omitempty" bson:"loop_side,omitempty"`
	LoopSize    float64      `json:"loopSize,omitempty" bson:"loop_size,omitempty"`
	MarkerStart MarkerType   `json:"markerStart,omitempty" bson:"marker_start,omitempty"`
	MarkerEnd   MarkerType   `json:"markerEnd,omitempty" bson:"marker_end,omitempty"`
	Style       *EdgeStyle   `json:"style,omitempty" bson:"style,omitempty"`
	Runtime     *EdgeRuntime `json:"runtime,omitempty" bson:"runtime,omitempty"`
	Labels      []EdgeLabel  `json:"labels,omitempty" bson:"labels,omitempty"`
	Label       string       `json:"label,omitempty" bson:"label,omitempty"` // legacy single label
}

// IsSelfLoop reports whether the edge starts and ends on the same node.
func (e *Edge) IsSelfLoop() bool { return e.From == e.To }

// EffectiveLoopSize returns LoopSize or DefaultLoopSize when unset.
func (e *Edge) EffectiveLoopSize() float64 {
	if e.LoopSize > 0 {
		return e.LoopSize
	}
	return DefaultLoopSize
}

// EffectiveLoopSide returns LoopSide or SideTop when unset.
func (e *Edge) EffectiveLoopSide() Side {
	if e.LoopSide == "" {
		return SideTop
	}
	return e.LoopSide
}

// StartMarker returns the start marker, defaulting to none.
func (e *Edge) StartMarker() MarkerType {
	if e.MarkerStart == "" {
		return MarkerNone
	}
	return e.MarkerStart
}

// EndMarker returns the end marker, defaulting to an arrow.
func (e *Edge) EndMarker() MarkerType {
	if e.MarkerEnd == "" {
		return MarkerArrow
	}
	return e.MarkerEnd
}

// CollectLabels returns Labels, or the legacy Label as a single entry.
func (e *Edge) CollectLabels() []EdgeLabel {
	if len(e.Labels) > 0 {
		return e.Labels
	}
	if e.Label != "" {
		return []EdgeLabel{{Text: e.Label}}
	}
	return nil
}

// =============================================================================
// Lookup
// =============================================================================

// NodeIndex maps node ids to their position in s.Nodes.
func (s *Scene) NodeIndex() map[string]int {
	idx := make(map[string]int, len(s.Nodes))
	for i, n := range s.Nodes {
		idx[n.ID] = i
	}
	return idx
}

// Node returns the node with the given id.
func (s *Scene) Node(id string) (*Node, bool) {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return &s.Nodes[i], true
		}
	}
	return nil, false
}

// Edge returns the edge with the given id.
func (s *Scene) Edge(id string) (*Edge, bool) {
	for i := range s.Edges {
		if s.Edges[i].ID == id {
			return &s.Edges[i], true
		}
	}
	return nil, false
}
