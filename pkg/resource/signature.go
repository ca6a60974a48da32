package resource

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/matzehuels/scenepatch/pkg/errors"
	"github.com/matzehuels/scenepatch/pkg/geom"
	"github.com/matzehuels/scenepatch/pkg/scene"
	"github.com/matzehuels/scenepatch/pkg/surface"
)

// Kind names a family of resources.
type Kind string

// Resource kinds.
const (
	KindMarker Kind = "marker"
	KindShadow Kind = "shadow"
	KindSketch Kind = "sketch"
)

// Id prefixes per kind.
const (
	MarkerPrefix = errors.ReservedPrefix + "marker-"
	ShadowPrefix = errors.ReservedPrefix + "shadow-"
	SketchPrefix = errors.ReservedPrefix + "sketch-"
)

// Position is the end of an edge a marker decorates.
type Position string

// Marker positions.
const (
	AtStart Position = "start"
	AtEnd   Position = "end"
)

// Defaults applied before a signature is keyed.
const (
	DefaultMarkerColor = "#555555"
	DefaultShadowDX    = 2.0
	DefaultShadowDY    = 2.0
	DefaultShadowBlur  = 3.0
	DefaultShadowColor = "rgba(0,0,0,0.3)"
)

// Signature is the full parameter set of a resource. Implementations are
// comparable values so they can key a map directly.
type Signature interface {
	Kind() Kind
	baseID() string
	def(id string) surface.Def
}

// =============================================================================
// Marker
// =============================================================================

// Marker is an edge-end decoration. Color is the edge stroke; markers do
// not inherit it from the path, so each color needs its own definition.
// An empty Color means DefaultMarkerColor.
type Marker struct {
	Type     scene.MarkerType
	Position Position
	Color    string
}

// Kind implements [Signature].
func (Marker) Kind() Kind { return KindMarker }

func (m Marker) color() string {
	if m.Color == "" {
		return DefaultMarkerColor
	}
	return m.Color
}

func (m Marker) baseID() string {
	color := "default"
	if m.Color != "" {
		color = token(m.Color)
	}
	return MarkerPrefix + string(m.Type) + "-" + string(m.Position) + "-" + color
}

func (m Marker) def(id string) surface.Def {
	d := surface.Def{
		ID:  id,
		Tag: "marker",
		Attrs: []surface.Attr{
			{Name: "viewBox", Value: "0 0 10 10"},
			{Name: "refX", Value: "9"},
			{Name: "refY", Value: "5"},
			{Name: "markerWidth", Value: "8"},
			{Name: "markerHeight", Value: "8"},
			{Name: "markerUnits", Value: "strokeWidth"},
			{Name: "orient", Value: "auto-start-reverse"},
		},
	}
	fill := []surface.Attr{{Name: "fill", Value: m.color()}}
	switch m.Type {
	case scene.MarkerOpenArrow:
		d.Children = []surface.Def{{Tag: "path", Attrs: []surface.Attr{
			{Name: "d", Value: "M 1 1 L 9 5 L 1 9"},
			{Name: "fill", Value: "none"},
			{Name: "stroke", Value: m.color()},
			{Name: "stroke-width", Value: "1.5"},
		}}}
	case scene.MarkerDiamond:
		d.Children = []surface.Def{{Tag: "path", Attrs: append([]surface.Attr{
			{Name: "d", Value: "M 0 5 L 5 0 L 10 5 L 5 10 z"},
		}, fill...)}}
	case scene.MarkerCircle:
		d.Children = []surface.Def{{Tag: "circle", Attrs: append([]surface.Attr{
			{Name: "cx", Value: "5"}, {Name: "cy", Value: "5"}, {Name: "r", Value: "4"},
		}, fill...)}}
	default:
		d.Children = []surface.Def{{Tag: "path", Attrs: append([]surface.Attr{
			{Name: "d", Value: "M 0 0 L 10 5 L 0 10 z"},
		}, fill...)}}
	}
	return d
}

// =============================================================================
// Shadow
// =============================================================================

// Shadow is a drop-shadow filter.
type Shadow struct {
	DX, DY, Blur float64
	Color        string
}

// ShadowFrom converts an authored shadow, filling unset fields with the
// package defaults.
func ShadowFrom(s *scene.Shadow) Shadow {
	out := Shadow{DX: DefaultShadowDX, DY: DefaultShadowDY, Blur: DefaultShadowBlur, Color: DefaultShadowColor}
	if s == nil {
		return out
	}
	if s.DX != nil {
		out.DX = *s.DX
	}
	if s.DY != nil {
		out.DY = *s.DY
	}
	if s.Blur != nil {
		out.Blur = *s.Blur
	}
	if s.Color != "" {
		out.Color = s.Color
	}
	return out
}

// Kind implements [Signature].
func (Shadow) Kind() Kind { return KindShadow }

func (s Shadow) baseID() string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s,%s,%s,%s", geom.Num(s.DX), geom.Num(s.DY), geom.Num(s.Blur), s.Color)
	return ShadowPrefix + strconv.FormatUint(uint64(h.Sum32()), 16)
}

func (s Shadow) def(id string) surface.Def {
	return surface.Def{
		ID:  id,
		Tag: "filter",
		Attrs: []surface.Attr{
			{Name: "x", Value: "-50%"}, {Name: "y", Value: "-50%"},
			{Name: "width", Value: "200%"}, {Name: "height", Value: "200%"},
		},
		Children: []surface.Def{{Tag: "feDropShadow", Attrs: []surface.Attr{
			{Name: "dx", Value: geom.Num(s.DX)},
			{Name: "dy", Value: geom.Num(s.DY)},
			{Name: "stdDeviation", Value: geom.Num(s.Blur)},
			{Name: "flood-color", Value: s.Color},
		}}},
	}
}

// =============================================================================
// Helpers
// =============================================================================

// token makes s safe for use inside an id. The mapping is injective:
// ASCII letters and digits pass through, every other byte becomes _XX.
func token(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "_%02X", c)
		}
	}
	return b.String()
}

// FilterURL returns the url() reference for a definition id.
func FilterURL(id string) string { return "url(#" + id + ")" }

// IsSketchFilter reports whether a filter attribute value references a
// sketch filter.
func IsSketchFilter(value string) bool { return references(value, SketchPrefix) }

// IsShadowFilter reports whether a filter attribute value references a
// shadow filter.
func IsShadowFilter(value string) bool { return references(value, ShadowPrefix) }

func references(value, prefix string) bool {
	return strings.HasPrefix(strings.TrimSpace(value), "url(#"+prefix)
}
