package resource

import (
	"fmt"
	"hash/fnv"
	"strconv"

	"github.com/matzehuels/scenepatch/pkg/errors"
	"github.com/matzehuels/scenepatch/pkg/geom"
	"github.com/matzehuels/scenepatch/pkg/surface"
)

// KindGrid is the background grid pattern.
const KindGrid Kind = "grid"

// GridPrefix prefixes grid pattern ids.
const GridPrefix = errors.ReservedPrefix + "grid-"

// DefaultGridStroke is used when a grid has no stroke color.
const DefaultGridStroke = "#eeeeee"

// Grid is a square tiling pattern drawn behind the scene.
type Grid struct {
	Size   float64
	Stroke string
}

// Kind implements [Signature].
func (Grid) Kind() Kind { return KindGrid }

func (g Grid) stroke() string {
	if g.Stroke == "" {
		return DefaultGridStroke
	}
	return g.Stroke
}

func (g Grid) baseID() string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s,%s", geom.Num(g.Size), g.stroke())
	return GridPrefix + strconv.FormatUint(uint64(h.Sum32()), 16)
}

func (g Grid) def(id string) surface.Def {
	s := geom.Num(g.Size)
	var d geom.PathData
	d.MoveTo(geom.V(g.Size, 0)).LineTo(geom.V(0, 0)).LineTo(geom.V(0, g.Size))
	return surface.Def{
		ID:  id,
		Tag: "pattern",
		Attrs: []surface.Attr{
			{Name: "width", Value: s},
			{Name: "height", Value: s},
			{Name: "patternUnits", Value: "userSpaceOnUse"},
		},
		Children: []surface.Def{{Tag: "path", Attrs: []surface.Attr{
			{Name: "d", Value: d.String()},
			{Name: "fill", Value: "none"},
			{Name: "stroke", Value: g.stroke()},
			{Name: "stroke-width", Value: "1"},
		}}},
	}
}
