package sink

import "github.com/matzehuels/scenepatch/pkg/surface"

// RenderSVG returns the tree as a standalone SVG document.
func RenderSVG(t *surface.Tree) []byte {
	return t.MarshalSVG()
}
