// Package sink serializes a patched [surface.Tree] into output formats.
//
//   - SVG: the full document, including definitions and embedded media.
//   - PNG: rasterized in-process with oksvg/rasterx from the plain SVG
//     (no filters, markers, patterns, text or embedded markup).
//   - JSON: the [surface.Snapshot] of the tree, for tests and tooling.
//
// Basic usage:
//
//	tree, _ := patch.Mount(sc, patch.Options{})
//	svg := sink.RenderSVG(tree)
//	png, err := sink.RenderPNG(tree, sink.WithScale(2))
package sink
