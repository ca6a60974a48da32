// Package surface defines the retained drawing surface the patch engine
// writes into, and provides an in-memory implementation.
//
// The engine never builds markup. It looks elements up by stable id and
// applies keyed attribute and style writes, reorders children of a layer,
// and registers shared definitions (markers, filters). Any retained
// graphics backend can sit behind [Surface]: a browser DOM bridge, a
// virtual scene graph, or the [Tree] in this package.
//
// # Tree
//
// [Tree] keeps elements in insertion order, serializes to SVG with
// [Tree.WriteSVG] and to a JSON snapshot with [Tree.Snapshot]. It counts
// effective writes (writes that changed a value) and moves, so callers can
// check that a repeated patch with unchanged input leaves the tree alone:
//
//	t := surface.NewTree(800, 600)
//	... mount and patch ...
//	t.ResetCounters()
//	engine.Patch(sc)
//	if t.Writes() != 0 { ... }
//
// A Tree is not safe for concurrent use.
package surface
