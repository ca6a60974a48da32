// Package shape resolves where a node actually is on a given frame and
// where edges may attach to it.
//
// A node's effective position is its runtime x/y override (else Pos) plus
// the accumulated displacement of its containers: every container whose
// runtime position differs from its base position drags its descendants
// along by the same delta. [Displacements] precomputes that delta once per
// patch call.
//
// [Boundary] projects a ray from the shape center onto the outline. Circles,
// ellipses and box kinds use closed forms; diamonds, hexagons and triangles
// intersect the ray with their polygon.
package shape
