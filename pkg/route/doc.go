// Package route turns node positions, shapes and waypoints into drawable
// edge paths and label anchors.
//
// Every routing mode yields a [Result]: the path description plus three
// anchors near the source (15%), at the middle (50%) and near the target
// (85%) of the drawn geometry. Where a closed form exists (the plain
// quadratic curve and self-loops) anchors are exact curve evaluations;
// otherwise they are found by walking cumulative length along the
// polyline that was drawn.
//
// Curved routes through waypoints are the one approximation: the cubic
// segments are smoothed with Catmull-Rom tangents, but anchors are
// measured over the waypoint polyline rather than the rendered curve.
// Consumers rely on that placement, so it is kept.
//
// All functions are total. Coincident endpoints produce a degenerate but
// well-formed path, and any length that ends up in a denominator falls
// back to 1 when it is zero.
package route
