// Package geom provides the small amount of 2D geometry scenepatch needs:
// points, path-data construction, arc-length walks over polylines and
// pivot transforms.
//
// Points, bezier curves and affine matrices come from github.com/gogpu/gg;
// this package adds the pieces that are specific to emitting vector path
// descriptions.
//
// # Path Data
//
// [PathData] emits the canonical command grammar understood by every vector
// renderer:
//
//	M x y
//	L x y
//	Q cx cy x y
//	C c1x c1y, c2x c2y, x y
//
// Numbers use the shortest representation that round-trips a float64.
//
// # Arc Length
//
// [PointAt] walks cumulative segment length along a polyline and
// interpolates inside the segment that crosses the requested fraction.
// Label anchors for edges are computed this way.
package geom
