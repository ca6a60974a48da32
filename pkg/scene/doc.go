// Package scene defines the declarative scene model consumed by the patch
// engine: nodes, edges, labels, overlays and animation specs.
//
// A [Scene] is an immutable snapshot for the duration of one patch call.
// The engine reads it and never writes back; transient animation state
// lives in the Runtime fields of nodes and edges and is never merged into
// the authored Pos or Style.
//
// # Shapes
//
// [Shape] is a tagged union. Kind selects which geometry fields are
// meaningful and [Shape.Size] is an exhaustive switch over the kinds:
//
//	rect, diamond, hexagon, triangle, cylinder, custom  W, H
//	circle                                              R
//	ellipse                                             RX, RY
//
// # Serialization
//
// Scenes round-trip through JSON (the authoring surface) and BSON (the
// document store). [Read], [ReadFile], [Marshal] and [WriteFile] mirror the
// helpers used across the repository.
//
// # Validation
//
// [Scene.Validate] rejects hard violations: duplicate or reserved ids,
// parent references to unknown nodes, parent cycles and unknown shape
// kinds. Edges whose endpoints do not exist are not errors; they are
// reported by [Scene.DanglingEdges] and skipped at patch time.
package scene
