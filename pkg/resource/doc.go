// Package resource deduplicates shared definitions (edge markers, drop
// shadows and sketch filters) on a surface.
//
// A [Cache] maps a content [Signature] to a deterministic definition id and
// registers the definition with the surface the first time it is needed.
// Identical signatures always return the same id; signatures that differ in
// any field never share one. Definitions are never mutated in place.
//
// Generated ids live in the reserved "sp-" namespace, which authored scene
// ids may not use:
//
//	sp-marker-<type>-<start|end>-<color>
//	sp-shadow-<hash>
//	sp-sketch-<seed>
//
// Sketch filters derive two independent noise fields from a 32-bit seed
// with an xorshift mix, so a seed always reproduces the same distortion.
// [SeedFor] gives every element a stable default seed from its id.
package resource
