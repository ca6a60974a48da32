// Package patch reconciles a scene snapshot against a retained surface.
//
// [Engine.Patch] is one synchronous pass over every node and edge. For each
// it derives geometry (effective position, container displacement, shape
// size, edge routes), resolves the conflicts between authored style and
// transient runtime overrides, attaches or detaches shared resources and
// finally restores draw order. The engine never mutates the scene. It only
// writes to the surface and its own resource cache.
//
// # Override Rules
//
// Runtime values always win and are applied at the group level. When a
// runtime value disappears on a later call its effect is cleared and the
// authored value is applied again, so nothing from a previous frame is
// left behind:
//
//   - opacity: runtime on the group (clearing the element opacity),
//     otherwise style opacity on the shape or path
//   - scale and rotation: one transform pinned at the effective center,
//     removed when neither is set
//   - stroke-dashoffset: set or removed
//
// Filters are stripped by kind. A node without a shadow loses only a
// shadow filter, and a node without sketching loses only a sketch filter;
// any other filter value is left alone.
//
// # Soft Failures
//
// Missing elements, dangling edges, missing label slots and unknown ports
// are skipped and counted in [Stats]. A custom [PathResolver] that errors
// or panics is logged and the default path is kept. Patch never fails.
//
// # Element Ids
//
// [Mount] builds the element tree the engine expects. Ids are derived from
// scene ids by the helpers in package scene, and [scene.Scene.Validate]
// rejects scenes where two owners would derive the same id:
//
//	node-<id>            group, reordered in the nodes layer
//	node-<id>-shape      outline
//	node-<id>-label      text
//	node-<id>-image      embedded image
//	node-<id>-icon       registry icon
//	node-<id>-svg        inline markup
//	node-<id>-header     container header divider
//	node-<id>-port-<p>   port marker
//	edge-<id>            group in the edges layer
//	edge-<id>-path       visible path
//	edge-<id>-hit        wide transparent pointer target
//	edge-<id>-label-<i>  label slots 0..2
//
// # Concurrency
//
// An Engine is bound to one surface and is not safe for concurrent use.
// Callers driving animation frames must serialize their Patch calls.
package patch
