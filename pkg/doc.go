// Package pkg provides the core libraries for scenepatch scene rendering.
//
// # Overview
//
// Scenepatch draws declarative scenes (nodes, edges, labels, overlays) onto
// a retained drawing surface and keeps that surface in sync as the scene
// changes. Instead of rebuilding markup, every frame is a patch: elements
// are looked up by stable id and only their attributes are rewritten.
// The pkg directory is organized into four main areas:
//
//  1. Model - [scene] and [geom]
//  2. Geometry - [shape] and [route]
//  3. Reconciliation - [patch], [resource] and [surface]
//  4. Orchestration - [anim], [pipeline], [sink], [cache], [store] and [config]
//
// # Architecture
//
// The typical data flow through scenepatch:
//
//	Scene JSON (+ animation specs)
//	         ↓
//	    [anim] package (sample tweens into runtime overrides)
//	         ↓
//	    [shape] + [route] packages (positions, boundaries, edge paths)
//	         ↓
//	    [patch] package (reconcile against the retained surface)
//	         ↓
//	    [sink] package (SVG/PNG/JSON output)
//
// # Quick Start
//
// Mount a scene and render it:
//
//	import (
//	    "github.com/matzehuels/scenepatch/pkg/patch"
//	    "github.com/matzehuels/scenepatch/pkg/scene"
//	    "github.com/matzehuels/scenepatch/pkg/sink"
//	)
//
//	// 1. Load the scene
//	sc, _ := scene.ReadFile("scene.json")
//
//	// 2. Mount it on a fresh tree
//	tree, engine := patch.Mount(sc, patch.Options{})
//
//	// 3. Write SVG
//	svg := sink.RenderSVG(tree)
//
// # Main Packages
//
// ## Model
//
// [scene] - The declarative scene: nodes with tagged-union shapes, edges
// with routing modes and markers, labels, overlays and versioned animation
// specs. Scenes are validated on read and never mutated by the engine.
//
// [geom] - Path-data construction, polyline arc-length walks and pivot
// transforms on top of the gogpu/gg vector types.
//
// ## Geometry
//
// [shape] - Effective node positions (runtime overrides plus container
// displacement), shape boundaries and port anchors.
//
// [route] - Edge paths for straight, curved and orthogonal routing, self
// loops and the three label anchors of every route.
//
// ## Reconciliation
//
// [patch] - The patch engine. One synchronous pass per call resolves
// authored style against runtime overrides and restores draw order.
//
// [resource] - Deduplicated shared definitions (markers, shadows, sketch
// filters, grid patterns) with deterministic ids.
//
// [surface] - The retained surface interface and its in-memory [surface.Tree].
//
// ## Orchestration
//
// [anim] - Animation builder, script compiler and sampler.
//
// [pipeline] - Load, sample, patch and render with artifact caching. Used by
// both the CLI and the HTTP server.
//
// [sink] - Output formats (SVG, PNG, JSON).
//
// [cache] - Artifact caches: file, Redis and null backends.
//
// [store] - Scene persistence for the HTTP API: memory, MongoDB and
// PostgreSQL backends.
//
// [config] - TOML settings file with XDG default paths.
//
// [observability] - Hooks for metrics and tracing.
//
// # Common Workflows
//
// Compile an animation and export frames:
//
//	spec, _ := anim.New().
//	    Node("a").To(anim.Props{"x": 200}, anim.Options{Duration: 300}).
//	    Build()
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	err := runner.Frames(ctx, sc, spec, 30, func(f pipeline.Frame) error {
//	    return os.WriteFile(fmt.Sprintf("frame-%04d.svg", f.Index), sink.RenderSVG(f.Tree), 0o644)
//	})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/patch/...    # Specific package
//	go test -run Example       # Examples only
//
// [scene]: https://pkg.go.dev/github.com/matzehuels/scenepatch/pkg/scene
// [geom]: https://pkg.go.dev/github.com/matzehuels/scenepatch/pkg/geom
// [shape]: https://pkg.go.dev/github.com/matzehuels/scenepatch/pkg/shape
// [route]: https://pkg.go.dev/github.com/matzehuels/scenepatch/pkg/route
// [patch]: https://pkg.go.dev/github.com/matzehuels/scenepatch/pkg/patch
// [resource]: https://pkg.go.dev/github.com/matzehuels/scenepatch/pkg/resource
// [surface]: https://pkg.go.dev/github.com/matzehuels/scenepatch/pkg/surface
// [surface.Tree]: https://pkg.go.dev/github.com/matzehuels/scenepatch/pkg/surface#Tree
// [anim]: https://pkg.go.dev/github.com/matzehuels/scenepatch/pkg/anim
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/scenepatch/pkg/pipeline
// [sink]: https://pkg.go.dev/github.com/matzehuels/scenepatch/pkg/sink
// [cache]: https://pkg.go.dev/github.com/matzehuels/scenepatch/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/scenepatch/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/scenepatch/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/scenepatch/pkg/observability
package pkg
