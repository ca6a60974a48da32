package pipeline

import (
	"fmt"

	"github.com/matzehuels/scenepatch/pkg/anim"
	"github.com/matzehuels/scenepatch/pkg/patch"
	"github.com/matzehuels/scenepatch/pkg/scene"
	"github.com/matzehuels/scenepatch/pkg/sink"
	"github.com/matzehuels/scenepatch/pkg/surface"
)

// Sample returns the scene to render for opts: sc itself when nothing is
// animated, otherwise a copy with every applicable spec sampled at
// opts.Time.
func Sample(sc *scene.Scene, opts Options) *scene.Scene {
	if !opts.Animated() {
		return sc
	}
	out := sc
	if opts.Animate {
		for _, spec := range sc.AnimationSpecs {
			out = anim.Sample(out, spec, opts.Time)
		}
	}
	if opts.Animation != nil {
		out = anim.Sample(out, *opts.Animation, opts.Time)
	}
	return out
}

// Render mounts sc and serializes it in every requested format. It does
// not touch any cache.
func Render(sc *scene.Scene, opts Options) (map[string][]byte, patch.Stats, error) {
	if err := opts.Validate(); err != nil {
		return nil, patch.Stats{}, err
	}
	sampled := Sample(sc, opts)
	tree, eng := patch.Mount(sampled, opts.PatchOptions())
	// Mount already applied sampled; the second pass writes nothing and
	// reports stats.
	stats := eng.Patch(sampled)

	artifacts, err := RenderTree(tree, opts)
	if err != nil {
		return nil, stats, err
	}
	return artifacts, stats, nil
}

// RenderTree serializes an already patched tree.
func RenderTree(tree *surface.Tree, opts Options) (map[string][]byte, error) {
	opts.SetDefaults()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(tree)
		case FormatPNG:
			data, err = sink.RenderPNG(tree, sink.WithScale(opts.Scale))
		case FormatJSON:
			data, err = sink.RenderJSON(tree)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
