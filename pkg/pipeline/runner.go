package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenepatch/pkg/anim"
	"github.com/matzehuels/scenepatch/pkg/cache"
	"github.com/matzehuels/scenepatch/pkg/observability"
	"github.com/matzehuels/scenepatch/pkg/patch"
	"github.com/matzehuels/scenepatch/pkg/scene"
	"github.com/matzehuels/scenepatch/pkg/surface"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of cached artifacts. Zero means cache.TTLArtifact.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Load reads and validates a scene file.
func (r *Runner) Load(ctx context.Context, path string) (*scene.Scene, error) {
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, path)

	sc, err := scene.ReadFile(path)
	nodes := 0
	if sc != nil {
		nodes = len(sc.Nodes)
	}
	observability.Pipeline().OnLoadComplete(ctx, path, nodes, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("loaded scene",
		"path", path,
		"nodes", len(sc.Nodes),
		"edges", len(sc.Edges),
		"duration", time.Since(start))
	return sc, nil
}

// Render renders sc with caching.
func (r *Runner) Render(ctx context.Context, sc *scene.Scene, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	result, err := r.render(ctx, sc, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(start)

	r.Logger.Info("rendered scene",
		"formats", opts.Formats,
		"cached", result.CacheInfo.RenderHit,
		"duration", result.Stats.RenderTime)
	return result, nil
}

func (r *Runner) render(ctx context.Context, sc *scene.Scene, opts Options) (*Result, error) {
	data, err := scene.Marshal(sc)
	if err != nil {
		return nil, fmt.Errorf("serialize scene for cache key: %w", err)
	}
	result := &Result{
		SceneHash: cache.Hash(data),
		Stats:     Stats{NodeCount: len(sc.Nodes), EdgeCount: len(sc.Edges)},
	}
	animHash, err := animationHash(sc, opts)
	if err != nil {
		return nil, err
	}

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(result.SceneHash, opts.ArtifactKeyOpts(format, animHash))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			return result, nil
		}
	}

	artifacts, stats, err := Render(sc, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.Patch = stats

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(result.SceneHash, opts.ArtifactKeyOpts(format, animHash))
		if err := r.Cache.Set(ctx, key, data, r.artifactTTL()); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return result, nil
}

// animationHash identifies every spec sampled for opts, or "" when the
// render is static.
func animationHash(sc *scene.Scene, opts Options) (string, error) {
	if !opts.Animated() {
		return "", nil
	}
	var specs []scene.AnimationSpec
	if opts.Animate {
		specs = append(specs, sc.AnimationSpecs...)
	}
	if opts.Animation != nil {
		specs = append(specs, *opts.Animation)
	}
	data, err := json.Marshal(specs)
	if err != nil {
		return "", fmt.Errorf("serialize animation for cache key: %w", err)
	}
	return cache.Hash(data), nil
}

// Frame is one sampled animation frame.
type Frame struct {
	Index int
	Time  float64 // milliseconds
	Tree  *surface.Tree
	Stats patch.Stats
}

// Frames samples spec at fps frames per second and patches one retained
// tree per frame. fn sees the same tree every call; it must serialize what
// it needs before returning. Frames stops at the first error from fn or
// when ctx is done.
func (r *Runner) Frames(ctx context.Context, sc *scene.Scene, spec scene.AnimationSpec, fps float64, fn func(Frame) error) error {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if fps > MaxFPS {
		return fmt.Errorf("invalid fps: %v (must be <= %v)", fps, MaxFPS)
	}
	if err := anim.ValidateSpec(spec); err != nil {
		return err
	}
	opts := Options{Logger: r.Logger}
	opts.SetDefaults()

	times := anim.Frames(spec, fps)
	tree, eng := patch.Mount(anim.Sample(sc, spec, 0), opts.PatchOptions())
	start := time.Now()
	for i, t := range times {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame := Frame{Index: i, Time: t, Tree: tree}
		frame.Stats = eng.Patch(anim.Sample(sc, spec, t))
		if err := fn(frame); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}

	r.Logger.Info("exported frames",
		"frames", len(times),
		"fps", fps,
		"duration", time.Since(start))
	return nil
}

// Compile compiles an animation script with caching. The bool reports a
// cache hit.
func (r *Runner) Compile(ctx context.Context, script []byte) (scene.AnimationSpec, bool, error) {
	key := r.Keyer.AnimationKey(cache.Hash(script))
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		if spec, err := anim.ParseSpec(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "animation")
			return spec, true, nil
		}
		// If deserialization fails, fall through to recompile
	}
	observability.Cache().OnCacheMiss(ctx, "animation")

	s, err := anim.ParseScript(script)
	if err != nil {
		return scene.AnimationSpec{}, false, err
	}
	spec, err := anim.Compile(s)
	if err != nil {
		return scene.AnimationSpec{}, false, err
	}
	if data, err := json.Marshal(spec); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLAnimation); err == nil {
			observability.Cache().OnCacheSet(ctx, "animation", len(data))
		}
	}
	r.Logger.Debug("compiled animation", "steps", len(s.Steps), "tweens", len(spec.Tweens))
	return spec, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) artifactTTL() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLArtifact
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
