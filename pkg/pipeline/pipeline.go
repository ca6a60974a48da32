// Package pipeline provides the render pipeline shared by the CLI and the
// HTTP API.
//
// A scene flows through three stages:
//
//  1. Load: decode and validate a scene document
//  2. Sample: optionally evaluate animation specs at a point in time
//  3. Render: mount the scene on a retained tree and serialize it
//     (SVG, PNG, JSON)
//
// Rendered artifacts are cached by scene content hash and render options,
// so re-rendering an unchanged scene is a cache read.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	sc, err := runner.Load(ctx, "scene.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Render(ctx, sc, pipeline.Options{Formats: []string{"svg", "png"}})
//	svg := result.Artifacts["svg"]
//
// Animations can be exported frame by frame. The tree is mounted once and
// patched for every frame:
//
//	err := runner.Frames(ctx, sc, spec, 30, func(f pipeline.Frame) error {
//	    return os.WriteFile(fmt.Sprintf("frame-%04d.svg", f.Index), sink.RenderSVG(f.Tree), 0o644)
//	})
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scenepatch/pkg/anim"
	"github.com/matzehuels/scenepatch/pkg/cache"
	"github.com/matzehuels/scenepatch/pkg/errors"
	"github.com/matzehuels/scenepatch/pkg/patch"
	"github.com/matzehuels/scenepatch/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// DefaultFPS is the default frame rate for animation export.
	DefaultFPS = 30.0

	// MaxFPS bounds the frame rate for animation export.
	MaxFPS = 120.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one render.
// This struct supports JSON serialization for API requests.
type Options struct {
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Animate samples the scene's own animation specs at Time.
	Animate bool `json:"animate,omitempty"`

	// Animation is sampled at Time after the scene's own specs.
	Animation *scene.AnimationSpec `json:"animation,omitempty"`

	// Time is the sample time in milliseconds.
	Time float64 `json:"time,omitempty"`

	// Refresh bypasses the artifact cache for reads.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger       *log.Logger         `json:"-"`
	PathResolver patch.PathResolver  `json:"-"`
	Icons        *scene.IconRegistry `json:"-"`
}

// Result contains the outputs of a render.
type Result struct {
	// SceneHash is the content hash of the input scene.
	SceneHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains render statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Patch      patch.Stats // zero on a cache hit
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, ValidFormats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats parses a comma-separated format list. Empty means SVG.
func ParseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{FormatSVG}
	}
	var out []string
	for f := range strings.SplitSeq(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills zero fields with defaults.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks every field.
func (o *Options) Validate() error {
	o.SetDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Time < 0 {
		return fmt.Errorf("invalid time: %v (must be >= 0)", o.Time)
	}
	if o.Animation != nil {
		return anim.ValidateSpec(*o.Animation)
	}
	return nil
}

// Animated reports whether any animation is sampled before rendering.
func (o *Options) Animated() bool {
	return o.Animate || o.Animation != nil
}

// PatchOptions returns the patch engine options for this render.
func (o *Options) PatchOptions() patch.Options {
	icons := o.Icons
	if icons == nil {
		icons = scene.BuiltinIcons()
	}
	return patch.Options{
		PathResolver: o.PathResolver,
		Icons:        icons,
		Logger:       o.Logger,
	}
}

// ArtifactKeyOpts returns cache key options for one format.
// animHash identifies the sampled animations and is empty when none apply.
func (o *Options) ArtifactKeyOpts(format, animHash string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Animation: animHash}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	if animHash != "" {
		k.Time = o.Time
	}
	return k
}
