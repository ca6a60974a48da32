package anim

import (
	"encoding/json"
	"maps"
	"math"
	"slices"

	"github.com/matzehuels/scenepatch/pkg/errors"
	"github.com/matzehuels/scenepatch/pkg/scene"
)

// Props maps property names to target values. Non-numeric and non-finite
// values are skipped.
type Props map[string]any

// Options controls one [Builder.To] call.
type Options struct {
	// Duration in milliseconds. Negative values are treated as 0.
	Duration float64

	// Easing names the timing curve. Empty means linear; unknown names
	// fail the builder.
	Easing string

	// From, when set, is the start value for every emitted tween.
	// Otherwise playback starts from the property's current value.
	From *float64
}

// Builder accumulates tweens against a moving cursor.
// The zero value is not ready to use; call [New].
type Builder struct {
	cursor float64
	target string
	tweens []scene.Tween
	err    error
}

// New returns a builder with the cursor at 0 and no target selected.
func New() *Builder {
	return &Builder{}
}

// Node selects a node as the target of subsequent To calls.
func (b *Builder) Node(id string) *Builder {
	b.target = scene.NodeTarget(id)
	return b
}

// Edge selects an edge as the target of subsequent To calls.
func (b *Builder) Edge(id string) *Builder {
	b.target = scene.EdgeTarget(id)
	return b
}

// At moves the cursor to t, clamped to 0.
func (b *Builder) At(t float64) *Builder {
	b.cursor = nonNegative(t)
	return b
}

// Wait advances the cursor by d, clamped to 0.
func (b *Builder) Wait(d float64) *Builder {
	b.cursor += nonNegative(d)
	return b
}

// Cursor returns the current cursor position in milliseconds.
func (b *Builder) Cursor() float64 { return b.cursor }

// To emits one tween per numeric property in props, starting at the
// cursor, then advances the cursor by the duration. Properties are emitted
// in name order.
func (b *Builder) To(props Props, opts Options) *Builder {
	if b.err != nil {
		return b
	}
	if b.target == "" {
		b.err = errors.New(errors.ErrCodeInvalidState, "to() called before selecting a node or edge")
		return b
	}
	if !KnownEasing(opts.Easing) {
		b.err = errors.New(errors.ErrCodeInvalidAnimation, "to() on %s: unknown easing %q", b.target, opts.Easing)
		return b
	}

	dur := nonNegative(opts.Duration)
	for _, name := range slices.Sorted(maps.Keys(props)) {
		v, ok := number(props[name])
		if !ok {
			continue
		}
		t := scene.Tween{
			Kind:     scene.TweenKind,
			Target:   b.target,
			Property: name,
			To:       v,
			Duration: dur,
			Delay:    b.cursor,
			Easing:   opts.Easing,
		}
		if opts.From != nil && finite(*opts.From) {
			from := *opts.From
			t.From = &from
		}
		b.tweens = append(b.tweens, t)
	}
	b.cursor += dur
	return b
}

// Err returns the first caller error, if any.
func (b *Builder) Err() error { return b.err }

// Build returns a snapshot of the tweens emitted so far. The snapshot
// shares no memory with the builder, which stays usable.
func (b *Builder) Build() (scene.AnimationSpec, error) {
	if b.err != nil {
		return scene.AnimationSpec{}, b.err
	}
	spec := scene.AnimationSpec{Version: scene.AnimationVersion, Tweens: b.tweens}
	return spec.Clone(), nil
}

// number extracts a finite float from the numeric types a property bag
// may carry, including values decoded from JSON.
func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		var err error
		if f, err = n.Float64(); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	return f, finite(f)
}

func nonNegative(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
