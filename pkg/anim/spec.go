package anim

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/matzehuels/scenepatch/pkg/errors"
	"github.com/matzehuels/scenepatch/pkg/scene"
)

// ParseSpec decodes and validates a serialized animation spec.
func ParseSpec(data []byte) (scene.AnimationSpec, error) {
	return ReadSpec(bytes.NewReader(data))
}

// ReadSpec decodes and validates an animation spec from r.
func ReadSpec(r io.Reader) (scene.AnimationSpec, error) {
	var spec scene.AnimationSpec
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		return scene.AnimationSpec{}, errors.Wrap(errors.ErrCodeInvalidAnimation, err, "decode animation spec")
	}
	if err := ValidateSpec(spec); err != nil {
		return scene.AnimationSpec{}, err
	}
	return spec, nil
}

// ValidateSpec checks the version and every tween of spec.
func ValidateSpec(spec scene.AnimationSpec) error {
	if spec.Version != scene.AnimationVersion {
		return errors.New(errors.ErrCodeInvalidAnimation,
			"unsupported animation version %q (want %q)", spec.Version, scene.AnimationVersion)
	}
	var errs []error
	for i, t := range spec.Tweens {
		if t.Kind != scene.TweenKind {
			errs = append(errs, errors.New(errors.ErrCodeInvalidAnimation, "tween %d: unknown kind %q", i, t.Kind))
		}
		if _, _, ok := scene.ParseTarget(t.Target); !ok {
			errs = append(errs, errors.New(errors.ErrCodeInvalidAnimation, "tween %d: invalid target %q", i, t.Target))
		}
		if t.Property == "" {
			errs = append(errs, errors.New(errors.ErrCodeInvalidAnimation, "tween %d: missing property", i))
		}
		if !finite(t.To) || (t.From != nil && !finite(*t.From)) {
			errs = append(errs, errors.New(errors.ErrCodeInvalidAnimation, "tween %d: non-finite value", i))
		}
		if !(t.Duration >= 0) || !(t.Delay >= 0) {
			errs = append(errs, errors.New(errors.ErrCodeInvalidAnimation, "tween %d: negative timing", i))
		}
		if !KnownEasing(t.Easing) {
			errs = append(errs, errors.New(errors.ErrCodeInvalidAnimation, "tween %d: unknown easing %q", i, t.Easing))
		}
	}
	return errors.Join(errors.ErrCodeInvalidAnimation, errs)
}
