package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/scenepatch/pkg/errors"
)

// =============================================================================
// Scene Serialization API
// =============================================================================

// Marshal converts a scene to indented JSON bytes.
func Marshal(s *Scene) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes a scene as indented JSON to w.
func Write(s *Scene, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a scene as JSON to path.
func WriteFile(s *Scene, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(s, f)
}

// Read decodes and validates a JSON scene from r.
func Read(r io.Reader) (*Scene, error) {
	var s Scene
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode scene")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ReadFile reads, decodes and validates a JSON scene file.
func ReadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Clone returns a deep copy of s, including runtime overrides.
func (s *Scene) Clone() *Scene {
	out := *s
	out.Nodes = make([]Node, len(s.Nodes))
	for i, n := range s.Nodes {
		out.Nodes[i] = n.clone()
	}
	out.Edges = make([]Edge, len(s.Edges))
	for i, e := range s.Edges {
		out.Edges[i] = e.clone()
	}
	out.Overlays = slices.Clone(s.Overlays)
	out.AnimationSpecs = make([]AnimationSpec, len(s.AnimationSpecs))
	for i, a := range s.AnimationSpecs {
		out.AnimationSpecs[i] = a.Clone()
	}
	out.Grid = ptr(s.Grid)
	out.Sketch = ptr(s.Sketch)
	return &out
}

func (n Node) clone() Node {
	n.Container = ptr(n.Container)
	n.Ports = slices.Clone(n.Ports)
	if n.Label != nil {
		l := *n.Label
		l.DY = ptr(l.DY)
		n.Label = &l
	}
	n.Image = ptr(n.Image)
	n.Icon = ptr(n.Icon)
	n.SVGContent = ptr(n.SVGContent)
	if n.Style != nil {
		st := *n.Style
		st.Opacity = ptr(st.Opacity)
		if st.Shadow != nil {
			sh := *st.Shadow
			sh.DX, sh.DY, sh.Blur = ptr(sh.DX), ptr(sh.DY), ptr(sh.Blur)
			st.Shadow = &sh
		}
		st.Sketch = ptr(st.Sketch)
		st.SketchSeed = ptr(st.SketchSeed)
		n.Style = &st
	}
	if n.Runtime != nil {
		rt := n.Runtime.Clone()
		n.Runtime = &rt
	}
	return n
}

func (e Edge) clone() Edge {
	e.Waypoints = slices.Clone(e.Waypoints)
	e.Labels = slices.Clone(e.Labels)
	if e.Style != nil {
		st := *e.Style
		st.Opacity = ptr(st.Opacity)
		st.Sketch = ptr(st.Sketch)
		st.SketchSeed = ptr(st.SketchSeed)
		e.Style = &st
	}
	if e.Runtime != nil {
		e.Runtime = &EdgeRuntime{
			Opacity:          ptr(e.Runtime.Opacity),
			StrokeDashoffset: ptr(e.Runtime.StrokeDashoffset),
		}
	}
	return e
}

// Clone returns a deep copy of rt.
func (rt NodeRuntime) Clone() NodeRuntime {
	return NodeRuntime{
		X:                ptr(rt.X),
		Y:                ptr(rt.Y),
		W:                ptr(rt.W),
		H:                ptr(rt.H),
		R:                ptr(rt.R),
		Opacity:          ptr(rt.Opacity),
		Scale:            ptr(rt.Scale),
		Rotation:         ptr(rt.Rotation),
		StrokeDashoffset: ptr(rt.StrokeDashoffset),
	}
}

// Clone returns a deep copy of a.
func (a AnimationSpec) Clone() AnimationSpec {
	out := AnimationSpec{Version: a.Version, Tweens: make([]Tween, len(a.Tweens))}
	for i, t := range a.Tweens {
		t.From = ptr(t.From)
		out.Tweens[i] = t
	}
	return out
}

// ptr copies the value behind p into a fresh allocation.
func ptr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
