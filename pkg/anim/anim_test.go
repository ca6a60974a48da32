package anim

import (
	"encoding/json"
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/scenepatch/pkg/errors"
	"github.com/matzehuels/scenepatch/pkg/scene"
)

func TestSequentialByDefault(t *testing.T) {
	spec, err := New().
		Node("a").To(Props{"x": 10}, Options{Duration: 100}).
		To(Props{"y": 5}, Options{Duration: 50}).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if spec.Version != scene.AnimationVersion {
		t.Errorf("Version = %q, want %q", spec.Version, scene.AnimationVersion)
	}
	if len(spec.Tweens) != 2 {
		t.Fatalf("len(Tweens) = %d, want 2", len(spec.Tweens))
	}
	for i, want := range []struct {
		prop  string
		to    float64
		delay float64
	}{{"x", 10, 0}, {"y", 5, 100}} {
		tw := spec.Tweens[i]
		if tw.Target != "node:a" || tw.Property != want.prop || tw.To != want.to || tw.Delay != want.delay {
			t.Errorf("Tweens[%d] = %+v, want node:a %s=%v delay %v", i, tw, want.prop, want.to, want.delay)
		}
		if tw.Kind != scene.TweenKind {
			t.Errorf("Tweens[%d].Kind = %q, want %q", i, tw.Kind, scene.TweenKind)
		}
	}
}

func TestCursor(t *testing.T) {
	tests := []struct {
		name string
		run  func(*Builder)
		want float64
	}{
		{"at", func(b *Builder) { b.At(40) }, 40},
		{"at clamps", func(b *Builder) { b.At(-5) }, 0},
		{"at nan", func(b *Builder) { b.At(math.NaN()) }, 0},
		{"wait", func(b *Builder) { b.At(10).Wait(15) }, 25},
		{"wait clamps", func(b *Builder) { b.At(10).Wait(-15) }, 10},
		{"to advances", func(b *Builder) { b.Edge("e").To(Props{"opacity": 0}, Options{Duration: 30}) }, 30},
		{"negative duration", func(b *Builder) { b.Edge("e").To(Props{"opacity": 0}, Options{Duration: -30}) }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			tt.run(b)
			if got := b.Cursor(); got != tt.want {
				t.Errorf("Cursor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParallelWithAt(t *testing.T) {
	spec, err := New().
		Node("a").To(Props{"x": 1}, Options{Duration: 100}).
		At(0).Node("b").To(Props{"x": 2}, Options{Duration: 100}).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if spec.Tweens[0].Delay != 0 || spec.Tweens[1].Delay != 0 {
		t.Errorf("delays = %v, %v, want 0, 0", spec.Tweens[0].Delay, spec.Tweens[1].Delay)
	}
	if spec.Tweens[1].Target != "node:b" {
		t.Errorf("Target = %q, want node:b", spec.Tweens[1].Target)
	}
}

func TestToWithoutTarget(t *testing.T) {
	b := New().To(Props{"x": 1}, Options{Duration: 10})
	if !errors.Is(b.Err(), errors.ErrCodeInvalidState) {
		t.Fatalf("Err() = %v, want INVALID_STATE", b.Err())
	}
	// The error is sticky.
	b.Node("a").To(Props{"x": 1}, Options{Duration: 10})
	if _, err := b.Build(); !errors.Is(err, errors.ErrCodeInvalidState) {
		t.Errorf("Build() error = %v, want INVALID_STATE", err)
	}
	if b.Cursor() != 0 {
		t.Errorf("Cursor() = %v, want 0", b.Cursor())
	}
}

func TestUnknownEasing(t *testing.T) {
	b := New().Node("a").To(Props{"x": 1}, Options{Duration: 10, Easing: "bounce"})
	if !errors.Is(b.Err(), errors.ErrCodeInvalidAnimation) {
		t.Fatalf("Err() = %v, want INVALID_ANIMATION", b.Err())
	}
	if b.Cursor() != 0 {
		t.Errorf("Cursor() = %v, want 0", b.Cursor())
	}

	// Everything the builder accepts must survive validation.
	for _, name := range []string{"", EaseLinear, EaseIn, EaseOut, EaseInOut} {
		spec, err := New().Node("a").To(Props{"x": 1}, Options{Duration: 10, Easing: name}).Build()
		if err != nil {
			t.Fatalf("Build(%q) error = %v", name, err)
		}
		if err := ValidateSpec(spec); err != nil {
			t.Errorf("ValidateSpec(%q) = %v, want nil", name, err)
		}
	}
}

func TestPropertyFiltering(t *testing.T) {
	spec, err := New().Node("a").To(Props{
		"y":       int64(3),
		"x":       1,
		"label":   "text",
		"nan":     math.NaN(),
		"inf":     math.Inf(1),
		"opacity": json.Number("0.5"),
		"scale":   float32(2),
		"nil":     nil,
	}, Options{Duration: 10, Easing: EaseOut}).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	var props []string
	for _, tw := range spec.Tweens {
		props = append(props, tw.Property)
		if tw.Easing != EaseOut {
			t.Errorf("%s easing = %q, want %q", tw.Property, tw.Easing, EaseOut)
		}
	}
	want := []string{"opacity", "scale", "x", "y"}
	if !slices.Equal(props, want) {
		t.Errorf("properties = %v, want %v", props, want)
	}
}

func TestBuildIsSnapshot(t *testing.T) {
	b := New().Node("a").To(Props{"x": 1}, Options{Duration: 10, From: scene.Float(0)})
	first, _ := b.Build()
	*first.Tweens[0].From = 99
	first.Tweens[0].To = 99

	b.To(Props{"y": 1}, Options{Duration: 10})
	second, _ := b.Build()
	if len(first.Tweens) != 1 {
		t.Errorf("first snapshot grew to %d tweens", len(first.Tweens))
	}
	if *second.Tweens[0].From != 0 || second.Tweens[0].To != 1 {
		t.Errorf("builder state changed through a snapshot: %+v", second.Tweens[0])
	}
}

func TestEmptyBuild(t *testing.T) {
	spec, err := New().Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	data, _ := json.Marshal(spec)
	if string(data) != `{"version":"viz-anim/1","tweens":[]}` {
		t.Errorf("json = %s", data)
	}
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", `{"version":"viz-anim/1","tweens":[{"kind":"tween","target":"node:a","property":"x","to":1,"duration":10,"delay":0}]}`, false},
		{"empty", `{"version":"viz-anim/1","tweens":[]}`, false},
		{"bad version", `{"version":"viz-anim/2","tweens":[]}`, true},
		{"bad target", `{"version":"viz-anim/1","tweens":[{"kind":"tween","target":"a","property":"x","to":1,"duration":10,"delay":0}]}`, true},
		{"negative delay", `{"version":"viz-anim/1","tweens":[{"kind":"tween","target":"edge:e","property":"opacity","to":1,"duration":10,"delay":-1}]}`, true},
		{"bad easing", `{"version":"viz-anim/1","tweens":[{"kind":"tween","target":"edge:e","property":"opacity","to":1,"duration":10,"delay":0,"easing":"bounce"}]}`, true},
		{"unknown field", `{"version":"viz-anim/1","tweens":[],"callback":"x"}`, true},
		{"malformed", `{`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSpec([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSpec() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidAnimation) {
				t.Errorf("error code = %v, want INVALID_ANIMATION", errors.GetCode(err))
			}
		})
	}
}

func TestCompile(t *testing.T) {
	script, err := ParseScript([]byte(`{"steps":[
		{"node":"a","to":{"x":10},"duration":100},
		{"to":{"y":5},"duration":50},
		{"edge":"e","at":20,"to":{"opacity":0.2,"color":"red"},"duration":10,"easing":"ease-in"},
		{"wait":5}
	]}`))
	if err != nil {
		t.Fatalf("ParseScript() error = %v", err)
	}
	spec, err := Compile(script)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	want := []scene.Tween{
		{Kind: "tween", Target: "node:a", Property: "x", To: 10, Duration: 100, Delay: 0},
		{Kind: "tween", Target: "node:a", Property: "y", To: 5, Duration: 50, Delay: 100},
		{Kind: "tween", Target: "edge:e", Property: "opacity", To: 0.2, Duration: 10, Delay: 20, Easing: "ease-in"},
	}
	if !slices.Equal(spec.Tweens, want) {
		t.Errorf("Tweens = %+v, want %+v", spec.Tweens, want)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no target", `{"steps":[{"to":{"x":1},"duration":1}]}`},
		{"both targets", `{"steps":[{"node":"a","edge":"b"}]}`},
		{"unknown easing", `{"steps":[{"node":"a","to":{"x":1},"duration":1,"easing":"bounce"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := ParseScript([]byte(tt.input))
			if err != nil {
				t.Fatalf("ParseScript() error = %v", err)
			}
			if _, err := Compile(script); err == nil {
				t.Error("Compile() error = nil, want error")
			}
		})
	}
}

func sampleScene() *scene.Scene {
	return &scene.Scene{
		ViewBox: scene.ViewBox{W: 100, H: 100},
		Nodes: []scene.Node{
			{ID: "a", Pos: scene.Point{X: 0, Y: 0}, Shape: scene.Rect(10, 10),
				Style: &scene.NodeStyle{Opacity: scene.Float(0.5)}},
			{ID: "b", Pos: scene.Point{X: 50, Y: 50}, Shape: scene.Circle(5)},
		},
		Edges: []scene.Edge{{ID: "e", From: "a", To: "b"}},
	}
}

func TestSample(t *testing.T) {
	spec, err := New().
		Node("a").To(Props{"x": 10}, Options{Duration: 100}).
		To(Props{"x": 20}, Options{Duration: 100}).
		At(0).To(Props{"opacity": 1}, Options{Duration: 100}).
		Node("b").At(0).To(Props{"r": 15}, Options{Duration: 0}).
		At(50).Edge("e").To(Props{"strokeDashoffset": 10}, Options{Duration: 100, From: scene.Float(-10)}).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	sc := sampleScene()

	tests := []struct {
		at      float64
		x       float64
		opacity float64
		dash    *float64
	}{
		{0, 0, 0.5, nil},
		{50, 5, 0.75, scene.Float(-10)},
		{150, 15, 1, scene.Float(10)},
		{500, 20, 1, scene.Float(10)},
	}
	for _, tt := range tests {
		got := Sample(sc, spec, tt.at)
		a := got.Nodes[0]
		if a.Runtime == nil || a.Runtime.X == nil || *a.Runtime.X != tt.x {
			t.Errorf("t=%v: x = %v, want %v", tt.at, a.Runtime.X, tt.x)
		}
		if *a.Runtime.Opacity != tt.opacity {
			t.Errorf("t=%v: opacity = %v, want %v", tt.at, *a.Runtime.Opacity, tt.opacity)
		}
		if r := got.Nodes[1].Runtime.R; r == nil || *r != 15 {
			t.Errorf("t=%v: r = %v, want 15", tt.at, r)
		}
		dash := got.Edges[0].Runtime.StrokeDashoffset
		switch {
		case tt.dash == nil && dash != nil:
			t.Errorf("t=%v: dashoffset = %v, want unset", tt.at, *dash)
		case tt.dash != nil && (dash == nil || *dash != *tt.dash):
			t.Errorf("t=%v: dashoffset = %v, want %v", tt.at, dash, *tt.dash)
		}
	}

	if sc.Nodes[0].Runtime != nil {
		t.Error("Sample modified its input scene")
	}
}

func TestSampleIgnoresUnknown(t *testing.T) {
	spec := scene.AnimationSpec{Version: scene.AnimationVersion, Tweens: []scene.Tween{
		{Kind: "tween", Target: "node:ghost", Property: "x", To: 1},
		{Kind: "tween", Target: "edge:e", Property: "x", To: 1},
		{Kind: "tween", Target: "bogus", Property: "x", To: 1},
	}}
	got := Sample(sampleScene(), spec, 10)
	if rt := got.Edges[0].Runtime; rt != nil && (rt.Opacity != nil || rt.StrokeDashoffset != nil) {
		t.Errorf("edge runtime = %+v, want empty", rt)
	}
	if got.Nodes[0].Runtime != nil {
		t.Errorf("node runtime = %+v, want nil", got.Nodes[0].Runtime)
	}
}

func TestEase(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		want float64
	}{
		{"", 0.5, 0.5},
		{EaseLinear, 2, 1},
		{EaseIn, 0.5, 0.25},
		{EaseOut, 0.5, 0.75},
		{EaseInOut, 0.25, 0.125},
		{EaseInOut, 0.75, 0.875},
		{"unknown", 0.3, 0.3},
		{EaseIn, -1, 0},
	}
	for _, tt := range tests {
		if got := Ease(tt.name, tt.p); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Ease(%q, %v) = %v, want %v", tt.name, tt.p, got, tt.want)
		}
	}
}

func TestFrames(t *testing.T) {
	spec, _ := New().Node("a").To(Props{"x": 1}, Options{Duration: 150}).Build()
	if got, want := Frames(spec, 10), []float64{0, 100, 150}; !slices.Equal(got, want) {
		t.Errorf("Frames(10) = %v, want %v", got, want)
	}
	if got, want := Frames(spec, 20), []float64{0, 50, 100, 150}; !slices.Equal(got, want) {
		t.Errorf("Frames(20) = %v, want %v", got, want)
	}
	if got := Frames(scene.AnimationSpec{}, 30); !slices.Equal(got, []float64{0}) {
		t.Errorf("Frames(empty) = %v, want [0]", got)
	}
}
