package geom

import (
	"math"
	"testing"
)

func TestPathData(t *testing.T) {
	var p PathData
	p.MoveTo(V(0, 0)).LineTo(V(10, -2.5)).QuadTo(V(5, 5), V(1, 1)).CubicTo(V(1, 2), V(3, 4), V(5, 6))

	want := "M 0 0 L 10 -2.5 Q 5 5 1 1 C 1 2, 3 4, 5 6"
	if got := p.String(); got != want {
		t.Errorf("PathData = %q, want %q", got, want)
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1.5, "1.5"},
		{-20, "-20"},
		{0.1 + 0.2, "0.30000000000000004"},
	}
	for _, tt := range tests {
		if got := Num(tt.in); got != tt.want {
			t.Errorf("Num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPolyline(t *testing.T) {
	got := Polyline([]Vec2{V(0, 0), V(5, 0), V(5, 5)})
	if want := "M 0 0 L 5 0 L 5 5"; got != want {
		t.Errorf("Polyline = %q, want %q", got, want)
	}
	if got := Polyline(nil); got != "" {
		t.Errorf("Polyline(nil) = %q, want empty", got)
	}
}

func TestPointAt(t *testing.T) {
	line := []Vec2{V(0, 0), V(10, 0)}
	elbow := []Vec2{V(0, 0), V(10, 0), V(10, 10)}

	tests := []struct {
		name string
		pts  []Vec2
		frac float64
		want Vec2
	}{
		{"start", line, 0, V(0, 0)},
		{"near source", line, 0.15, V(1.5, 0)},
		{"mid", line, 0.5, V(5, 0)},
		{"near target", line, 0.85, V(8.5, 0)},
		{"end", line, 1, V(10, 0)},
		{"clamped high", line, 2, V(10, 0)},
		{"clamped low", line, -1, V(0, 0)},
		{"elbow mid is corner", elbow, 0.5, V(10, 0)},
		{"elbow second leg", elbow, 0.75, V(10, 5)},
		{"zero length", []Vec2{V(3, 3), V(3, 3)}, 0.5, V(3, 3)},
		{"single point", []Vec2{V(1, 2)}, 0.5, V(1, 2)},
		{"empty", nil, 0.5, V(0, 0)},
		{"skips zero segments", []Vec2{V(0, 0), V(0, 0), V(4, 0)}, 0.5, V(2, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointAt(tt.pts, tt.frac); !Approx(got, tt.want, 1e-9) {
				t.Errorf("PointAt = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSafeLength(t *testing.T) {
	if got := SafeLength(V(0, 0)); got != 1 {
		t.Errorf("SafeLength(zero) = %v, want 1", got)
	}
	if got := SafeLength(V(3, 4)); got != 5 {
		t.Errorf("SafeLength(3,4) = %v, want 5", got)
	}
}

func TestPerp(t *testing.T) {
	if got := Perp(V(1, 0)); !Approx(got, V(0, 1), 0) {
		t.Errorf("Perp(1,0) = %v, want (0,1)", got)
	}
}

func TestPivot(t *testing.T) {
	p := Pivot{Center: V(50, 20), Rotation: 90, Scale: 2}

	want := "translate(50 20) rotate(90) scale(2) translate(-50 -20)"
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	// The pivot itself is a fixed point of the transform.
	if got := p.Matrix().TransformPoint(p.Center); !Approx(got, p.Center, 1e-9) {
		t.Errorf("Matrix fixes %v, want %v", got, p.Center)
	}

	// A point one unit right of the center lands two units below it.
	if got := p.Matrix().TransformPoint(V(51, 20)); !Approx(got, V(50, 22), 1e-9) {
		t.Errorf("rotated point = %v, want (50,22)", got)
	}
}

func TestPivotZeroScale(t *testing.T) {
	p := Pivot{Center: V(1, 1), Rotation: 45}
	want := "translate(1 1) rotate(45) scale(0) translate(-1 -1)"
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	// Everything collapses onto the center.
	if got := p.Matrix().TransformPoint(V(7, -3)); !Approx(got, p.Center, 1e-9) {
		t.Errorf("Matrix maps (7,-3) to %v, want %v", got, p.Center)
	}
}
