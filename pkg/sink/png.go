package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/matzehuels/scenepatch/pkg/surface"
)

// DefaultScale is the default PNG scale factor (2x resolution).
const DefaultScale = 2.0

// MaxPixels bounds the rasterized image area.
const MaxPixels = 64 << 20

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background color.Color
}

// WithScale sets the PNG scale factor. Non-positive values mean DefaultScale.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithBackground fills the canvas before drawing. Nil keeps it transparent.
func WithBackground(c color.Color) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// RenderPNG rasterizes the tree. Effects that live in definitions
// (shadows, sketch filters, markers, grid patterns) and text are not
// drawn.
func RenderPNG(t *surface.Tree, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultScale, background: color.White}
	for _, opt := range opts {
		opt(&r)
	}

	tw, th := t.Size()
	w := int(math.Ceil(tw * r.scale))
	h := int(math.Ceil(th * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("png: empty canvas %dx%d", w, h)
	}
	if w*h > MaxPixels {
		return nil, fmt.Errorf("png: canvas %dx%d exceeds %d pixels", w, h, MaxPixels)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(t.MarshalSVG(surface.WithPlainSVG())), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("png: parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if r.background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)
	}
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png: encode: %w", err)
	}
	return buf.Bytes(), nil
}
