package resource

import (
	"hash/fnv"
	"strconv"

	"github.com/matzehuels/scenepatch/pkg/surface"
)

const (
	// golden decorrelates the second noise field from the first.
	golden uint32 = 0x9e3779b9
	// zeroState replaces a zero xorshift state, which would stay zero.
	zeroState uint32 = 0x6d2b79f5
)

// Sketch is a hand-drawn distortion filter.
type Sketch struct {
	Seed uint32
}

// SeedFor returns the default sketch seed for an element id (FNV-1a).
func SeedFor(id string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(id))
	return h.Sum32()
}

// xorshift32 is Marsaglia's 13/17/5 generator step.
func xorshift32(x uint32) uint32 {
	if x == 0 {
		x = zeroState
	}
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x
}

// noise is one turbulence field of a sketch filter.
type noise struct {
	seed      uint32
	frequency float64
	scale     float64
}

func noiseFrom(r uint32) noise {
	return noise{
		seed:      r % 10000,
		frequency: 0.01 + float64(r%1000)/1000*0.03,
		scale:     1.5 + float64((r>>10)%100)/100*1.5,
	}
}

// fields returns the two noise fields derived from the seed.
func (s Sketch) fields() (noise, noise) {
	return noiseFrom(xorshift32(s.Seed)), noiseFrom(xorshift32(s.Seed ^ golden))
}

// Kind implements [Signature].
func (Sketch) Kind() Kind { return KindSketch }

func (s Sketch) baseID() string {
	return SketchPrefix + strconv.FormatUint(uint64(s.Seed), 10)
}

func (s Sketch) def(id string) surface.Def {
	a, b := s.fields()
	return surface.Def{
		ID:  id,
		Tag: "filter",
		Attrs: []surface.Attr{
			{Name: "x", Value: "-10%"}, {Name: "y", Value: "-10%"},
			{Name: "width", Value: "120%"}, {Name: "height", Value: "120%"},
		},
		Children: []surface.Def{
			turbulence(a, "sp-noise-a"),
			displacement("SourceGraphic", "sp-noise-a", a.scale, "R", "G", "sp-rough"),
			turbulence(b, "sp-noise-b"),
			displacement("sp-rough", "sp-noise-b", b.scale, "G", "B", ""),
		},
	}
}

func turbulence(n noise, result string) surface.Def {
	return surface.Def{Tag: "feTurbulence", Attrs: []surface.Attr{
		{Name: "type", Value: "fractalNoise"},
		{Name: "baseFrequency", Value: strconv.FormatFloat(n.frequency, 'f', 4, 64)},
		{Name: "numOctaves", Value: "2"},
		{Name: "seed", Value: strconv.FormatUint(uint64(n.seed), 10)},
		{Name: "result", Value: result},
	}}
}

func displacement(in, in2 string, scale float64, x, y, result string) surface.Def {
	attrs := []surface.Attr{
		{Name: "in", Value: in},
		{Name: "in2", Value: in2},
		{Name: "scale", Value: strconv.FormatFloat(scale, 'f', 2, 64)},
		{Name: "xChannelSelector", Value: x},
		{Name: "yChannelSelector", Value: y},
	}
	if result != "" {
		attrs = append(attrs, surface.Attr{Name: "result", Value: result})
	}
	return surface.Def{Tag: "feDisplacementMap", Attrs: attrs}
}
