package anim

// Easing names understood by playback.
const (
	EaseLinear = "linear"
	EaseIn     = "ease-in"
	EaseOut    = "ease-out"
	EaseInOut  = "ease-in-out"
)

var easings = map[string]func(float64) float64{
	"":         linear,
	EaseLinear: linear,
	EaseIn:     func(p float64) float64 { return p * p },
	EaseOut:    func(p float64) float64 { return p * (2 - p) },
	EaseInOut: func(p float64) float64 {
		if p < 0.5 {
			return 2 * p * p
		}
		return -1 + (4-2*p)*p
	},
}

func linear(p float64) float64 { return p }

// KnownEasing reports whether name is an easing playback understands.
// The empty name is linear.
func KnownEasing(name string) bool {
	_, ok := easings[name]
	return ok
}

// Ease applies the named timing curve to progress p in [0, 1].
// Unknown names fall back to linear; [Builder] and [ValidateSpec] reject
// them before they reach playback.
func Ease(name string, p float64) float64 {
	p = min(max(p, 0), 1)
	if f, ok := easings[name]; ok {
		return f(p)
	}
	return p
}
