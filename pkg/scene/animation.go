package scene

import "strings"

// AnimationVersion is the wire version of [AnimationSpec].
const AnimationVersion = "viz-anim/1"

// TweenKind is the only tween kind currently emitted.
const TweenKind = "tween"

// Target prefixes.
const (
	TargetNodePrefix = "node:"
	TargetEdgePrefix = "edge:"
)

// AnimationSpec is a versioned, callback-free list of tweens. It is the only
// artifact a playback consumer persists or transmits.
type AnimationSpec struct {
	Version string  `json:"version" bson:"version"`
	Tweens  []Tween `json:"tweens" bson:"tweens"`
}

// Tween animates one numeric property of one node or edge.
// Delay and Duration are in milliseconds.
type Tween struct {
	Kind     string   `json:"kind" bson:"kind"`
	Target   string   `json:"target" bson:"target"`
	Property string   `json:"property" bson:"property"`
	To       float64  `json:"to" bson:"to"`
	From     *float64 `json:"from,omitempty" bson:"from,omitempty"`
	Duration float64  `json:"duration" bson:"duration"`
	Delay    float64  `json:"delay" bson:"delay"`
	Easing   string   `json:"easing,omitempty" bson:"easing,omitempty"`
}

// NodeTarget returns the tween target string for a node.
func NodeTarget(id string) string { return TargetNodePrefix + id }

// EdgeTarget returns the tween target string for an edge.
func EdgeTarget(id string) string { return TargetEdgePrefix + id }

// ParseTarget splits a target into its kind ("node" or "edge") and id.
func ParseTarget(target string) (kind, id string, ok bool) {
	switch {
	case strings.HasPrefix(target, TargetNodePrefix):
		return "node", strings.TrimPrefix(target, TargetNodePrefix), true
	case strings.HasPrefix(target, TargetEdgePrefix):
		return "edge", strings.TrimPrefix(target, TargetEdgePrefix), true
	}
	return "", "", false
}

// End returns the time at which the last tween finishes.
func (a AnimationSpec) End() float64 {
	var end float64
	for _, t := range a.Tweens {
		end = max(end, t.Delay+t.Duration)
	}
	return end
}
