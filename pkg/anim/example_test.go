package anim_test

import (
	"fmt"

	"github.com/matzehuels/scenepatch/pkg/anim"
)

func ExampleBuilder() {
	spec, err := anim.New().
		Node("a").To(anim.Props{"x": 10}, anim.Options{Duration: 100}).
		To(anim.Props{"y": 5}, anim.Options{Duration: 50}).
		Wait(20).
		Edge("a-b").To(anim.Props{"opacity": 0.3}, anim.Options{Duration: 80, Easing: anim.EaseOut}).
		Build()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, tw := range spec.Tweens {
		fmt.Printf("%s %s -> %g at %gms for %gms\n", tw.Target, tw.Property, tw.To, tw.Delay, tw.Duration)
	}
	fmt.Println("ends at", spec.End())
	// Output:
	// node:a x -> 10 at 0ms for 100ms
	// node:a y -> 5 at 100ms for 50ms
	// edge:a-b opacity -> 0.3 at 170ms for 80ms
	// ends at 250
}
