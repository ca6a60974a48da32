// Package anim compiles animation scripts into versioned, callback-free
// tween lists and samples them back onto scenes.
//
// # Building
//
// A [Builder] keeps a cursor in milliseconds. Selecting a target with
// [Builder.Node] or [Builder.Edge] and calling [Builder.To] emits one tween
// per numeric property, delayed by the current cursor, and then advances
// the cursor by the duration. Tweens are therefore sequential by default:
//
//	spec, err := anim.New().
//		Node("a").To(anim.Props{"x": 10}, anim.Options{Duration: 100}).
//		To(anim.Props{"y": 5}, anim.Options{Duration: 50}).
//		Build()
//
// yields tweens on node:a with delays 0 and 100. Use [Builder.At] or
// [Builder.Wait] to move the cursor explicitly, e.g. to run tweens in
// parallel.
//
// Calling To without a target is a caller error. The builder records it,
// ignores every later To, and reports it from [Builder.Err] and
// [Builder.Build].
//
// # Playback
//
// [Sample] evaluates a spec at a point in time and returns a copy of the
// scene with the matching runtime overrides set. It is the reference
// playback used by the frames exporter; interactive players implement the
// same contract on their own clock.
package anim
