// Package segue turns wheel, touch, keyboard and programmatic navigation
// into one eased transition at a time between the ordered sections of an
// [Ebitengine] experience.
//
// The same engine drives a page-level pager (scroll-hijacked gallery
// navigation) and a 3D camera that glides between fixed viewpoints.
//
// # Quick start
//
//	reg, _ := segue.NewRegistry([]segue.Section{
//		{ID: "intro", Label: "Intro"},
//		{ID: "work", Label: "Work"},
//		{ID: "contact", Label: "Contact"},
//	})
//	d, _ := segue.New(reg, segue.DefaultOptions())
//	pager := segue.NewPager(segue.Rect{Width: 640, Height: 480}, reg.Len(), nil)
//	d.AddConsumer(pager)
//	d.Scheduler().OnTransitionComplete(func(i int) { log.Println("now at", i) })
//	segue.Run(d, segue.RunConfig{Title: "Gallery", Width: 640, Height: 480})
//
// # Pieces
//
// A [Registry] holds the immutable sections. A [Normalizer] turns raw input
// into [Intent] values, applying per-modality thresholds; [Input] polls
// Ebitengine for that raw input each tick. The [Scheduler] is the single
// arbitration point: its [Gate] drops every intent while a transition runs
// (plus a settle margin) and, when Options.GestureGap is set, coalesces the
// tail of a continuous gesture. The scheduler produces linear progress;
// consumers such as [Pager] and [Camera] apply their own [Easing] before
// interpolating.
//
// The state machine itself is the pure pair [Begin] and [Tick] over a
// [State] value, so it can be tested without a window.
//
// # Timing
//
// All timing is wall-clock based: a [Clock] supplies monotonic timestamps and
// progress is elapsed time over duration, so transitions take the same time
// at any refresh rate and a dropped frame cannot stall one.
//
// # ECS
//
// Lifecycle events can be forwarded to a Donburi world with the adapter in
// segue/ecs.
//
// [Ebitengine]: https://ebitengine.org
package segue
