// Package ecs provides ECS adapters for segue's transition lifecycle.
//
// The primary adapter is [NewDonburiSink], which publishes scheduler
// start/complete events into a [Donburi] world as typed events and mirrors
// the current section onto a singleton entity. Subscribe to
// [TransitionEventType] in your ECS systems to receive them, or read
// [SectionComponent] from [DonburiSink.Entity].
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scheduler.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
