package ecs

import (
	"github.com/phanxgames/segue"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TransitionEventType is the Donburi event type for segue lifecycle events.
var TransitionEventType = events.NewEventType[segue.TransitionEvent]()

// SectionState mirrors the scheduler's section state onto an entity.
type SectionState struct {
	Active        int
	Target        int
	Transitioning bool
}

// SectionComponent is the component holding SectionState on the sink's
// entity.
var SectionComponent = donburi.NewComponentType[SectionState]()

// DonburiSink is an EventSink backed by a Donburi world.
type DonburiSink struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiSink creates an EventSink backed by a Donburi world. It creates
// one entity carrying SectionComponent. Events are published to
// TransitionEventType and can be consumed with events.Subscribe and
// ProcessEvents.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{
		world:  world,
		entity: world.Create(SectionComponent),
	}
}

// Entity returns the entity carrying SectionComponent.
func (s *DonburiSink) Entity() donburi.Entity {
	return s.entity
}

// EmitTransition updates the section entity and publishes the event.
func (s *DonburiSink) EmitTransition(event segue.TransitionEvent) {
	if s.world.Valid(s.entity) {
		entry := s.world.Entry(s.entity)
		st := SectionComponent.Get(entry)
		switch event.Type {
		case segue.TransitionStarted:
			st.Active = event.From
			st.Target = event.To
			st.Transitioning = true
		case segue.TransitionCompleted:
			st.Active = event.To
			st.Target = event.To
			st.Transitioning = false
		}
	}
	TransitionEventType.Publish(s.world, event)
}
