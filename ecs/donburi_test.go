package ecs

import (
	"testing"
	"time"

	"github.com/phanxgames/segue"

	"github.com/yohamta/donburi"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
	if !world.Valid(sink.Entity()) {
		t.Fatal("sink entity is not valid")
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink segue.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_EmitTransition(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []segue.TransitionEvent
	TransitionEventType.Subscribe(world, func(w donburi.World, e segue.TransitionEvent) {
		received = append(received, e)
	})

	sink.EmitTransition(segue.TransitionEvent{Type: segue.TransitionStarted, From: 0, To: 2, At: time.Second})

	st := SectionComponent.Get(world.Entry(sink.Entity()))
	if !st.Transitioning || st.Active != 0 || st.Target != 2 {
		t.Errorf("after start: %+v", *st)
	}

	sink.EmitTransition(segue.TransitionEvent{Type: segue.TransitionCompleted, From: 0, To: 2, At: 2 * time.Second})

	st = SectionComponent.Get(world.Entry(sink.Entity()))
	if st.Transitioning || st.Active != 2 {
		t.Errorf("after complete: %+v", *st)
	}

	// Events are queued until processed.
	TransitionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Type != segue.TransitionStarted || received[0].To != 2 {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Type != segue.TransitionCompleted || received[1].At != 2*time.Second {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiSink_WithScheduler(t *testing.T) {
	reg, err := segue.NewRegistry([]segue.Section{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	if err != nil {
		t.Fatal(err)
	}
	opts := segue.DefaultOptions()
	opts.Duration = time.Second
	s, err := segue.NewScheduler(reg, opts)
	if err != nil {
		t.Fatal(err)
	}

	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	s.SetEventSink(sink)

	var types []segue.TransitionEventType
	TransitionEventType.Subscribe(world, func(w donburi.World, e segue.TransitionEvent) {
		types = append(types, e.Type)
	})

	if !s.GoToSection(1, 0) {
		t.Fatal("goto rejected")
	}
	s.Tick(time.Second)
	TransitionEventType.ProcessEvents(world)

	if len(types) != 2 || types[0] != segue.TransitionStarted || types[1] != segue.TransitionCompleted {
		t.Errorf("event types = %v", types)
	}
	if st := SectionComponent.Get(world.Entry(sink.Entity())); st.Active != 1 {
		t.Errorf("Active = %d, want 1", st.Active)
	}
}
