package segue

import "time"

// running holds the fields that only exist while a transition is in flight.
type running struct {
	target   int
	start    time.Duration
	duration time.Duration
	progress float64
}

// State is the transition state owned by a Scheduler. The zero value is Idle
// at index 0. A State is a plain value: Begin and Tick return new States
// rather than mutating their argument.
//
// Running-only fields are unreachable while Idle, so a State can never report
// progress without a target.
type State struct {
	active int
	run    *running
}

// NewState returns an Idle state committed to active.
func NewState(active int) State {
	return State{active: active}
}

// Phase reports whether a transition is in flight.
func (s State) Phase() Phase {
	if s.run != nil {
		return PhaseRunning
	}
	return PhaseIdle
}

// Running reports whether the phase is PhaseRunning.
func (s State) Running() bool {
	return s.run != nil
}

// ActiveIndex returns the last committed section. During a transition it
// still reports the section being left.
func (s State) ActiveIndex() int {
	return s.active
}

// Target returns the section being animated toward. ok is false while Idle.
func (s State) Target() (index int, ok bool) {
	if s.run == nil {
		return s.active, false
	}
	return s.run.target, true
}

// Progress returns linear progress in [0, 1]. It is 0 while Idle.
func (s State) Progress() float64 {
	if s.run == nil {
		return 0
	}
	return s.run.progress
}

// StartTime returns the timestamp the running transition began at.
func (s State) StartTime() (time.Duration, bool) {
	if s.run == nil {
		return 0, false
	}
	return s.run.start, true
}

// Duration returns the length of the running transition.
func (s State) Duration() (time.Duration, bool) {
	if s.run == nil {
		return 0, false
	}
	return s.run.duration, true
}

// Begin returns s moved to Running toward target, starting at now. A State
// that is already Running is returned unchanged: transitions never overlap.
// Range checking of target is the caller's responsibility.
func Begin(s State, target int, now, duration time.Duration) State {
	if s.run != nil {
		return s
	}
	if duration < 0 {
		duration = 0
	}
	return State{
		active: s.active,
		run: &running{
			target:   target,
			start:    now,
			duration: duration,
		},
	}
}

// Tick advances a running transition to timestamp now. When progress reaches
// 1 the target is committed, the returned State is Idle and committed is
// true. Idle states are returned unchanged.
//
// Progress never decreases: a timestamp earlier than a previous tick leaves
// it where it was.
func Tick(s State, now time.Duration) (next State, committed bool) {
	if s.run == nil {
		return s, false
	}
	p := 1.0
	if s.run.duration > 0 {
		p = clamp01(float64(now-s.run.start) / float64(s.run.duration))
	}
	if p < s.run.progress {
		p = s.run.progress
	}
	if p >= 1 {
		return State{active: s.run.target}, true
	}
	r := *s.run
	r.progress = p
	return State{active: s.active, run: &r}, false
}
