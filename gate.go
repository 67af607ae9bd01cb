package segue

import "time"

// gesture tracks the most recent continuous input gesture seen by the gate.
type gesture struct {
	active    bool
	direction int
	lastEvent time.Duration
}

// Gate enforces one transition per gesture. It is locked the instant a
// transition is accepted and stays locked for the transition's duration plus
// a settle margin. While locked every intent is dropped, but wheel and touch
// intents still extend the current gesture so that the tail of one fast
// swipe cannot start a second transition right after unlock.
type Gate struct {
	locked     bool
	until      time.Duration
	gestureGap time.Duration
	gesture    gesture
}

// NewGate returns an unlocked gate. gestureGap is the longest pause between
// two same-direction wheel/touch events that still counts as one gesture.
func NewGate(gestureGap time.Duration) *Gate {
	if gestureGap < 0 {
		gestureGap = 0
	}
	return &Gate{gestureGap: gestureGap}
}

// Lock closes the gate until now+hold and starts a new gesture for in.
func (g *Gate) Lock(in Intent, now, hold time.Duration) {
	g.locked = true
	g.until = now + hold
	g.gesture = gesture{}
	g.track(in, now)
}

// Locked reports whether the gate is closed at now. It unlocks lazily once
// now reaches the lock deadline.
func (g *Gate) Locked(now time.Duration) bool {
	if g.locked && now >= g.until {
		g.locked = false
	}
	return g.locked
}

// Allow reports whether in may start a transition at now. A dropped
// continuous intent is recorded as part of the current gesture.
func (g *Gate) Allow(in Intent, now time.Duration) bool {
	if g.Locked(now) {
		g.track(in, now)
		return false
	}
	if g.sameGesture(in, now) {
		g.track(in, now)
		return false
	}
	return true
}

// Release opens the gate immediately and forgets the current gesture.
func (g *Gate) Release() {
	g.locked = false
	g.until = 0
	g.gesture = gesture{}
}

func (g *Gate) track(in Intent, now time.Duration) {
	if !in.Source.continuous() || in.direction() == 0 {
		return
	}
	if g.gesture.active && g.gesture.direction != in.direction() {
		g.gesture = gesture{}
	}
	g.gesture.active = true
	g.gesture.direction = in.direction()
	g.gesture.lastEvent = now
}

func (g *Gate) sameGesture(in Intent, now time.Duration) bool {
	if !g.gesture.active || !in.Source.continuous() {
		return false
	}
	if in.direction() != g.gesture.direction {
		return false
	}
	return now-g.gesture.lastEvent < g.gestureGap
}
