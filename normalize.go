package segue

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// WheelEvent is a single wheel/trackpad scroll event. DeltaY is positive when
// scrolling down (toward later sections).
type WheelEvent struct {
	DeltaY           float64
	defaultPrevented bool
}

// PreventDefault marks the event as consumed so the host does not scroll the
// underlying document.
func (e *WheelEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *WheelEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Normalizer converts raw wheel, touch and keyboard input into Intents. The
// section count is needed to resolve End to the last index.
type Normalizer struct {
	wheelThreshold float64
	touchThreshold float64
	length         int

	touching    bool
	touchStartY float64
}

// NewNormalizer returns a Normalizer using the thresholds in opts for a
// registry of length sections.
func NewNormalizer(opts Options, length int) *Normalizer {
	return &Normalizer{
		wheelThreshold: opts.WheelThreshold,
		touchThreshold: opts.TouchThreshold,
		length:         length,
	}
}

// Wheel always prevents the event's default scroll, then returns an Advance
// or Retreat intent when |DeltaY| reaches the wheel threshold.
func (n *Normalizer) Wheel(e *WheelEvent) (Intent, bool) {
	e.PreventDefault()
	mag := math.Abs(e.DeltaY)
	if mag < n.wheelThreshold || mag == 0 {
		return Intent{}, false
	}
	if e.DeltaY > 0 {
		return Advance(ModalityWheel, mag), true
	}
	return Retreat(ModalityWheel, mag), true
}

// TouchStart records the y position a swipe begins at.
func (n *Normalizer) TouchStart(y float64) {
	n.touching = true
	n.touchStartY = y
}

// TouchMove returns an intent once the swipe has travelled more than the
// touch threshold since the last emission. Swiping up (finger moving toward
// smaller y) advances. The start point is reset after each emission so one
// long swipe does not compound.
func (n *Normalizer) TouchMove(y float64) (Intent, bool) {
	if !n.touching {
		return Intent{}, false
	}
	diff := n.touchStartY - y
	if math.Abs(diff) <= n.touchThreshold {
		return Intent{}, false
	}
	n.touchStartY = y
	if diff > 0 {
		return Advance(ModalityTouch, diff), true
	}
	return Retreat(ModalityTouch, -diff), true
}

// TouchEnd stops tracking the current swipe.
func (n *Normalizer) TouchEnd() {
	n.touching = false
	n.touchStartY = 0
}

// Touching reports whether a swipe is being tracked.
func (n *Normalizer) Touching() bool {
	return n.touching
}

// Key maps a navigation key to an intent. shift selects the reverse
// direction for Space. Unmapped keys return ok=false.
func (n *Normalizer) Key(key ebiten.Key, shift bool) (Intent, bool) {
	switch key {
	case ebiten.KeyArrowDown, ebiten.KeyPageDown:
		return Advance(ModalityKeyboard, 1), true
	case ebiten.KeyArrowUp, ebiten.KeyPageUp:
		return Retreat(ModalityKeyboard, 1), true
	case ebiten.KeySpace:
		if shift {
			return Retreat(ModalityKeyboard, 1), true
		}
		return Advance(ModalityKeyboard, 1), true
	case ebiten.KeyHome:
		return GoTo(ModalityKeyboard, 0), true
	case ebiten.KeyEnd:
		return GoTo(ModalityKeyboard, n.length-1), true
	}
	return Intent{}, false
}

// GoTo returns a programmatic intent for index. It is never filtered.
func (n *Normalizer) GoTo(index int) Intent {
	return GoTo(ModalityProgrammatic, index)
}
