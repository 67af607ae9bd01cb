package segue

import "github.com/hajimehoshi/ebiten/v2"

type syntheticKind uint8

const (
	syntheticWheel syntheticKind = iota
	syntheticTouchStart
	syntheticTouchMove
	syntheticTouchEnd
	syntheticKey
)

// syntheticInputEvent represents a single injected input event. It passes
// through the same Normalizer as real input.
type syntheticInputEvent struct {
	kind   syntheticKind
	deltaY float64
	y      float64
	key    ebiten.Key
	shift  bool
}

// InjectWheel queues a wheel event. Positive deltaY scrolls down.
func (in *Input) InjectWheel(deltaY float64) {
	in.injectQueue = append(in.injectQueue, syntheticInputEvent{kind: syntheticWheel, deltaY: deltaY})
}

// InjectTouchStart queues a finger press at screen y.
func (in *Input) InjectTouchStart(y float64) {
	in.injectQueue = append(in.injectQueue, syntheticInputEvent{kind: syntheticTouchStart, y: y})
}

// InjectTouchMove queues a finger move to screen y.
func (in *Input) InjectTouchMove(y float64) {
	in.injectQueue = append(in.injectQueue, syntheticInputEvent{kind: syntheticTouchMove, y: y})
}

// InjectTouchEnd queues a finger release.
func (in *Input) InjectTouchEnd() {
	in.injectQueue = append(in.injectQueue, syntheticInputEvent{kind: syntheticTouchEnd})
}

// InjectKey queues a key press.
func (in *Input) InjectKey(key ebiten.Key, shift bool) {
	in.injectQueue = append(in.injectQueue, syntheticInputEvent{kind: syntheticKey, key: key, shift: shift})
}

// InjectSwipe queues a full swipe: press at fromY, linearly interpolated
// moves over frames-2 intermediate frames, a move to toY and a release. The
// sequence consumes frames+1 frames. Minimum frames is 2.
func (in *Input) InjectSwipe(fromY, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectTouchStart(fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.InjectTouchMove(fromY + (toY-fromY)*t)
	}
	in.InjectTouchMove(toY)
	in.InjectTouchEnd()
}

// Pending returns the number of queued synthetic events.
func (in *Input) Pending() int {
	return len(in.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the normalizer. Returns true if an event was consumed (real input
// is skipped for this tick).
func (in *Input) processInjectedInput(emit func(Intent)) bool {
	if len(in.injectQueue) == 0 {
		return false
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	switch evt.kind {
	case syntheticWheel:
		in.wheel(evt.deltaY, emit)
	case syntheticTouchStart:
		in.norm.TouchStart(evt.y)
	case syntheticTouchMove:
		if intent, ok := in.norm.TouchMove(evt.y); ok {
			emit(intent)
		}
	case syntheticTouchEnd:
		in.norm.TouchEnd()
	case syntheticKey:
		if intent, ok := in.norm.Key(evt.key, evt.shift); ok {
			emit(intent)
		}
	}
	return true
}
