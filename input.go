package segue

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// navKeys are the keys polled each frame.
var navKeys = []ebiten.Key{
	ebiten.KeyArrowDown,
	ebiten.KeyArrowUp,
	ebiten.KeyPageDown,
	ebiten.KeyPageUp,
	ebiten.KeySpace,
	ebiten.KeyHome,
	ebiten.KeyEnd,
}

// Input polls Ebitengine for wheel, touch and keyboard input once per tick
// and feeds it through a Normalizer. Synthetic events queued with the
// Inject methods take priority over real input, one per tick.
type Input struct {
	norm       *Normalizer
	wheelScale float64

	// Keyboard input is ignored when false.
	KeyboardEnabled bool

	touchID  ebiten.TouchID
	tracking bool
	touchBuf []ebiten.TouchID

	injectQueue []syntheticInputEvent

	// lastWheel is the most recent wheel event, kept so hosts can inspect
	// whether its default was prevented.
	lastWheel WheelEvent
}

// NewInput creates an Input adapter around norm.
func NewInput(norm *Normalizer, opts Options) *Input {
	scale := opts.WheelScale
	if scale <= 0 {
		scale = defaultWheelScale
	}
	return &Input{norm: norm, wheelScale: scale, KeyboardEnabled: true}
}

// Normalizer returns the normalizer fed by this adapter.
func (in *Input) Normalizer() *Normalizer {
	return in.norm
}

// LastWheel returns the most recent wheel event seen.
func (in *Input) LastWheel() WheelEvent {
	return in.lastWheel
}

// Poll reads this tick's input and calls emit for each resulting intent, in
// arrival order: wheel, then touch, then keys.
func (in *Input) Poll(emit func(Intent)) {
	if in.processInjectedInput(emit) {
		return
	}
	in.pollWheel(emit)
	in.pollTouch(emit)
	if in.KeyboardEnabled {
		in.pollKeys(emit)
	}
}

// pollWheel converts Ebitengine's wheel offset (positive = up) into a
// WheelEvent with positive DeltaY meaning down.
func (in *Input) pollWheel(emit func(Intent)) {
	_, yoff := ebiten.Wheel()
	if yoff == 0 {
		return
	}
	in.wheel(-yoff*in.wheelScale, emit)
}

func (in *Input) wheel(deltaY float64, emit func(Intent)) {
	in.lastWheel = WheelEvent{DeltaY: deltaY}
	if intent, ok := in.norm.Wheel(&in.lastWheel); ok {
		emit(intent)
	}
}

// pollTouch follows the first finger down until it is released.
func (in *Input) pollTouch(emit func(Intent)) {
	if !in.tracking {
		in.touchBuf = inpututil.AppendJustPressedTouchIDs(in.touchBuf[:0])
		if len(in.touchBuf) == 0 {
			return
		}
		in.touchID = in.touchBuf[0]
		in.tracking = true
		_, y := ebiten.TouchPosition(in.touchID)
		in.norm.TouchStart(float64(y))
		return
	}
	if inpututil.IsTouchJustReleased(in.touchID) {
		in.tracking = false
		in.norm.TouchEnd()
		return
	}
	_, y := ebiten.TouchPosition(in.touchID)
	if intent, ok := in.norm.TouchMove(float64(y)); ok {
		emit(intent)
	}
}

func (in *Input) pollKeys(emit func(Intent)) {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	for _, k := range navKeys {
		if !inpututil.IsKeyJustPressed(k) {
			continue
		}
		if intent, ok := in.norm.Key(k, shift); ok {
			emit(intent)
		}
	}
}
