package segue

import "math"

// Vec3 is a 3D vector used for camera positions, look-at points and
// directions.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return v
	}
	return v.Scale(1 / l)
}

// Pose is a camera position plus the point it looks at.
type Pose struct {
	Position Vec3 `yaml:"position"`
	LookAt   Vec3 `yaml:"lookAt"`
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Phase is the scheduler phase. Exactly one phase holds at any instant.
type Phase uint8

const (
	PhaseIdle    Phase = iota // no transition in flight
	PhaseRunning              // a transition is animating toward its target
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	default:
		return "unknown"
	}
}

// IntentKind identifies what a navigation request asks for.
type IntentKind uint8

const (
	IntentAdvance IntentKind = iota // move to the next section
	IntentRetreat                   // move to the previous section
	IntentGoTo                      // move to an explicit index
)

func (k IntentKind) String() string {
	switch k {
	case IntentAdvance:
		return "advance"
	case IntentRetreat:
		return "retreat"
	case IntentGoTo:
		return "goto"
	default:
		return "unknown"
	}
}

// Modality identifies the input source an Intent came from.
type Modality uint8

const (
	ModalityWheel        Modality = iota // mouse wheel or trackpad scroll
	ModalityTouch                        // touch swipe
	ModalityKeyboard                     // discrete key press
	ModalityProgrammatic                 // direct call from host UI
)

func (m Modality) String() string {
	switch m {
	case ModalityWheel:
		return "wheel"
	case ModalityTouch:
		return "touch"
	case ModalityKeyboard:
		return "keyboard"
	case ModalityProgrammatic:
		return "programmatic"
	default:
		return "unknown"
	}
}

// continuous reports whether a modality can fire several events for one
// physical gesture.
func (m Modality) continuous() bool {
	return m == ModalityWheel || m == ModalityTouch
}

// Intent is a normalized navigation request. It is consumed immediately by
// Scheduler.Accept and never retained.
type Intent struct {
	Kind IntentKind
	// Index is the requested section for IntentGoTo. Ignored otherwise.
	Index int
	// Strength is the magnitude that produced the intent (wheel delta,
	// swipe distance). Discrete sources use 1.
	Strength float64
	Source   Modality
}

// Advance returns an IntentAdvance from the given source.
func Advance(src Modality, strength float64) Intent {
	return Intent{Kind: IntentAdvance, Strength: strength, Source: src}
}

// Retreat returns an IntentRetreat from the given source.
func Retreat(src Modality, strength float64) Intent {
	return Intent{Kind: IntentRetreat, Strength: strength, Source: src}
}

// GoTo returns an IntentGoTo for index from the given source.
func GoTo(src Modality, index int) Intent {
	return Intent{Kind: IntentGoTo, Index: index, Strength: 1, Source: src}
}

// direction returns +1 for advance, -1 for retreat and 0 for goto.
func (in Intent) direction() int {
	switch in.Kind {
	case IntentAdvance:
		return 1
	case IntentRetreat:
		return -1
	default:
		return 0
	}
}

// Resolve maps an intent to a target index given the committed active index
// and registry length. GoTo indices are clamped into range. ok is false when
// the intent resolves to the active index (a boundary advance/retreat or a
// redundant goto) or the registry is empty.
func Resolve(in Intent, active, length int) (target int, ok bool) {
	if length <= 0 {
		return active, false
	}
	switch in.Kind {
	case IntentAdvance:
		target = active + 1
	case IntentRetreat:
		target = active - 1
	case IntentGoTo:
		target = in.Index
	default:
		return active, false
	}
	if in.Kind == IntentGoTo {
		target = clampIndex(target, length)
	} else if target < 0 || target >= length {
		return active, false
	}
	if target == active {
		return active, false
	}
	return target, true
}

func clampIndex(i, length int) int {
	if i < 0 {
		return 0
	}
	if i >= length {
		return length - 1
	}
	return i
}
