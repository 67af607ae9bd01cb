package segue

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const ms = time.Millisecond

func newTestScheduler(t *testing.T, n int, duration time.Duration) *Scheduler {
	t.Helper()
	opts := DefaultOptions()
	opts.Duration = duration
	s, err := NewScheduler(newTestRegistry(t, n), opts)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	return s
}

func TestSchedulerConcreteScenario(t *testing.T) {
	s := newTestScheduler(t, 4, 1000*ms)

	var completed []int
	s.OnTransitionComplete(func(i int) { completed = append(completed, i) })

	if !s.Accept(Advance(ModalityWheel, 80), 0) {
		t.Fatal("Advance at t=0 should be accepted")
	}
	if !s.IsTransitioning() {
		t.Fatal("expected running")
	}
	if tgt, _ := s.State().Target(); tgt != 1 {
		t.Fatalf("target = %d, want 1", tgt)
	}

	if s.Accept(Advance(ModalityWheel, 80), 200*ms) {
		t.Fatal("Advance at t=200 should be dropped")
	}
	s.Tick(200 * ms)
	if tgt, _ := s.State().Target(); tgt != 1 || s.ActiveIndex() != 0 {
		t.Fatalf("after drop: target=%d active=%d", tgt, s.ActiveIndex())
	}

	if !s.Tick(1000 * ms) {
		t.Fatal("tick at t=1000 should commit")
	}
	if s.ActiveIndex() != 1 || s.IsTransitioning() {
		t.Fatalf("after commit: active=%d running=%v", s.ActiveIndex(), s.IsTransitioning())
	}
	if diff := cmp.Diff([]int{1}, completed); diff != "" {
		t.Fatalf("completed mismatch (-want +got):\n%s", diff)
	}

	if !s.Accept(Retreat(ModalityWheel, 80), 1001*ms) {
		t.Fatal("Retreat at t=1001 should be accepted")
	}
	if tgt, _ := s.State().Target(); tgt != 0 {
		t.Errorf("target = %d, want 0", tgt)
	}
}

func TestSchedulerWheelThresholdScenario(t *testing.T) {
	s := newTestScheduler(t, 4, 1000*ms)
	n := NewNormalizer(s.Options(), s.Registry().Len())

	before := s.State()
	if in, ok := n.Wheel(&WheelEvent{DeltaY: 10}); ok {
		s.Accept(in, 0)
		t.Fatal("deltaY=10 should not emit an intent")
	}
	if s.State() != before {
		t.Error("state changed after sub-threshold wheel")
	}

	in, ok := n.Wheel(&WheelEvent{DeltaY: 80})
	if !ok || in.Kind != IntentAdvance {
		t.Fatalf("deltaY=80: intent=%+v ok=%v", in, ok)
	}
	if !s.Accept(in, 0) {
		t.Fatal("advance intent should be accepted")
	}
}

// committedSequence runs intents (with timestamps) through a fresh scheduler,
// ticking every 50ms, and returns the committed index sequence.
func committedSequence(t *testing.T, intents map[time.Duration]Intent, until time.Duration) []int {
	t.Helper()
	s := newTestScheduler(t, 6, 300*ms)
	var seq []int
	s.OnTransitionComplete(func(i int) { seq = append(seq, i) })
	for now := time.Duration(0); now <= until; now += 10 * ms {
		if in, ok := intents[now]; ok {
			s.Accept(in, now)
		}
		s.Tick(now)
	}
	return seq
}

func TestSchedulerMutualExclusion(t *testing.T) {
	base := map[time.Duration]Intent{
		0:        Advance(ModalityKeyboard, 1),
		400 * ms: Advance(ModalityKeyboard, 1),
		800 * ms: GoTo(ModalityProgrammatic, 5),
	}
	// Same intents plus a burst delivered while each transition is running.
	noisy := map[time.Duration]Intent{
		0:        Advance(ModalityKeyboard, 1),
		50 * ms:  GoTo(ModalityProgrammatic, 4),
		100 * ms: Retreat(ModalityKeyboard, 1),
		290 * ms: Advance(ModalityKeyboard, 1),
		400 * ms: Advance(ModalityKeyboard, 1),
		500 * ms: GoTo(ModalityProgrammatic, 0),
		800 * ms: GoTo(ModalityProgrammatic, 5),
		900 * ms: Retreat(ModalityKeyboard, 1),
	}
	want := committedSequence(t, base, 2*time.Second)
	got := committedSequence(t, noisy, 2*time.Second)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("concurrent intents changed the committed sequence (-base +noisy):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 5}, want); diff != "" {
		t.Errorf("base sequence mismatch:\n%s", diff)
	}
}

func TestSchedulerMutualExclusionWheel(t *testing.T) {
	run := func(intents map[time.Duration]Intent) []int {
		s := newTestScheduler(t, 6, 1000*ms)
		var seq []int
		s.OnTransitionComplete(func(i int) { seq = append(seq, i) })
		for now := time.Duration(0); now <= 2500*ms; now += ms {
			if in, ok := intents[now]; ok {
				s.Accept(in, now)
			}
			s.Tick(now)
		}
		return seq
	}
	base := run(map[time.Duration]Intent{
		0:         Advance(ModalityWheel, 120),
		1010 * ms: Advance(ModalityWheel, 120),
	})
	// A same-direction wheel and touch event land while the first
	// transition runs, just before the later intent.
	noisy := run(map[time.Duration]Intent{
		0:         Advance(ModalityWheel, 120),
		900 * ms:  Advance(ModalityTouch, 90),
		950 * ms:  Advance(ModalityWheel, 120),
		1010 * ms: Advance(ModalityWheel, 120),
	})
	if diff := cmp.Diff([]int{1, 2}, base); diff != "" {
		t.Errorf("base sequence mismatch:\n%s", diff)
	}
	if diff := cmp.Diff(base, noisy); diff != "" {
		t.Errorf("wheel intents dropped mid-flight changed the committed sequence (-base +noisy):\n%s", diff)
	}
}

func TestSchedulerBoundaryNoOps(t *testing.T) {
	s := newTestScheduler(t, 3, 100*ms)
	before := s.State()
	if s.Accept(Retreat(ModalityKeyboard, 1), 0) {
		t.Error("Retreat at 0 should be a no-op")
	}
	if s.State() != before || s.IsTransitioning() {
		t.Error("state changed on Retreat at 0")
	}

	s.GoToSection(2, 0)
	s.Tick(100 * ms)
	if s.ActiveIndex() != 2 {
		t.Fatalf("active = %d, want 2", s.ActiveIndex())
	}
	before = s.State()
	if s.Accept(Advance(ModalityWheel, 100), time.Second) {
		t.Error("Advance at last index should be a no-op")
	}
	if s.State() != before {
		t.Error("state changed on Advance at last index")
	}
}

func TestSchedulerGoToClamps(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		index  int
		want   int
		starts bool
	}{
		{"negative from middle", 3, -5, 0, true},
		{"past end from middle", 3, 1000, 5, true},
		{"negative at first", 0, -1, 0, false},
		{"past end at last", 5, 1000, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Duration = 100 * ms
			opts.InitialIndex = tt.start
			s, err := NewScheduler(newTestRegistry(t, 6), opts)
			if err != nil {
				t.Fatal(err)
			}
			if got := s.GoToSection(tt.index, 0); got != tt.starts {
				t.Fatalf("GoToSection(%d) = %v, want %v", tt.index, got, tt.starts)
			}
			s.Tick(100 * ms)
			if s.ActiveIndex() != tt.want {
				t.Errorf("active = %d, want %d", s.ActiveIndex(), tt.want)
			}
		})
	}
}

func TestSchedulerCompletionExactlyOnce(t *testing.T) {
	s := newTestScheduler(t, 4, 500*ms)
	var calls []int
	var progressAtCall float64
	s.OnTransitionComplete(func(i int) {
		calls = append(calls, i)
		progressAtCall = s.Progress()
		if s.IsTransitioning() {
			t.Error("callback fired before commit")
		}
		if s.ActiveIndex() != i {
			t.Errorf("callback index %d != committed %d", i, s.ActiveIndex())
		}
	})

	s.GoToSection(3, 0)
	for now := time.Duration(0); now <= 2*time.Second; now += 16 * ms {
		s.Tick(now)
		if now < 500*ms && len(calls) != 0 {
			t.Fatalf("callback fired at %v before progress reached 1", now)
		}
	}
	if diff := cmp.Diff([]int{3}, calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if progressAtCall != 0 {
		t.Errorf("progress at callback = %f, want 0 (idle)", progressAtCall)
	}
}

func TestSchedulerStartCallbackAndRemove(t *testing.T) {
	s := newTestScheduler(t, 4, 100*ms)
	type pair struct{ From, To int }
	var starts []pair
	h := s.OnTransitionStart(func(from, to int) { starts = append(starts, pair{from, to}) })

	s.GoToSection(2, 0)
	s.Tick(100 * ms)
	h.Remove()
	s.GoToSection(0, 200*ms)

	if diff := cmp.Diff([]pair{{0, 2}}, starts); diff != "" {
		t.Errorf("starts mismatch (-want +got):\n%s", diff)
	}
}

func TestSchedulerRemoveCompleteCallback(t *testing.T) {
	s := newTestScheduler(t, 3, 100*ms)
	count := 0
	h := s.OnTransitionComplete(func(int) { count++ })
	other := 0
	s.OnTransitionComplete(func(int) { other++ })
	h.Remove()
	h.Remove() // second Remove is harmless

	s.GoToSection(1, 0)
	s.Tick(100 * ms)
	if count != 0 || other != 1 {
		t.Errorf("count=%d other=%d, want 0 and 1", count, other)
	}
	CallbackHandle{}.Remove() // zero handle is a no-op
}

func TestSchedulerGuardRejects(t *testing.T) {
	s := newTestScheduler(t, 3, 100*ms)
	errNope := errors.New("nope")
	s.AddGuard(func(sec Section) error {
		if sec.ID == "s2" {
			return errNope
		}
		return nil
	})
	if s.GoToSection(2, 0) {
		t.Error("guard should reject s2")
	}
	if s.IsTransitioning() {
		t.Error("rejected request must not enter running")
	}
	if !s.GoToSection(1, 0) {
		t.Error("guard should allow s1")
	}
}

func TestSchedulerGoToID(t *testing.T) {
	s := newTestScheduler(t, 3, 100*ms)
	if s.GoToID("missing", 0) {
		t.Error("unknown id should be a no-op")
	}
	if !s.GoToID("s2", 0) {
		t.Fatal("GoToID(s2) rejected")
	}
	s.Tick(100 * ms)
	if s.ActiveIndex() != 2 {
		t.Errorf("active = %d, want 2", s.ActiveIndex())
	}
}

func TestSchedulerSettleMargin(t *testing.T) {
	opts := DefaultOptions()
	opts.Duration = 1000 * ms
	opts.SettleMargin = 500 * ms
	s, err := NewScheduler(newTestRegistry(t, 4), opts)
	if err != nil {
		t.Fatal(err)
	}
	s.Accept(Advance(ModalityKeyboard, 1), 0)
	s.Tick(1000 * ms)
	if s.ActiveIndex() != 1 {
		t.Fatal("expected commit at duration")
	}
	if s.Accept(Advance(ModalityKeyboard, 1), 1200*ms) {
		t.Error("gate should stay locked through the settle margin")
	}
	if !s.Accept(Advance(ModalityKeyboard, 1), 1500*ms) {
		t.Error("gate should unlock after duration + settle margin")
	}
}

func TestSchedulerCoalescesGestureTail(t *testing.T) {
	opts := DefaultOptions()
	opts.Duration = 300 * ms
	opts.GestureGap = TrackpadGestureGap
	s, err := NewScheduler(newTestRegistry(t, 6), opts)
	if err != nil {
		t.Fatal(err)
	}
	// A fast swipe fires wheel events every 16ms for ~600ms.
	accepted := 0
	for now := time.Duration(0); now <= 600*ms; now += 16 * ms {
		if s.Accept(Advance(ModalityWheel, 120), now) {
			accepted++
		}
		s.Tick(now)
	}
	if accepted != 1 {
		t.Errorf("one continuous gesture started %d transitions, want 1", accepted)
	}
	// After a pause the next gesture counts again.
	if !s.Accept(Advance(ModalityWheel, 120), 900*ms) {
		t.Error("new gesture after a pause should be accepted")
	}
}

func TestSchedulerKeyboardNotCoalesced(t *testing.T) {
	s := newTestScheduler(t, 6, 100*ms)
	s.Accept(Advance(ModalityKeyboard, 1), 0)
	s.Tick(100 * ms)
	if !s.Accept(Advance(ModalityKeyboard, 1), 101*ms) {
		t.Error("keyboard intents should not be coalesced")
	}
}

func TestSchedulerEventSink(t *testing.T) {
	s := newTestScheduler(t, 3, 100*ms)
	sink := &recordingSink{}
	s.SetEventSink(sink)
	s.GoToSection(2, 10*ms)
	s.Tick(110 * ms)

	want := []TransitionEvent{
		{Type: TransitionStarted, From: 0, To: 2, At: 10 * ms},
		{Type: TransitionCompleted, From: 0, To: 2, At: 110 * ms},
	}
	if diff := cmp.Diff(want, sink.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

type recordingSink struct {
	events []TransitionEvent
}

func (r *recordingSink) EmitTransition(e TransitionEvent) {
	r.events = append(r.events, e)
}

func TestNewSchedulerErrors(t *testing.T) {
	if _, err := NewScheduler(nil, DefaultOptions()); !errors.Is(err, ErrEmptyRegistry) {
		t.Errorf("nil registry: err = %v", err)
	}
	opts := DefaultOptions()
	opts.Duration = -time.Second
	if _, err := NewScheduler(newTestRegistry(t, 2), opts); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("negative duration: err = %v", err)
	}
}

func TestNewSchedulerInitialIndexClamped(t *testing.T) {
	opts := DefaultOptions()
	opts.InitialIndex = 99
	s, err := NewScheduler(newTestRegistry(t, 3), opts)
	if err != nil {
		t.Fatal(err)
	}
	if s.ActiveIndex() != 2 || s.IsTransitioning() {
		t.Errorf("initial state: active=%d running=%v", s.ActiveIndex(), s.IsTransitioning())
	}
}
