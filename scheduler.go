package segue

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Guard vets the target section of an otherwise legal transition. Returning
// an error drops the request; the view does not move.
type Guard func(target Section) error

// TransitionEventType identifies a scheduler lifecycle event.
type TransitionEventType uint8

const (
	TransitionStarted   TransitionEventType = iota // fires when a transition is accepted
	TransitionCompleted                            // fires after the target is committed
)

func (t TransitionEventType) String() string {
	switch t {
	case TransitionStarted:
		return "started"
	case TransitionCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// TransitionEvent carries lifecycle data to an EventSink.
type TransitionEvent struct {
	Type TransitionEventType
	From int
	To   int
	At   time.Duration
}

// EventSink is the interface for optional ECS integration. When set on a
// Scheduler, lifecycle events are forwarded to it.
type EventSink interface {
	EmitTransition(event TransitionEvent)
}

type startHandler struct {
	id uint32
	fn func(from, to int)
}

type completeHandler struct {
	id uint32
	fn func(index int)
}

type handlerRegistry struct {
	start    []startHandler
	complete []completeHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event TransitionEventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case TransitionStarted:
		for i := range h.reg.start {
			if h.reg.start[i].id == h.id {
				h.reg.start = append(h.reg.start[:i:i], h.reg.start[i+1:]...)
				return
			}
		}
	case TransitionCompleted:
		for i := range h.reg.complete {
			if h.reg.complete[i].id == h.id {
				h.reg.complete = append(h.reg.complete[:i:i], h.reg.complete[i+1:]...)
				return
			}
		}
	}
}

// Scheduler owns the transition State for one view. It is the single
// arbitration point for every input modality: intents go through Accept,
// time goes through Tick.
//
// A Scheduler is not safe for concurrent use; drive it from the game loop.
type Scheduler struct {
	registry *Registry
	opts     Options
	gate     *Gate
	state    State
	guards   []Guard
	handlers handlerRegistry
	sink     EventSink
	log      *zap.Logger
}

// NewScheduler creates a Scheduler over registry, Idle at
// opts.InitialIndex (clamped).
func NewScheduler(registry *Registry, opts Options) (*Scheduler, error) {
	if registry == nil || registry.Len() == 0 {
		return nil, ErrEmptyRegistry
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("new scheduler: %w", err)
	}
	return &Scheduler{
		registry: registry,
		opts:     opts,
		gate:     NewGate(opts.GestureGap),
		state:    NewState(registry.Clamp(opts.InitialIndex)),
		log:      opts.logger(),
	}, nil
}

// Registry returns the sections this scheduler navigates.
func (s *Scheduler) Registry() *Registry {
	return s.registry
}

// Options returns the options the scheduler was created with.
func (s *Scheduler) Options() Options {
	return s.opts
}

// State returns a snapshot of the current transition state.
func (s *Scheduler) State() State {
	return s.state
}

// ActiveIndex returns the last committed section index.
func (s *Scheduler) ActiveIndex() int {
	return s.state.ActiveIndex()
}

// IsTransitioning reports whether a transition is in flight.
func (s *Scheduler) IsTransitioning() bool {
	return s.state.Running()
}

// Progress returns the linear progress of the running transition, or 0.
func (s *Scheduler) Progress() float64 {
	return s.state.Progress()
}

// AddGuard registers a guard consulted before every transition starts.
func (s *Scheduler) AddGuard(g Guard) {
	s.guards = append(s.guards, g)
}

// SetEventSink sets the optional ECS bridge.
func (s *Scheduler) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetLogger replaces the diagnostics logger. Nil disables logging.
func (s *Scheduler) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.log = l
}

// OnTransitionStart registers a callback fired when a transition is
// accepted, with the committed index being left and the target.
func (s *Scheduler) OnTransitionStart(fn func(from, to int)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.start = append(s.handlers.start, startHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: TransitionStarted}
}

// OnTransitionComplete registers a callback fired once per completed
// transition, after the new active index is committed.
func (s *Scheduler) OnTransitionComplete(fn func(index int)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.complete = append(s.handlers.complete, completeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: TransitionCompleted}
}

// GoToSection requests a programmatic transition to index at now.
// Out-of-range indices are clamped.
func (s *Scheduler) GoToSection(index int, now time.Duration) bool {
	return s.Accept(GoTo(ModalityProgrammatic, index), now)
}

// GoToID requests a programmatic transition to the section with the given
// ID. Unknown IDs are a no-op.
func (s *Scheduler) GoToID(id string, now time.Duration) bool {
	sec, ok := s.registry.Lookup(id)
	if !ok {
		s.log.Debug("goto unknown section", zap.String("id", id))
		return false
	}
	return s.GoToSection(sec.Index, now)
}

// Accept offers an intent at timestamp now and reports whether it started a
// transition. Intents arriving while a transition runs, while the gate is
// locked, or resolving to the active section are dropped silently.
func (s *Scheduler) Accept(in Intent, now time.Duration) bool {
	if s.state.Running() {
		s.gate.Allow(in, now)
		s.log.Debug("intent dropped: transition running",
			zap.Stringer("kind", in.Kind), zap.Stringer("source", in.Source))
		return false
	}
	if !s.gate.Allow(in, now) {
		s.log.Debug("intent dropped: gate locked",
			zap.Stringer("kind", in.Kind), zap.Stringer("source", in.Source))
		return false
	}

	from := s.state.ActiveIndex()
	target, ok := Resolve(in, from, s.registry.Len())
	if !ok {
		return false
	}
	sec, _ := s.registry.Get(target)
	for _, g := range s.guards {
		if err := g(sec); err != nil {
			s.log.Warn("transition rejected",
				zap.String("section", sec.ID), zap.Int("index", target), zap.Error(err))
			return false
		}
	}

	s.state = Begin(s.state, target, now, s.opts.Duration)
	s.gate.Lock(in, now, s.opts.hold())
	s.log.Debug("transition started",
		zap.Int("from", from), zap.Int("to", target),
		zap.Stringer("source", in.Source), zap.Duration("duration", s.opts.Duration))

	for _, h := range s.handlers.start {
		h.fn(from, target)
	}
	s.emit(TransitionStarted, from, target, now)
	return true
}

// Tick advances the running transition to now. It returns true on the tick
// that commits the target, after OnTransitionComplete callbacks have run.
func (s *Scheduler) Tick(now time.Duration) bool {
	from := s.state.ActiveIndex()
	next, committed := Tick(s.state, now)
	s.state = next
	if !committed {
		return false
	}
	to := s.state.ActiveIndex()
	s.log.Debug("transition committed", zap.Int("from", from), zap.Int("index", to))
	for _, h := range s.handlers.complete {
		h.fn(to)
	}
	s.emit(TransitionCompleted, from, to, now)
	return true
}

func (s *Scheduler) emit(t TransitionEventType, from, to int, at time.Duration) {
	if s.sink == nil {
		return
	}
	s.sink.EmitTransition(TransitionEvent{Type: t, From: from, To: to, At: at})
}
