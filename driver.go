package segue

import "time"

// Clock supplies monotonic timestamps measured from an arbitrary origin.
type Clock interface {
	Now() time.Duration
}

// wallClock measures elapsed wall-clock time since it was created.
type wallClock struct {
	origin time.Time
}

// NewWallClock returns a Clock reading time.Since its creation. time.Since
// uses the monotonic clock reading, so adjustments to the system clock do
// not move it.
func NewWallClock() Clock {
	return wallClock{origin: time.Now()}
}

func (c wallClock) Now() time.Duration {
	return time.Since(c.origin)
}

// ManualClock is a Clock advanced explicitly. Useful for replays and tests.
type ManualClock struct {
	now time.Duration
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Duration { return c.now }

// Set moves the clock to t. Earlier values are ignored so time stays
// monotonic.
func (c *ManualClock) Set(t time.Duration) {
	if t > c.now {
		c.now = t
	}
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}

// Frame is the read-only view of the scheduler that consumers render from.
type Frame struct {
	Phase    Phase
	Active   int
	Target   int
	Progress float64
	Now      time.Duration
	// Started is true on the frame a transition was accepted.
	Started bool
	// Committed is true on the frame a transition finished.
	Committed bool
}

// Running reports whether the frame is mid-transition.
func (f Frame) Running() bool {
	return f.Phase == PhaseRunning
}

// Consumer renders a Frame: a page offset, an opacity, a camera pose.
type Consumer interface {
	Apply(f Frame)
}

// ConsumerFunc adapts a function to a Consumer.
type ConsumerFunc func(Frame)

// Apply calls fn(f).
func (fn ConsumerFunc) Apply(f Frame) { fn(f) }

// Driver is the per-frame tick source. Each Update polls input, forwards
// intents to the scheduler, ticks it with the clock's timestamp and hands the
// resulting Frame to every consumer. Timing is wall-clock based so behavior
// does not depend on the frame rate.
type Driver struct {
	scheduler *Scheduler
	input     *Input
	clock     Clock
	consumers []Consumer

	runner      *TestRunner
	screenshots []string

	accepted bool
	last     Frame
}

// New wires a complete engine for registry: a Scheduler, a Normalizer and
// Ebitengine Input adapter using opts, driven by a wall clock.
func New(registry *Registry, opts Options) (*Driver, error) {
	s, err := NewScheduler(registry, opts)
	if err != nil {
		return nil, err
	}
	in := NewInput(NewNormalizer(opts, registry.Len()), opts)
	return NewDriver(s, in, nil), nil
}

// NewDriver creates a Driver for scheduler. input may be nil for hosts that
// only navigate programmatically; clock defaults to a wall clock.
func NewDriver(scheduler *Scheduler, input *Input, clock Clock) *Driver {
	if clock == nil {
		clock = NewWallClock()
	}
	return &Driver{scheduler: scheduler, input: input, clock: clock}
}

// Scheduler returns the driven scheduler.
func (d *Driver) Scheduler() *Scheduler { return d.scheduler }

// Input returns the input adapter, or nil.
func (d *Driver) Input() *Input { return d.input }

// Clock returns the driver's clock.
func (d *Driver) Clock() Clock { return d.clock }

// AddConsumer attaches a consumer. Consumers run in attachment order.
func (d *Driver) AddConsumer(c Consumer) {
	d.consumers = append(d.consumers, c)
}

// SetTestRunner attaches a scripted runner stepped before input each frame.
func (d *Driver) SetTestRunner(r *TestRunner) {
	d.runner = r
}

// GoToSection requests a programmatic transition at the clock's current
// time.
func (d *Driver) GoToSection(index int) bool {
	ok := d.scheduler.GoToSection(index, d.clock.Now())
	d.accepted = d.accepted || ok
	return ok
}

// Update advances one frame at the clock's current time.
func (d *Driver) Update() Frame {
	return d.Step(d.clock.Now())
}

// Step advances one frame at an explicit timestamp.
func (d *Driver) Step(now time.Duration) Frame {
	if d.runner != nil {
		d.runner.step(d, now)
	}
	started := d.accepted
	d.accepted = false
	if d.input != nil {
		d.input.Poll(func(in Intent) {
			if d.scheduler.Accept(in, now) {
				started = true
			}
		})
	}
	committed := d.scheduler.Tick(now)

	st := d.scheduler.State()
	target, _ := st.Target()
	f := Frame{
		Phase:     st.Phase(),
		Active:    st.ActiveIndex(),
		Target:    target,
		Progress:  st.Progress(),
		Now:       now,
		Started:   started,
		Committed: committed,
	}
	for _, c := range d.consumers {
		c.Apply(f)
	}
	d.last = f
	return f
}

// LastFrame returns the frame produced by the most recent Step.
func (d *Driver) LastFrame() Frame {
	return d.last
}
