package segue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	DeltaY float64 `json:"deltaY,omitempty"`
	Key    string  `json:"key,omitempty"`
	Shift  bool    `json:"shift,omitempty"`
	Index  int     `json:"index,omitempty"`
	ID     string  `json:"id,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	MS     int     `json:"ms,omitempty"`
	Label  string  `json:"label,omitempty"`

	key ebiten.Key
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input, programmatic navigation and
// assertions across frames for automated runs. Attach to a Driver via
// SetTestRunner.
//
// Actions: wheel (deltaY), key (key, shift), swipe (fromY, toY, frames),
// goto (index or id), wait (ms), expect (index), screenshot (label).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitUntil time.Duration
	waiting   bool
	done      bool
	failures  []string
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready to
// be attached to a Driver.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "wheel", "swipe", "goto", "wait", "expect", "screenshot":
		case "key":
			if err := st.key.UnmarshalText([]byte(st.Key)); err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Failures returns the messages of expect steps that did not hold.
func (r *TestRunner) Failures() []string {
	return r.failures
}

// step advances the runner by one frame. Called from Driver.Step before
// input is polled.
func (r *TestRunner) step(d *Driver, now time.Duration) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if d.input != nil && d.input.Pending() > 0 {
		return
	}
	if r.waiting {
		if now < r.waitUntil {
			return
		}
		r.waiting = false
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "wheel":
		if d.input != nil {
			d.input.InjectWheel(st.DeltaY)
		}
	case "key":
		if d.input != nil {
			d.input.InjectKey(st.key, st.Shift)
		}
	case "swipe":
		if d.input != nil {
			d.input.InjectSwipe(st.FromY, st.ToY, st.Frames)
		}
	case "goto":
		if st.ID != "" {
			if d.scheduler.GoToID(st.ID, now) {
				d.accepted = true
			}
		} else if d.scheduler.GoToSection(st.Index, now) {
			d.accepted = true
		}
	case "wait":
		r.waitUntil = now + time.Duration(st.MS)*time.Millisecond
		r.waiting = st.MS > 0
	case "expect":
		if got := d.scheduler.ActiveIndex(); got != st.Index {
			r.failures = append(r.failures,
				fmt.Sprintf("step %d: active index = %d, want %d", r.cursor-1, got, st.Index))
		}
	case "screenshot":
		d.Screenshot(st.Label)
	}

	if r.cursor >= len(r.steps) && !r.waiting && (d.input == nil || d.input.Pending() == 0) {
		r.done = true
	}
}
