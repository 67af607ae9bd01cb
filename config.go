package segue

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrInvalidOption is returned by Options.Validate and LoadConfig.
var ErrInvalidOption = errors.New("segue: invalid option")

const (
	defaultDuration       = 1500 * time.Millisecond
	defaultWheelThreshold = 50.0
	defaultTouchThreshold = 70.0
	defaultGestureGap     = 0
	defaultWheelScale     = 100.0
)

// TrackpadGestureGap is a GestureGap suited to trackpads and touch screens,
// whose inertial scrolling keeps firing events after a transition ends.
const TrackpadGestureGap = 120 * time.Millisecond

// Options configures a Scheduler and its input normalizer.
type Options struct {
	// Duration is the length of each transition.
	Duration time.Duration
	// SettleMargin keeps the gate locked this long after a transition
	// completes.
	SettleMargin time.Duration
	// GestureGap is the longest pause between same-direction wheel/touch
	// events that still belong to one gesture. Zero disables coalescing:
	// intents dropped mid-transition then have no effect at all on later
	// navigation. A nonzero gap lets wheel/touch events that arrived while
	// a transition ran keep the gesture alive past the end of it.
	GestureGap time.Duration

	// WheelThreshold is the minimum |deltaY| of a wheel event.
	WheelThreshold float64
	// TouchThreshold is the minimum swipe distance in pixels.
	TouchThreshold float64
	// WheelScale converts Ebitengine wheel offsets (lines) into pixel deltas.
	WheelScale float64

	// InitialIndex is the section committed at construction. Clamped.
	InitialIndex int

	// Logger receives transition diagnostics. Nil means no logging.
	Logger *zap.Logger
}

// DefaultOptions returns the tuned defaults: 1.5s transitions, a wheel
// threshold that ignores trackpad micro-scrolls and a coarser touch
// threshold.
func DefaultOptions() Options {
	return Options{
		Duration:       defaultDuration,
		GestureGap:     defaultGestureGap,
		WheelThreshold: defaultWheelThreshold,
		TouchThreshold: defaultTouchThreshold,
		WheelScale:     defaultWheelScale,
	}
}

// Validate reports the first out-of-range field.
func (o Options) Validate() error {
	switch {
	case o.Duration < 0:
		return fmt.Errorf("duration %v: %w", o.Duration, ErrInvalidOption)
	case o.SettleMargin < 0:
		return fmt.Errorf("settle margin %v: %w", o.SettleMargin, ErrInvalidOption)
	case o.GestureGap < 0:
		return fmt.Errorf("gesture gap %v: %w", o.GestureGap, ErrInvalidOption)
	case o.WheelThreshold < 0:
		return fmt.Errorf("wheel threshold %v: %w", o.WheelThreshold, ErrInvalidOption)
	case o.TouchThreshold < 0:
		return fmt.Errorf("touch threshold %v: %w", o.TouchThreshold, ErrInvalidOption)
	case o.WheelScale <= 0:
		return fmt.Errorf("wheel scale %v: %w", o.WheelScale, ErrInvalidOption)
	}
	return nil
}

// hold is how long the gate stays locked after a transition is accepted.
func (o Options) hold() time.Duration {
	return o.Duration + o.SettleMargin
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// configFile is the YAML layout accepted by LoadConfig. Durations use Go
// duration syntax ("1500ms", "1.5s"). Omitted fields keep their defaults.
type configFile struct {
	Duration       string    `yaml:"duration"`
	SettleMargin   string    `yaml:"settleMargin"`
	GestureGap     string    `yaml:"gestureGap"`
	WheelThreshold *float64  `yaml:"wheelThreshold"`
	TouchThreshold *float64  `yaml:"touchThreshold"`
	WheelScale     *float64  `yaml:"wheelScale"`
	InitialIndex   int       `yaml:"initialIndex"`
	PageEasing     string    `yaml:"pageEasing"`
	CameraEasing   string    `yaml:"cameraEasing"`
	Sections       []Section `yaml:"sections"`
}

// Config is a parsed configuration file: engine options, the section
// registry and the easings named for each consumer.
type Config struct {
	Options      Options
	Registry     *Registry
	PageEasing   Easing
	CameraEasing Easing
}

// LoadConfig parses a YAML configuration file:
//
//	duration: 1500ms
//	wheelThreshold: 50
//	pageEasing: inOutCubic
//	cameraEasing: outCubic
//	sections:
//	  - id: intro
//	    label: Intro
func LoadConfig(data []byte) (*Config, error) {
	var f configFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	opts := DefaultOptions()
	for _, d := range []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"duration", f.Duration, &opts.Duration},
		{"settleMargin", f.SettleMargin, &opts.SettleMargin},
		{"gestureGap", f.GestureGap, &opts.GestureGap},
	} {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("parse config: %s: %v: %w", d.name, err, ErrInvalidOption)
		}
		*d.dst = v
	}
	if f.WheelThreshold != nil {
		opts.WheelThreshold = *f.WheelThreshold
	}
	if f.TouchThreshold != nil {
		opts.TouchThreshold = *f.TouchThreshold
	}
	if f.WheelScale != nil {
		opts.WheelScale = *f.WheelScale
	}
	opts.InitialIndex = f.InitialIndex
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	reg, err := NewRegistry(f.Sections)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := &Config{
		Options:      opts,
		Registry:     reg,
		PageEasing:   EaseInOutCubic,
		CameraEasing: EaseOutCubic,
	}
	if f.PageEasing != "" {
		fn, ok := EasingByName(f.PageEasing)
		if !ok {
			return nil, fmt.Errorf("parse config: page easing %q: %w", f.PageEasing, ErrInvalidOption)
		}
		cfg.PageEasing = fn
	}
	if f.CameraEasing != "" {
		fn, ok := EasingByName(f.CameraEasing)
		if !ok {
			return nil, fmt.Errorf("parse config: camera easing %q: %w", f.CameraEasing, ErrInvalidOption)
		}
		cfg.CameraEasing = fn
	}
	return cfg, nil
}
