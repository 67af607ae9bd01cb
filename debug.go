package segue

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewDebugLogger returns a human-readable development logger writing to
// stderr at debug level.
func NewDebugLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build debug logger: %w", err)
	}
	return l.Named("segue"), nil
}

// SetDebugMode enables or disables transition logging on the driver's
// scheduler. When enabled, accepted, dropped and committed transitions are
// logged to stderr. Disabling restores the logger from Options.
func (d *Driver) SetDebugMode(enabled bool) error {
	if !enabled {
		d.scheduler.SetLogger(d.scheduler.opts.Logger)
		return nil
	}
	l, err := NewDebugLogger()
	if err != nil {
		return err
	}
	d.scheduler.SetLogger(l)
	return nil
}

// frameFields returns zap fields describing f, for hosts that log frames.
func frameFields(f Frame) []zap.Field {
	return []zap.Field{
		zap.Stringer("phase", f.Phase),
		zap.Int("active", f.Active),
		zap.Int("target", f.Target),
		zap.Float64("progress", f.Progress),
		zap.Duration("now", f.Now),
	}
}

// LogFrames returns a Consumer that logs every frame on which a transition
// starts or commits. A zero-duration transition does both in one frame and
// is logged twice.
func LogFrames(l *zap.Logger) Consumer {
	if l == nil {
		l = zap.NewNop()
	}
	return ConsumerFunc(func(f Frame) {
		if f.Started {
			l.Debug("frame: transition started", frameFields(f)...)
		}
		if f.Committed {
			l.Debug("frame: transition committed", frameFields(f)...)
		}
	})
}
