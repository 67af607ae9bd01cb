package segue

import "github.com/tanema/gween/ease"

// Easing maps linear progress in [0, 1] to eased progress. Implementations
// must return 0 at 0 and 1 at 1.
type Easing func(t float64) float64

// FromTween adapts a gween easing function to an Easing. The tween is
// evaluated over a unit range (begin 0, change 1, duration 1).
func FromTween(fn ease.TweenFunc) Easing {
	return func(t float64) float64 {
		t = clamp01(t)
		switch t {
		case 0:
			return 0
		case 1:
			return 1
		}
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return clamp01(t)
}

// EaseInOutCubic is the symmetric cubic ease used for page sections:
// 4t³ for the first half, 1-(-2t+2)³/2 for the second.
func EaseInOutCubic(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// EaseOutCubic decelerates into the target. Used by the camera rig.
func EaseOutCubic(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}

// Named easings accepted in configuration files. Entries other than the
// cubic pair come from gween.
var easings = map[string]Easing{
	"linear":       Linear,
	"inOutCubic":   EaseInOutCubic,
	"outCubic":     EaseOutCubic,
	"inCubic":      FromTween(ease.InCubic),
	"inOutQuad":    FromTween(ease.InOutQuad),
	"outQuad":      FromTween(ease.OutQuad),
	"inOutSine":    FromTween(ease.InOutSine),
	"outSine":      FromTween(ease.OutSine),
	"inOutQuart":   FromTween(ease.InOutQuart),
	"outQuart":     FromTween(ease.OutQuart),
	"inOutExpo":    FromTween(ease.InOutExpo),
	"outExpo":      FromTween(ease.OutExpo),
	"outBack":      FromTween(ease.OutBack),
	"inOutCirc":    FromTween(ease.InOutCirc),
	"outCirc":      FromTween(ease.OutCirc),
	"inOutQuint":   FromTween(ease.InOutQuint),
	"outQuint":     FromTween(ease.OutQuint),
	"outElastic":   FromTween(ease.OutElastic),
	"outBounce":    FromTween(ease.OutBounce),
	"inOutBounce":  FromTween(ease.InOutBounce),
	"inOutElastic": FromTween(ease.InOutElastic),
}

// EasingByName returns the named easing. ok is false for unknown names.
func EasingByName(name string) (Easing, bool) {
	fn, ok := easings[name]
	return fn, ok
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
