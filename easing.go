package vantage

import (
	"math"

	"github.com/tanema/gween/ease"
)

// EasingID selects one of the easing curves a movement config can request.
type EasingID uint8

const (
	EaseOutQuad EasingID = iota
	EaseOutSine
	EaseInOutCubic
	EaseLinear
	EaseAthletic
)

// String returns the easing name used in configs and logs.
func (e EasingID) String() string {
	switch e {
	case EaseOutQuad:
		return "ease-out-quad"
	case EaseOutSine:
		return "ease-out-sine"
	case EaseInOutCubic:
		return "ease-in-out-cubic"
	case EaseLinear:
		return "linear"
	case EaseAthletic:
		return "athletic"
	default:
		return "unknown"
	}
}

// Athletic is a custom curve: a hard acceleration out of the blocks followed
// by a long glide to the mark. Shares the gween TweenFunc signature
// (t = elapsed, b = begin, c = change, d = duration).
func Athletic(t, b, c, d float32) float32 {
	p := float64(t) / float64(d)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	v := 1 - math.Pow(1-p, 2.6)
	return c*float32(v) + b
}

// EasingFunc returns the gween tween function for an EasingID.
// Unknown IDs fall back to linear.
func EasingFunc(id EasingID) ease.TweenFunc {
	switch id {
	case EaseOutQuad:
		return ease.OutQuad
	case EaseOutSine:
		return ease.OutSine
	case EaseInOutCubic:
		return ease.InOutCubic
	case EaseLinear:
		return ease.Linear
	case EaseAthletic:
		return Athletic
	default:
		return ease.Linear
	}
}

// EaseProgress applies the easing curve to a normalized progress value in
// [0,1] and returns the eased value, also in [0,1].
func EaseProgress(id EasingID, progress float64) float64 {
	p := clamp(progress, 0, 1)
	return float64(EasingFunc(id)(float32(p), 0, 1, 1))
}
