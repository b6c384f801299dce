// Package motion provides the animation primitives used while a drag is in
// flight: eased tweens for displaced rows and the settle animation, and a
// spring tracker for the shadow that follows the pointer.
package motion

import (
	"fmt"
	"time"

	"dragsort.dev/dragsort/internal/geometry"
)

// Easing maps normalized time in [0, 1] to normalized progress in [0, 1].
type Easing func(t float64) float64

// Linear progresses at constant speed.
func Linear(t float64) float64 { return t }

// CubicIn accelerates from rest.
func CubicIn(t float64) float64 { return t * t * t }

// CubicOut decelerates to rest.
func CubicOut(t float64) float64 {
	u := t - 1
	return u*u*u + 1
}

// CubicInOut accelerates through the first half and decelerates through the
// second.
func CubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2*t - 2
	return 1 + u*u*u/2
}

// ParseEasing resolves an easing function by its configuration name.
func ParseEasing(name string) (Easing, error) {
	switch name {
	case "", "cubic", "ease":
		return CubicInOut, nil
	case "cubic-in":
		return CubicIn, nil
	case "cubic-out":
		return CubicOut, nil
	case "linear":
		return Linear, nil
	default:
		return nil, fmt.Errorf("unknown easing %q", name)
	}
}

// Transition describes how an animated translation progresses over time.
type Transition struct {
	Duration time.Duration
	Easing   Easing
}

// DefaultTransition returns the timing used when the caller configures
// nothing: half a second of cubic ease.
func DefaultTransition() Transition {
	return Transition{Duration: 500 * time.Millisecond, Easing: CubicInOut}
}

// Tween animates a translation from one offset to another under a
// Transition. It is advanced by frame ticks; a zero-duration transition
// completes on the first advance.
type Tween struct {
	from    geometry.Point
	to      geometry.Point
	trans   Transition
	elapsed time.Duration
}

// NewTween starts a tween at from, headed to to.
func NewTween(from, to geometry.Point, trans Transition) *Tween {
	if trans.Easing == nil {
		trans.Easing = CubicInOut
	}
	return &Tween{from: from, to: to, trans: trans}
}

// Advance moves the tween forward by dt and returns the current offset.
func (tw *Tween) Advance(dt time.Duration) geometry.Point {
	tw.elapsed += dt
	return tw.Value()
}

// Value returns the current offset without advancing time.
func (tw *Tween) Value() geometry.Point {
	if tw.Done() {
		return tw.to
	}
	p := tw.trans.Easing(float64(tw.elapsed) / float64(tw.trans.Duration))
	return geometry.Point{
		X: tw.from.X + (tw.to.X-tw.from.X)*p,
		Y: tw.from.Y + (tw.to.Y-tw.from.Y)*p,
	}
}

// Target returns the offset the tween is headed to.
func (tw *Tween) Target() geometry.Point {
	return tw.to
}

// Done reports whether the tween has reached its target.
func (tw *Tween) Done() bool {
	return tw.trans.Duration <= 0 || tw.elapsed >= tw.trans.Duration
}
