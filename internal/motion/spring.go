package motion

import (
	"github.com/charmbracelet/harmonica"

	"dragsort.dev/dragsort/internal/geometry"
)

// Spring tracks a moving target with damped spring physics. The shadow uses
// one so it trails the pointer slightly instead of teleporting cell to cell.
type Spring struct {
	spring harmonica.Spring
	pos    geometry.Point
	vel    geometry.Point
}

// NewSpring creates a spring updated at the given frame rate. Frequency and
// damping follow harmonica's conventions; damping of 1 is critical (no
// overshoot).
func NewSpring(fps int, frequency, damping float64) *Spring {
	return &Spring{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Snap places the spring at p with no velocity.
func (s *Spring) Snap(p geometry.Point) {
	s.pos = p
	s.vel = geometry.Point{}
}

// Update advances one frame toward target and returns the new position.
func (s *Spring) Update(target geometry.Point) geometry.Point {
	s.pos.X, s.vel.X = s.spring.Update(s.pos.X, s.vel.X, target.X)
	s.pos.Y, s.vel.Y = s.spring.Update(s.pos.Y, s.vel.Y, target.Y)
	return s.pos
}

// Pos returns the spring's current position.
func (s *Spring) Pos() geometry.Point {
	return s.pos
}
