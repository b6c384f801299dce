// Package geometry provides the point and rectangle value types used for
// hit-testing during a drag. Coordinates are float64 viewport coordinates;
// the terminal surface widens cell positions into this space.
package geometry

// Point is a position or a translation vector in viewport coordinates.
type Point struct {
	X float64
	Y float64
}

// Add returns the point translated by v.
func (p Point) Add(v Point) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from v to p.
func (p Point) Sub(v Point) Point {
	return Point{X: p.X - v.X, Y: p.Y - v.Y}
}

// Rect is an axis-aligned rectangle identified by its origin and size.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Origin returns the rectangle's top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Contains reports whether p lies strictly inside r. Both intervals are
// open: a point exactly on an edge is not inside.
func (r Rect) Contains(p Point) bool {
	return p.X > r.X && p.X < r.Right() && p.Y > r.Y && p.Y < r.Bottom()
}

// Inset returns r shrunk inward by d on every side. A large enough d
// produces a rectangle with non-positive size, which contains nothing.
func (r Rect) Inset(d float64) Rect {
	return Rect{
		X:      r.X + d,
		Y:      r.Y + d,
		Width:  r.Width - 2*d,
		Height: r.Height - 2*d,
	}
}

// DeltaTo returns the translation that moves r's origin onto other's.
func (r Rect) DeltaTo(other Rect) Point {
	return other.Origin().Sub(r.Origin())
}

// IndexAt returns the index of the first rectangle in rects that strictly
// contains p after each rectangle is inset by threshold, or -1 when none
// does. A positive threshold requires deeper penetration into a rectangle
// before it registers, which damps index flapping near slot borders.
func IndexAt(rects []Rect, p Point, threshold float64) int {
	for i, r := range rects {
		if r.Inset(threshold).Contains(p) {
			return i
		}
	}
	return -1
}
