package sortlist

import (
	"dragsort.dev/dragsort/internal/engine"
	"dragsort.dev/dragsort/internal/geometry"
	"dragsort.dev/dragsort/internal/motion"
)

// row is one rendered line of the list. It is both the engine's drag target
// and the thing the view paints.
type row struct {
	id    string
	label string

	// base is the laid-out rectangle in list-local cell coordinates.
	base geometry.Rect

	// offset is the current visual translation away from base, either set
	// directly (pointer tracking) or advanced by tween each frame.
	offset geometry.Point
	tween  *motion.Tween

	grip     *handle
	dragging bool
}

func (r *row) ID() string            { return r.id }
func (r *row) Bounds() geometry.Rect { return r.base }
func (r *row) Handle(markerClass string) engine.Element {
	if r.grip.class == markerClass {
		return r.grip
	}
	return r
}

// handle is the grip sub-element at the left edge of a row.
type handle struct {
	parent   *row
	class    string
	prepared bool
}

func (h *handle) ID() string { return h.parent.id + "/handle" }
func (h *handle) Bounds() geometry.Rect {
	b := h.parent.base
	b.Width = 2
	return b
}
func (h *handle) Handle(string) engine.Element { return h }

// decoration is the placeholder: a rectangle reserving slot space, moved by
// a delta as the destination changes.
type decoration struct {
	rect  geometry.Rect
	delta geometry.Point
	class string
}

// shadowState is the floating clone following the pointer. Its translation
// trails the target through a spring so terminal cell motion looks
// continuous.
type shadowState struct {
	label  string
	rect   geometry.Rect
	target geometry.Point
	spring *motion.Spring
	class  string
}

// settleState is the surface half of a pending commit: a tween carrying
// the dragged row into its slot, and the engine's completion callback.
type settleState struct {
	row  *row
	twn  *motion.Tween
	done func()
}

// Children implements engine.Container.
func (m *Model) Children() []engine.Element {
	out := make([]engine.Element, len(m.rows))
	for i, r := range m.rows {
		out[i] = r
	}
	return out
}

// SetChildren implements engine.Container: the commit. Rows are reordered
// to the given sequence and laid out again.
func (m *Model) SetChildren(children []engine.Element) {
	rows := make([]*row, 0, len(children))
	for _, el := range children {
		if r, ok := el.(*row); ok {
			rows = append(rows, r)
		}
	}
	m.rows = rows
	m.layout()
}

// SetOverflowHidden implements engine.Container.
func (m *Model) SetOverflowHidden(hidden bool) {
	m.clip = hidden
}

// PrepareHandle implements engine.Surface. Terminals have no native drag
// or touch scrolling to suppress; the mark gates which grips respond to
// presses.
func (m *Model) PrepareHandle(h engine.Element) {
	if grip, ok := h.(*handle); ok {
		grip.prepared = true
	}
}

// ShowPlaceholder implements engine.Surface.
func (m *Model) ShowPlaceholder(rect geometry.Rect, class string) {
	m.placeholder = &decoration{rect: rect, class: class}
}

// MovePlaceholder implements engine.Surface.
func (m *Model) MovePlaceholder(delta geometry.Point) {
	if m.placeholder != nil {
		m.placeholder.delta = delta
	}
}

// HidePlaceholder implements engine.Surface.
func (m *Model) HidePlaceholder() {
	m.placeholder = nil
}

// ShowShadow implements engine.Surface.
func (m *Model) ShowShadow(source engine.Element, rect geometry.Rect, class string) {
	label := ""
	if r, ok := source.(*row); ok {
		label = r.label
	}
	s := &shadowState{
		label:  label,
		rect:   rect,
		spring: motion.NewSpring(60, shadowSpringFrequency, shadowSpringDamping),
		class:  class,
	}
	s.spring.Snap(geometry.Point{})
	m.shadow = s
}

// MoveShadow implements engine.Surface.
func (m *Model) MoveShadow(delta geometry.Point) {
	if m.shadow != nil {
		m.shadow.target = delta
	}
}

// HideShadow implements engine.Surface.
func (m *Model) HideShadow() {
	m.shadow = nil
}

// SetDragging implements engine.Surface. The dragged row is painted after
// its siblings, which is the terminal's notion of elevation, and skipped
// by hit regions.
func (m *Model) SetDragging(el engine.Element, _ string) {
	if r, ok := el.(*row); ok {
		r.dragging = true
	}
}

// Translate implements engine.Surface: immediate pointer tracking.
func (m *Model) Translate(el engine.Element, delta geometry.Point) {
	if r, ok := el.(*row); ok {
		r.offset = delta
		r.tween = nil
	}
}

// Slide implements engine.Surface: an animated move to delta.
func (m *Model) Slide(el engine.Element, delta geometry.Point, trans motion.Transition) {
	if r, ok := el.(*row); ok {
		r.tween = motion.NewTween(r.offset, delta, trans)
	}
}

// ClearTranslation implements engine.Surface.
func (m *Model) ClearTranslation(el engine.Element) {
	if r, ok := el.(*row); ok {
		r.offset = geometry.Point{}
		r.tween = nil
	}
}

// ResetStyles implements engine.Surface.
func (m *Model) ResetStyles(el engine.Element) {
	if r, ok := el.(*row); ok {
		r.offset = geometry.Point{}
		r.tween = nil
		r.dragging = false
	}
}

// AnimateSettle implements engine.Surface. The tween runs on frame ticks;
// done fires from the frame handler when it completes. The engine may
// force done earlier, in which case the remaining tween frames are
// harmless: completion is idempotent on the engine side and the row's
// styles are already reset.
func (m *Model) AnimateSettle(el engine.Element, delta geometry.Point, trans motion.Transition, done func()) {
	r, ok := el.(*row)
	if !ok {
		done()
		return
	}
	m.settle = &settleState{
		row:  r,
		twn:  motion.NewTween(r.offset, delta, trans),
		done: done,
	}
}
