package engine

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dragsort.dev/dragsort/internal/errors"
	"dragsort.dev/dragsort/internal/geometry"
	"dragsort.dev/dragsort/internal/motion"
)

const (
	rowWidth  = 20.0
	rowHeight = 10.0
)

type fakeElement struct {
	id     string
	rect   geometry.Rect
	handle *fakeElement
}

func (f *fakeElement) ID() string            { return f.id }
func (f *fakeElement) Bounds() geometry.Rect { return f.rect }
func (f *fakeElement) Handle(string) Element {
	if f.handle != nil {
		return f.handle
	}
	return f
}

type fakeContainer struct {
	children       []Element
	overflowHidden bool
	setCalls       int
}

func (c *fakeContainer) Children() []Element { return c.children }

// SetChildren commits the order and re-lays rows out top to bottom, the way
// a real surface re-renders after a structural change.
func (c *fakeContainer) SetChildren(children []Element) {
	c.children = children
	c.setCalls++
	for i, el := range children {
		fe := el.(*fakeElement)
		fe.rect.Y = float64(i) * rowHeight
	}
}

func (c *fakeContainer) SetOverflowHidden(hidden bool) { c.overflowHidden = hidden }

type settleCall struct {
	el    Element
	delta geometry.Point
	done  func()
}

type fakeSurface struct {
	prepared []string

	placeholderShown bool
	placeholderRect  geometry.Rect
	placeholderDelta geometry.Point

	shadowShown bool
	shadowDelta geometry.Point

	dragging     map[string]bool
	translations map[string]geometry.Point
	slides       map[string]geometry.Point
	resets       []string

	settles []settleCall
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		dragging:     make(map[string]bool),
		translations: make(map[string]geometry.Point),
		slides:       make(map[string]geometry.Point),
	}
}

func (s *fakeSurface) PrepareHandle(handle Element) {
	s.prepared = append(s.prepared, handle.ID())
}

func (s *fakeSurface) ShowPlaceholder(rect geometry.Rect, _ string) {
	s.placeholderShown = true
	s.placeholderRect = rect
	s.placeholderDelta = geometry.Point{}
}

func (s *fakeSurface) MovePlaceholder(delta geometry.Point) { s.placeholderDelta = delta }
func (s *fakeSurface) HidePlaceholder()                     { s.placeholderShown = false }

func (s *fakeSurface) ShowShadow(_ Element, _ geometry.Rect, _ string) { s.shadowShown = true }
func (s *fakeSurface) MoveShadow(delta geometry.Point)                 { s.shadowDelta = delta }
func (s *fakeSurface) HideShadow()                                     { s.shadowShown = false }

func (s *fakeSurface) SetDragging(el Element, _ string) { s.dragging[el.ID()] = true }

func (s *fakeSurface) Translate(el Element, delta geometry.Point) {
	s.translations[el.ID()] = delta
}

func (s *fakeSurface) Slide(el Element, delta geometry.Point, _ motion.Transition) {
	s.slides[el.ID()] = delta
}

func (s *fakeSurface) ClearTranslation(el Element) {
	delete(s.translations, el.ID())
	delete(s.slides, el.ID())
}

func (s *fakeSurface) ResetStyles(el Element) {
	s.resets = append(s.resets, el.ID())
	delete(s.translations, el.ID())
	delete(s.slides, el.ID())
	delete(s.dragging, el.ID())
}

func (s *fakeSurface) AnimateSettle(el Element, delta geometry.Point, _ motion.Transition, done func()) {
	s.settles = append(s.settles, settleCall{el: el, delta: delta, done: done})
}

// completeSettle fires the pending settle animation's completion callback.
func (s *fakeSurface) completeSettle(t *testing.T) {
	t.Helper()
	require.NotEmpty(t, s.settles, "no settle animation in flight")
	s.settles[len(s.settles)-1].done()
}

// newFixture builds an engine managing n rows stacked vertically.
func newFixture(t *testing.T, n int, opts Options) (*Engine, *fakeContainer, *fakeSurface) {
	t.Helper()

	children := make([]Element, n)
	for i := range children {
		children[i] = &fakeElement{
			id:   string(rune('A' + i)),
			rect: geometry.Rect{X: 0, Y: float64(i) * rowHeight, Width: rowWidth, Height: rowHeight},
		}
	}
	container := &fakeContainer{children: children}
	surface := newFakeSurface()

	eng, err := New(surface, opts, nil)
	require.NoError(t, err)
	eng.Start(container)
	return eng, container, surface
}

// rowCenter returns a point inside row i.
func rowCenter(i int) geometry.Point {
	return geometry.Point{X: rowWidth / 2, Y: float64(i)*rowHeight + rowHeight/2}
}

func ids(elements []Element) []string {
	out := make([]string, len(elements))
	for i, el := range elements {
		out[i] = el.ID()
	}
	return out
}

// drag runs a complete drag of the element in row from onto row to,
// including settle completion.
func drag(t *testing.T, eng *Engine, container *fakeContainer, surface *fakeSurface, from, to int) {
	t.Helper()
	require.NoError(t, eng.DragStart(container.children[from], rowCenter(from)))
	eng.DragMove(rowCenter(to))
	require.NoError(t, eng.DragEnd())
	surface.completeSettle(t)
}

func TestDrag_ForwardMove(t *testing.T) {
	eng, container, surface := newFixture(t, 5, Options{})

	drag(t, eng, container, surface, 2, 4)

	assert.Equal(t, []string{"A", "B", "D", "E", "C"}, ids(container.children))
	assert.Equal(t, 1, container.setCalls)
}

func TestDrag_BackwardMove(t *testing.T) {
	eng, container, surface := newFixture(t, 5, Options{})

	drag(t, eng, container, surface, 3, 1)

	assert.Equal(t, []string{"A", "D", "B", "C", "E"}, ids(container.children))
}

func TestDrag_RoundTrip(t *testing.T) {
	eng, container, surface := newFixture(t, 5, Options{})

	drag(t, eng, container, surface, 2, 4)
	drag(t, eng, container, surface, 4, 2)

	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, ids(container.children))
}

func TestDrag_AllPairsSingleSplice(t *testing.T) {
	const n = 5
	for from := 0; from < n; from++ {
		for to := 0; to < n; to++ {
			if from == to {
				continue
			}
			eng, container, surface := newFixture(t, n, Options{})
			moved := container.children[from].ID()

			drag(t, eng, container, surface, from, to)

			got := ids(container.children)
			assert.Equal(t, moved, got[to], "moved element lands at destination (%d->%d)", from, to)

			// Everyone else keeps their relative order.
			var rest []string
			for _, id := range got {
				if id != moved {
					rest = append(rest, id)
				}
			}
			var want []string
			for i := 0; i < n; i++ {
				if id := string(rune('A' + i)); id != moved {
					want = append(want, id)
				}
			}
			assert.Equal(t, want, rest, "relative order preserved (%d->%d)", from, to)
		}
	}
}

func TestDrag_SameSlotIsIdempotent(t *testing.T) {
	eng, container, surface := newFixture(t, 4, Options{})

	require.NoError(t, eng.DragStart(container.children[1], rowCenter(1)))
	eng.DragMove(rowCenter(1))
	require.NoError(t, eng.DragEnd())
	surface.completeSettle(t)

	assert.Equal(t, []string{"A", "B", "C", "D"}, ids(container.children))
	assert.Zero(t, container.setCalls, "no structural commit for an unchanged order")
}

func TestDrag_ClickWithoutMovement(t *testing.T) {
	eng, container, surface := newFixture(t, 4, Options{})

	require.NoError(t, eng.DragStart(container.children[2], rowCenter(2)))
	require.NoError(t, eng.DragEnd())

	// Style reset is deferred to animation completion even without a
	// reorder.
	assert.Empty(t, surface.resets)
	surface.completeSettle(t)
	assert.Contains(t, surface.resets, "C")
	assert.Zero(t, container.setCalls)
}

func TestDragMove_SiblingSlides(t *testing.T) {
	eng, container, surface := newFixture(t, 5, Options{})

	require.NoError(t, eng.DragStart(container.children[1], rowCenter(1)))
	eng.DragMove(rowCenter(3))

	// Forward drag 1->3: rows 2 and 3 each slide one slot up.
	assert.Equal(t, geometry.Point{Y: -rowHeight}, surface.slides["C"])
	assert.Equal(t, geometry.Point{Y: -rowHeight}, surface.slides["D"])
	assert.NotContains(t, surface.slides, "E")

	// Pulling back to 2 shrinks the moving set; D returns home.
	eng.DragMove(rowCenter(2))
	assert.Equal(t, geometry.Point{Y: -rowHeight}, surface.slides["C"])
	assert.NotContains(t, surface.slides, "D")

	require.NoError(t, eng.DragEnd())
	surface.completeSettle(t)
}

func TestDragMove_BackwardSlides(t *testing.T) {
	eng, container, surface := newFixture(t, 5, Options{})

	require.NoError(t, eng.DragStart(container.children[3], rowCenter(3)))
	eng.DragMove(rowCenter(1))

	// Backward drag 3->1: rows 1 and 2 each slide one slot down.
	assert.Equal(t, geometry.Point{Y: rowHeight}, surface.slides["B"])
	assert.Equal(t, geometry.Point{Y: rowHeight}, surface.slides["C"])
	assert.NotContains(t, surface.slides, "A")

	require.NoError(t, eng.DragEnd())
	surface.completeSettle(t)
}

func TestDragMove_OutsideSlotsRetainsState(t *testing.T) {
	eng, container, surface := newFixture(t, 4, Options{})

	require.NoError(t, eng.DragStart(container.children[0], rowCenter(0)))
	eng.DragMove(rowCenter(2))
	slidesBefore := len(surface.slides)

	// Wander off the container entirely: destination and sibling motion
	// stay as they were.
	eng.DragMove(geometry.Point{X: 500, Y: 500})
	assert.Len(t, surface.slides, slidesBefore)

	require.NoError(t, eng.DragEnd())
	surface.completeSettle(t)
	assert.Equal(t, []string{"B", "C", "A", "D"}, ids(container.children))
}

func TestDragMove_ThresholdDelaysIndexChange(t *testing.T) {
	eng, container, surface := newFixture(t, 3, Options{Threshold: 3})

	require.NoError(t, eng.DragStart(container.children[0], rowCenter(0)))

	// Just past row 1's top edge: inside the raw rect but not past the
	// inset, so the destination does not change yet.
	eng.DragMove(geometry.Point{X: 10, Y: rowHeight + 2})
	assert.Empty(t, surface.slides)

	// Deeper penetration registers.
	eng.DragMove(geometry.Point{X: 10, Y: rowHeight + 5})
	assert.Equal(t, geometry.Point{Y: -rowHeight}, surface.slides["B"])

	require.NoError(t, eng.DragEnd())
	surface.completeSettle(t)
}

func TestDragStart_DroppedWhileSettling(t *testing.T) {
	eng, container, surface := newFixture(t, 4, Options{})

	require.NoError(t, eng.DragStart(container.children[0], rowCenter(0)))
	eng.DragMove(rowCenter(2))
	require.NoError(t, eng.DragEnd())
	require.True(t, eng.Settling())

	// A pointer-down during the settle animation produces no session and
	// no state change.
	require.NoError(t, eng.DragStart(container.children[3], rowCenter(3)))
	assert.False(t, eng.Dragging())

	surface.completeSettle(t)
	assert.False(t, eng.Settling())
	assert.Equal(t, []string{"B", "C", "A", "D"}, ids(container.children))

	// Once settled, drags work again.
	require.NoError(t, eng.DragStart(container.children[3], rowCenter(3)))
	assert.True(t, eng.Dragging())
	require.NoError(t, eng.DragEnd())
	surface.completeSettle(t)
}

func TestDragStart_OutsideAnySlot(t *testing.T) {
	eng, container, _ := newFixture(t, 3, Options{})

	require.NoError(t, eng.DragStart(container.children[0], geometry.Point{X: 500, Y: 500}))
	assert.False(t, eng.Dragging())
}

func TestDragStart_DetachedElement(t *testing.T) {
	eng, _, _ := newFixture(t, 3, Options{})

	stray := &fakeElement{id: "Z", rect: geometry.Rect{Width: rowWidth, Height: rowHeight}}
	err := eng.DragStart(stray, rowCenter(0))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrNoContainer))

	var detached *errors.DetachedElementError
	require.True(t, stderrors.As(err, &detached))
	assert.Equal(t, "Z", detached.ElementID)
}

func TestDragStart_BeforeStart(t *testing.T) {
	eng, err := New(newFakeSurface(), Options{}, nil)
	require.NoError(t, err)

	el := &fakeElement{id: "A"}
	assert.ErrorIs(t, eng.DragStart(el, geometry.Point{}), errors.ErrNotStarted)
}

func TestDrag_OverflowHiddenForDuration(t *testing.T) {
	eng, container, surface := newFixture(t, 3, Options{})

	require.NoError(t, eng.DragStart(container.children[0], rowCenter(0)))
	assert.True(t, container.overflowHidden)

	eng.DragMove(rowCenter(2))
	require.NoError(t, eng.DragEnd())
	assert.False(t, container.overflowHidden)
	surface.completeSettle(t)
}

func TestDrag_DecorationsLifecycle(t *testing.T) {
	eng, container, surface := newFixture(t, 3, Options{})

	require.NoError(t, eng.DragStart(container.children[1], rowCenter(1)))
	assert.True(t, surface.placeholderShown)
	assert.True(t, surface.shadowShown)
	assert.Equal(t, geometry.Rect{X: 0, Y: rowHeight, Width: rowWidth, Height: rowHeight}, surface.placeholderRect)

	eng.DragMove(rowCenter(2))
	assert.Equal(t, geometry.Point{Y: rowHeight}, surface.placeholderDelta)

	require.NoError(t, eng.DragEnd())
	assert.False(t, surface.placeholderShown)
	assert.False(t, surface.shadowShown)
	surface.completeSettle(t)
}

func TestDestroy_Idle(t *testing.T) {
	eng, _, _ := newFixture(t, 3, Options{})
	eng.Destroy()

	eng2, err := New(newFakeSurface(), Options{}, nil)
	require.NoError(t, err)
	eng2.Destroy()
}

func TestDestroy_ForcesPendingCommit(t *testing.T) {
	eng, container, _ := newFixture(t, 4, Options{})

	require.NoError(t, eng.DragStart(container.children[0], rowCenter(0)))
	eng.DragMove(rowCenter(2))
	require.NoError(t, eng.DragEnd())
	require.True(t, eng.Settling())

	// Destroy completes the settle deterministically instead of waiting
	// for the surface's animation.
	eng.Destroy()
	assert.False(t, eng.Settling())
	assert.Equal(t, []string{"B", "C", "A", "D"}, ids(container.children))
}

func TestDestroy_EndsActiveSession(t *testing.T) {
	eng, container, _ := newFixture(t, 4, Options{})

	require.NoError(t, eng.DragStart(container.children[1], rowCenter(1)))
	eng.DragMove(rowCenter(3))
	eng.Destroy()

	assert.False(t, eng.Dragging())
	assert.False(t, eng.Settling())
	assert.Equal(t, []string{"A", "C", "D", "B"}, ids(container.children))
}

func TestSettleCompletion_FiresOnce(t *testing.T) {
	eng, container, surface := newFixture(t, 4, Options{})

	require.NoError(t, eng.DragStart(container.children[0], rowCenter(0)))
	eng.DragMove(rowCenter(1))
	require.NoError(t, eng.DragEnd())

	eng.Destroy()
	setCalls := container.setCalls

	// The surface's own animation completing afterwards must not commit a
	// second time.
	surface.completeSettle(t)
	assert.Equal(t, setCalls, container.setCalls)
}

func TestStart_PreparesHandles(t *testing.T) {
	children := []Element{
		&fakeElement{id: "A", handle: &fakeElement{id: "A-grip"}},
		&fakeElement{id: "B"},
	}
	container := &fakeContainer{children: children}
	surface := newFakeSurface()

	eng, err := New(surface, Options{}, nil)
	require.NoError(t, err)
	eng.Start(container)

	assert.ElementsMatch(t, []string{"A-grip", "B"}, surface.prepared)

	target, ok := eng.TargetFor("A-grip")
	require.True(t, ok)
	assert.Equal(t, "A", target.ID())

	target, ok = eng.TargetFor("B")
	require.True(t, ok)
	assert.Equal(t, "B", target.ID())

	_, ok = eng.TargetFor("missing")
	assert.False(t, ok)
}
