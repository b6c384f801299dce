package engine

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"dragsort.dev/dragsort/internal/errors"
	"dragsort.dev/dragsort/internal/geometry"
)

// Engine is the drag-sort state machine. One instance manages one container
// at a time; Start may be called again to manage another. Not safe for
// concurrent use: all calls are expected to arrive from a single
// event-delivery goroutine, mirroring pointer-event ordering
// (down, zero or more moves, up).
type Engine struct {
	surface Surface
	opts    Options
	logger  *slog.Logger

	container Container
	targets   map[string]Element // handle ID -> drag target

	// order is the authoritative committed child order. It survives across
	// drags so a drag started before a pending settle's commit sees the
	// correct logical order rather than the container's stale live one.
	order []Element

	session *session
	settle  *settleTask
}

// session is the transient state of one drag, created at pointer-down and
// discarded at pointer-up.
type session struct {
	id     string
	target Element
	source int
	dest   int // -1 until the pointer registers a valid slot

	// offset maps the pointer position onto the target's origin so the
	// element does not jump to sit centered under the pointer.
	offset geometry.Point
	origin geometry.Point

	// snapshot holds the bounding rectangle of element i of elements,
	// captured at drag start and frozen for the whole drag.
	snapshot []geometry.Rect
	elements []Element

	// moving are the snapshot indices currently displaced to make room.
	moving []int
}

// settleTask is the deferred commit of a finished drag: the settle
// animation is running and apply fires exactly once when it completes.
// Destroy forces completion early via finish.
type settleTask struct {
	fired bool
	apply func()
}

func (t *settleTask) finish() {
	if t.fired {
		return
	}
	t.fired = true
	t.apply()
}

// New creates an engine driving the given surface. A nil logger discards
// debug output.
func New(surface Surface, opts Options, logger *slog.Logger) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		surface: surface,
		opts:    opts.withDefaults(),
		logger:  logger,
	}, nil
}

// Options returns the fully-populated options the engine runs with.
func (e *Engine) Options() Options {
	return e.opts
}

// Start begins managing container: resolves the drag handle of every
// current child and prepares it on the surface. Calling Start again
// replaces the handle mapping; the previous container is not unbound.
func (e *Engine) Start(container Container) {
	e.container = container
	e.order = nil
	e.targets = make(map[string]Element)

	for _, child := range container.Children() {
		handle := child.Handle(e.opts.HandleClass)
		if handle == nil {
			handle = child
		}
		e.surface.PrepareHandle(handle)
		e.targets[handle.ID()] = child
	}
}

// TargetFor resolves the drag target bound to a handle. The surface calls
// this when a pointer-down lands on a handle's hit region.
func (e *Engine) TargetFor(handleID string) (Element, bool) {
	target, ok := e.targets[handleID]
	return target, ok
}

// Dragging reports whether a drag session is active.
func (e *Engine) Dragging() bool {
	return e.session != nil
}

// Settling reports whether a finished drag's commit animation is still
// running.
func (e *Engine) Settling() bool {
	return e.settle != nil
}

// DragStart begins a drag session for target at the given pointer
// position. Dropped silently while a previous drag is still settling.
// Returns ErrNotStarted before Start and ErrNoContainer when target is not
// a child of the managed container.
func (e *Engine) DragStart(target Element, pos geometry.Point) error {
	if e.container == nil {
		return errors.ErrNotStarted
	}
	if e.settle != nil || e.session != nil {
		e.logger.Debug("drag start dropped, previous drag still settling", "element", target.ID())
		return nil
	}

	elements := e.currentOrder()
	if !containsElement(elements, target) {
		return errors.NewDetachedElementError("drag start", target.ID())
	}

	snapshot := make([]geometry.Rect, len(elements))
	for i, el := range elements {
		snapshot[i] = el.Bounds()
	}

	source := geometry.IndexAt(snapshot, pos, 0)
	if source == -1 {
		// Pointer not inside any slot rectangle. Treated as a no-op
		// rather than a degenerate session with an unusable index.
		e.logger.Debug("drag start outside any slot", "element", target.ID())
		return nil
	}

	origin := target.Bounds().Origin()
	s := &session{
		id:       uuid.NewString(),
		target:   target,
		source:   source,
		dest:     -1,
		offset:   pos.Sub(origin),
		origin:   origin,
		snapshot: snapshot,
		elements: elements,
	}

	// Force-finalize any lingering visuals from an interrupted session
	// before creating this drag's decorations.
	e.surface.HideShadow()
	e.surface.HidePlaceholder()

	e.surface.ShowPlaceholder(snapshot[source], e.opts.PlaceholderClass)
	e.surface.ShowShadow(target, snapshot[source], e.opts.ShadowClass)
	e.surface.SetDragging(target, e.opts.DraggingClass)
	e.container.SetOverflowHidden(true)

	e.session = s
	e.logger.Debug("drag start", "session", s.id, "element", target.ID(), "source", source)
	return nil
}

// DragMove updates the active session for a new pointer position: tracks
// the dragged element and shadow, re-hit-tests the frozen snapshot, and
// re-animates displaced siblings when the destination index changes. No-op
// without an active session.
func (e *Engine) DragMove(pos geometry.Point) {
	s := e.session
	if s == nil {
		return
	}

	delta := pos.Sub(s.offset).Sub(s.origin)
	e.surface.Translate(s.target, delta)
	e.surface.MoveShadow(delta)

	dest := geometry.IndexAt(s.snapshot, pos, e.opts.Threshold)
	if dest == -1 {
		// Pointer over no slot: keep the previous destination and
		// whatever sibling motion it produced.
		return
	}

	e.surface.MovePlaceholder(s.snapshot[s.source].DeltaTo(s.snapshot[dest]))

	if dest == s.dest {
		return
	}
	s.dest = dest
	e.animateSiblings(s)
	e.logger.Debug("destination changed", "session", s.id, "dest", dest)
}

// animateSiblings restores the previous moving set to its snapshot
// position, recomputes the set for the current source/destination pair,
// and slides each mover one slot toward the vacated space.
func (e *Engine) animateSiblings(s *session) {
	for _, i := range s.moving {
		e.surface.ClearTranslation(s.elements[i])
	}

	lo, hi := s.source, s.dest
	forward := s.dest > s.source
	if !forward {
		lo, hi = s.dest, s.source
	}

	s.moving = s.moving[:0]
	if forward {
		// Dragging down: everything below the vacated slot, up to and
		// including the destination, shifts one slot earlier.
		for i := lo + 1; i <= hi; i++ {
			s.moving = append(s.moving, i)
		}
	} else {
		// Dragging up: the destination and everything beneath it, down to
		// just above the vacated slot, shifts one slot later.
		for i := lo; i <= hi-1; i++ {
			s.moving = append(s.moving, i)
		}
	}

	for _, i := range s.moving {
		adj := i + 1
		if forward {
			adj = i - 1
		}
		delta := s.snapshot[i].DeltaTo(s.snapshot[adj])
		e.surface.Slide(s.elements[i], delta, e.opts.Transition)
	}
}

// DragEnd finalizes the active session: computes the committed order,
// begins the settle animation, and defers the structural commit to its
// completion. A session whose pointer never registered a valid slot ends
// without reordering, but its style reset is still deferred the same way.
func (e *Engine) DragEnd() error {
	s := e.session
	if s == nil {
		return nil
	}
	e.session = nil

	e.surface.HideShadow()
	e.surface.HidePlaceholder()

	if e.container == nil {
		return errors.NewDetachedElementError("drag end", s.target.ID())
	}

	if s.dest == -1 || s.dest == s.source {
		// Click without meaningful movement: settle back in place, reset
		// styles once the animation completes, commit nothing.
		e.logger.Debug("drag end without reorder", "session", s.id)
		e.container.SetOverflowHidden(false)
		e.beginSettle(s, geometry.Point{}, false)
		return nil
	}

	e.order = spliceMove(e.currentOrder(), s.source, s.dest)
	e.container.SetOverflowHidden(false)

	settleDelta := s.snapshot[s.source].DeltaTo(s.snapshot[s.dest])
	e.logger.Debug("drag end", "session", s.id, "source", s.source, "dest", s.dest)
	e.beginSettle(s, settleDelta, true)
	return nil
}

// beginSettle starts the commit animation for a finished session. When it
// completes, every element the session touched has its transient styles
// cleared, and commit=true additionally rewrites the container's children
// to the authoritative order.
func (e *Engine) beginSettle(s *session, delta geometry.Point, commit bool) {
	task := &settleTask{}
	task.apply = func() {
		for _, el := range s.elements {
			e.surface.ResetStyles(el)
		}
		if commit {
			e.container.SetChildren(e.order)
		}
		e.settle = nil
		e.logger.Debug("settle complete", "session", s.id, "committed", commit)
	}
	e.settle = task

	e.surface.AnimateSettle(s.target, delta, e.opts.Transition, task.finish)
}

// Destroy force-ends any in-progress session and deterministically
// completes a pending settle, committing its order immediately. No-op when
// the engine is idle.
func (e *Engine) Destroy() {
	if e.session != nil {
		// Same path a pointer-up takes; the settle task it creates is
		// forced below.
		_ = e.DragEnd()
	}
	if e.settle != nil {
		e.settle.finish()
	}
}

// currentOrder returns the authoritative element order: the cached
// committed order when one exists, the container's live children
// otherwise.
func (e *Engine) currentOrder() []Element {
	if len(e.order) > 0 {
		return e.order
	}
	return e.container.Children()
}

// spliceMove removes the element at source and reinserts it at dest,
// preserving the relative order of everything else. Nil slots are dropped
// defensively before the move.
func spliceMove(order []Element, source, dest int) []Element {
	out := make([]Element, 0, len(order))
	for _, el := range order {
		if el != nil {
			out = append(out, el)
		}
	}
	if source < 0 || source >= len(out) || dest < 0 || dest >= len(out) {
		return out
	}
	el := out[source]
	out = slices.Delete(out, source, source+1)
	return slices.Insert(out, dest, el)
}

func containsElement(elements []Element, target Element) bool {
	for _, el := range elements {
		if el != nil && el.ID() == target.ID() {
			return true
		}
	}
	return false
}
