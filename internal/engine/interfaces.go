package engine

import (
	"dragsort.dev/dragsort/internal/geometry"
	"dragsort.dev/dragsort/internal/motion"
)

// Element is one sortable item managed by the engine.
type Element interface {
	// ID returns a stable identifier, unique within the container.
	ID() string

	// Bounds returns the element's current bounding rectangle in viewport
	// coordinates.
	Bounds() geometry.Rect

	// Handle returns the descendant marked with markerClass that must
	// receive the initiating pointer-down, or the element itself when no
	// such descendant exists.
	Handle(markerClass string) Element
}

// Container is the element whose direct children form the sortable list.
// Its child order is the only persisted state; the engine mutates it
// exactly once per drag, when the settle animation completes.
type Container interface {
	Children() []Element
	SetChildren(children []Element)

	// SetOverflowHidden clips horizontal overflow for the duration of a
	// drag so sliding siblings cannot cause scroll jumps.
	SetOverflowHidden(hidden bool)
}

// Surface is the visual platform the engine drives. Implementations own
// rendering and animation timing; the engine only issues commands.
//
// AnimateSettle must invoke done exactly once when the animation finishes.
// The engine may force completion early (Destroy), so implementations must
// tolerate the translation being cleared before their animation ends.
type Surface interface {
	// PrepareHandle is called once per handle at Start: suppress native
	// drag initiation and touch-scroll capture on it.
	PrepareHandle(handle Element)

	ShowPlaceholder(rect geometry.Rect, class string)
	MovePlaceholder(delta geometry.Point)
	HidePlaceholder()

	ShowShadow(source Element, rect geometry.Rect, class string)
	MoveShadow(delta geometry.Point)
	HideShadow()

	// SetDragging elevates el above its siblings, disables its pointer
	// hit-testing, and applies class.
	SetDragging(el Element, class string)

	// Translate moves el immediately (pointer tracking, no animation).
	Translate(el Element, delta geometry.Point)

	// Slide moves el to delta under the configured transition (displaced
	// siblings making room).
	Slide(el Element, delta geometry.Point, trans motion.Transition)

	// ClearTranslation returns el to its untranslated position.
	ClearTranslation(el Element)

	// ResetStyles clears every transient style the engine applied to el
	// during a drag: translation, elevation, dragging class.
	ResetStyles(el Element)

	// AnimateSettle animates el from its current translation to delta,
	// then calls done.
	AnimateSettle(el Element, delta geometry.Point, trans motion.Transition, done func())
}
