// Package engine implements the drag-to-reorder state machine: pointer
// events in, visual-surface commands and a committed child order out.
//
// The engine owns one container at a time. A drag session is created on
// pointer-down, updated on pointer-move, and ends on pointer-up with a
// settle animation whose completion commits the new child order. All
// hit-testing during one drag runs against a geometry snapshot frozen at
// drag start, so mid-drag visual motion never perturbs index arithmetic.
//
// The engine is platform-agnostic. Everything visual happens through the
// Surface interface and everything structural through the Container
// interface; the terminal implementation lives in
// internal/tui/components/sortlist.
package engine
